// Package batch runs many independent Neighbor-Joining reconstructions in
// parallel. Each job gets its own nj.Builder; nothing is shared between jobs
// except the logger.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/njtree/nj"
)

// ErrNoJobs is returned by Run for an empty job list.
var ErrNoJobs = errors.New("batch: no jobs")

// Job is one reconstruction request.
type Job struct {
	Name      string
	Distances [][]float64
	Labels    []string
}

// Outcome is the result of one Job. Exactly one of Result and Err is set.
type Outcome struct {
	RunID   string        `json:"run_id" yaml:"run_id"`
	Name    string        `json:"name" yaml:"name"`
	Result  *nj.Result    `json:"result,omitempty" yaml:"result,omitempty"`
	Err     error         `json:"-" yaml:"-"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Runner executes jobs with bounded parallelism and an optional per-job
// timeout. A Runner is safe for concurrent use.
type Runner struct {
	workers int
	timeout time.Duration
	log     *zap.Logger
	njOpts  []nj.Option
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the number of concurrent jobs. Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("batch: WithWorkers: n must be ≥ 1")
	}

	return func(r *Runner) { r.workers = n }
}

// WithTimeout limits each job; 0 means no limit. Panics when d < 0.
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("batch: WithTimeout: d must be ≥ 0")
	}

	return func(r *Runner) { r.timeout = d }
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTreeOptions forwards opts to every nj.Builder.
func WithTreeOptions(opts ...nj.Option) Option {
	return func(r *Runner) { r.njOpts = append(r.njOpts, opts...) }
}

// NewRunner returns a Runner with GOMAXPROCS workers, no timeout and a no-op
// logger unless overridden.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers: runtime.GOMAXPROCS(0),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes jobs and returns one Outcome per job, in job order.
//
// Failures of individual jobs (bad input, timeout) are reported in their
// Outcome and never stop the other jobs. The returned error is non-nil only
// for an empty job list or when ctx itself ends; outcomes of jobs that never
// started then carry ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}

	out := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	r.log.Info("batch started", zap.Int("jobs", len(jobs)), zap.Int("workers", r.workers))
	for x := range jobs {
		x := x
		if err := gctx.Err(); err != nil {
			out[x] = r.skipped(jobs[x], err)
			continue
		}
		g.Go(func() error {
			out[x] = r.runJob(gctx, jobs[x])
			return nil
		})
	}
	_ = g.Wait() // jobs never return errors

	failed := 0
	for x := range out {
		if out[x].Err != nil {
			failed++
		}
	}
	r.log.Info("batch finished", zap.Int("jobs", len(jobs)), zap.Int("failed", failed))

	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("batch: %w", err)
	}

	return out, nil
}

func (r *Runner) runJob(ctx context.Context, job Job) Outcome {
	o := Outcome{RunID: uuid.NewString(), Name: job.Name}
	log := r.log.With(zap.String("run_id", o.RunID), zap.String("job", job.Name))

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	opts := make([]nj.Option, 0, len(r.njOpts)+1)
	opts = append(opts, nj.WithLogger(log))
	opts = append(opts, r.njOpts...)

	start := time.Now()
	res, err := nj.BuildTreeContext(ctx, job.Distances, job.Labels, opts...)
	o.Elapsed = time.Since(start)
	if err != nil {
		o.Err = err
		o.Error = err.Error()
		log.Warn("job failed", zap.Error(err), zap.Duration("elapsed", o.Elapsed))
		return o
	}
	o.Result = res

	return o
}

func (r *Runner) skipped(job Job, err error) Outcome {
	return Outcome{
		RunID: uuid.NewString(),
		Name:  job.Name,
		Err:   err,
		Error: err.Error(),
	}
}
