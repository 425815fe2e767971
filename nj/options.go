package nj

import (
	"math"

	"go.uber.org/zap"
)

// DefaultSymmetryTolerance is the largest |D[i][j]-D[j][i]| (and |D[i][i]|)
// accepted without a warning.
const DefaultSymmetryTolerance = 1e-10

const panicToleranceInvalid = "nj: WithSymmetryTolerance: eps must be finite, non-negative"

// Option configures a Builder.
type Option func(*Options)

// Options holds the effective Builder configuration.
type Options struct {
	// Logger receives run-level Info, per-join Debug and repair Warn entries.
	Logger *zap.Logger

	// SymmetryTolerance bounds silent symmetrization, see WithSymmetryTolerance.
	SymmetryTolerance float64

	// StrictSymmetry turns asymmetry above the tolerance into ErrAsymmetric.
	StrictSymmetry bool

	// OnJoin is called after every merge of the iterative phase.
	OnJoin func(JoinEvent)
}

// DefaultOptions returns Options with a no-op logger, the default symmetry
// tolerance, averaging of asymmetric input and no hook.
func DefaultOptions() Options {
	return Options{
		Logger:            zap.NewNop(),
		SymmetryTolerance: DefaultSymmetryTolerance,
	}
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSymmetryTolerance sets the tolerance used to decide whether repairing
// asymmetric input deserves a warning (or, with WithStrictSymmetry, an error).
// Panics when eps is NaN, ±Inf or negative.
func WithSymmetryTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.SymmetryTolerance = eps }
}

// WithStrictSymmetry rejects input whose triangles differ by more than the
// tolerance instead of averaging them.
func WithStrictSymmetry() Option {
	return func(o *Options) { o.StrictSymmetry = true }
}

// WithOnJoin registers a callback invoked after each merge.
func WithOnJoin(fn func(JoinEvent)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnJoin = fn
		}
	}
}

// gatherOptions applies opts over DefaultOptions.
func gatherOptions(opts ...Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
