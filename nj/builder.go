package nj

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/njtree/matrix"
	"go.uber.org/zap"
)

// phase is the Builder lifecycle position.
type phase uint8

const (
	phaseConstructed phase = iota
	phaseIterating
	phaseResolved
	phaseFailed
)

// minTaxa is the smallest input that yields an internal topology.
const minTaxa = 3

// Builder runs one Neighbor-Joining reconstruction.
//
// The node arena grows by one internal node per merge; arena index x is
// node id x for every non-root node. The working state is replaced on every
// merge. A Builder is not safe for concurrent use.
type Builder struct {
	opts  Options
	log   *zap.Logger
	nodes []*Node
	st    *state
	root  *Node
	phase phase

	nTaxa      int
	iterations int
	operations int
}

// New validates dist and labels and prepares a Builder.
//
// Preconditions and validation (in order):
//  1. every row of dist has len(dist) entries (ErrNonSquare).
//  2. len(labels) == len(dist) (ErrLabelMismatch).
//  3. len(dist) ≥ 3 (ErrTooFewTaxa).
//  4. all entries finite (ErrNonFinite) and ≥ 0 (ErrNegativeDistance).
//
// The input is copied. Triangles are averaged and the diagonal is zeroed;
// deviations above the symmetry tolerance are logged at Warn level, or
// rejected with ErrAsymmetric under WithStrictSymmetry.
func New(dist [][]float64, labels []string, opts ...Option) (*Builder, error) {
	n := len(dist)
	for i, row := range dist {
		if len(row) != n {
			return nil, fmt.Errorf("New: row %d has %d entries, want %d: %w", i, len(row), n, ErrNonSquare)
		}
	}
	if err := checkShape(n, len(labels)); err != nil {
		return nil, njErrorf("New", err)
	}

	d, err := matrix.FromRows(dist)
	if err != nil {
		if errors.Is(err, matrix.ErrNaNInf) {
			return nil, fmt.Errorf("New: %w: %v", ErrNonFinite, err)
		}
		return nil, njErrorf("New", err)
	}

	return newBuilder(d, labels, gatherOptions(opts...))
}

// NewFromMatrix is New for an existing matrix; m is cloned, never modified.
func NewFromMatrix(m matrix.Matrix, labels []string, opts ...Option) (*Builder, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		if errors.Is(err, matrix.ErrNonSquare) {
			return nil, fmt.Errorf("NewFromMatrix: %w: %v", ErrNonSquare, err)
		}
		return nil, njErrorf("NewFromMatrix", err)
	}
	n := m.Rows()
	if err := checkShape(n, len(labels)); err != nil {
		return nil, njErrorf("NewFromMatrix", err)
	}

	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, njErrorf("NewFromMatrix", err)
	}
	var v float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, _ = m.At(i, j)
			if err = d.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("NewFromMatrix: %w: %v", ErrNonFinite, err)
			}
		}
	}

	return newBuilder(d, labels, gatherOptions(opts...))
}

// checkShape applies the label and size rules shared by both constructors.
func checkShape(n, nLabels int) error {
	if nLabels != n {
		return fmt.Errorf("%d labels for a %d×%d matrix: %w", nLabels, n, n, ErrLabelMismatch)
	}
	if n < minTaxa {
		return fmt.Errorf("got %d taxa: %w", n, ErrTooFewTaxa)
	}

	return nil
}

// newBuilder normalizes d in place and seeds the arena with one leaf per label.
func newBuilder(d *matrix.Dense, labels []string, opts Options) (*Builder, error) {
	if err := matrix.ValidateNonNegative(d); err != nil {
		if errors.Is(err, matrix.ErrNaNInf) {
			return nil, fmt.Errorf("New: %w: %v", ErrNonFinite, err)
		}
		return nil, fmt.Errorf("New: %w: %v", ErrNegativeDistance, err)
	}

	maxDev, err := matrix.Symmetrize(d)
	if err != nil {
		return nil, njErrorf("New", err)
	}
	if maxDev > opts.SymmetryTolerance {
		if opts.StrictSymmetry {
			return nil, fmt.Errorf("New: max deviation %g > %g: %w", maxDev, opts.SymmetryTolerance, ErrAsymmetric)
		}
		opts.Logger.Warn("distance matrix is not symmetric, using average of upper and lower triangles",
			zap.Float64("max_deviation", maxDev),
			zap.Float64("tolerance", opts.SymmetryTolerance))
	}
	maxDiag, err := matrix.ZeroDiagonal(d)
	if err != nil {
		return nil, njErrorf("New", err)
	}
	if maxDiag > opts.SymmetryTolerance {
		opts.Logger.Warn("distance matrix has a non-zero diagonal, forcing it to zero",
			zap.Float64("max_diagonal", maxDiag))
	}

	n := len(labels)
	nodes := make([]*Node, n, 2*n-2)
	for i, label := range labels {
		nodes[i] = newLeaf(i, label)
	}

	return &Builder{
		opts:  opts,
		log:   opts.Logger,
		nodes: nodes,
		st:    newState(d),
		nTaxa: n,
	}, nil
}

// Run executes the reconstruction and returns the root.
//
// While more than three nodes are active it selects a pair, estimates both
// branch lengths, creates their parent and contracts the matrix. The last
// three nodes are attached to the root with the three-point formula. An input
// of exactly three taxa goes straight to that step.
//
// Errors: ErrAlreadyRun on a second call; ErrInvariant on internal defects.
func (b *Builder) Run() (*Node, error) {
	return b.RunContext(context.Background())
}

// RunContext is Run with cancellation: ctx is checked before every merge and
// before star resolution. A cancelled run leaves the Builder failed and
// returns ctx.Err() wrapped.
func (b *Builder) RunContext(ctx context.Context) (*Node, error) {
	if b.phase != phaseConstructed {
		return nil, ErrAlreadyRun
	}
	b.phase = phaseIterating
	b.log.Info("starting neighbor joining", zap.Int("n_taxa", b.nTaxa))

	for b.st.size() > minTaxa {
		if err := ctx.Err(); err != nil {
			return nil, b.fail(err)
		}
		if err := b.step(); err != nil {
			return nil, b.fail(err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, b.fail(err)
	}

	root, err := b.resolve()
	if err != nil {
		return nil, b.fail(err)
	}
	b.root = root
	b.phase = phaseResolved

	b.log.Info("neighbor joining completed",
		zap.Int("iterations", b.iterations),
		zap.Int("total_operations", b.operations))

	return root, nil
}

// fail marks the Builder unusable and tags err.
func (b *Builder) fail(err error) error {
	b.phase = phaseFailed
	b.log.Warn("neighbor joining aborted", zap.Int("iteration", b.iterations), zap.Error(err))

	return njErrorf("Run", err)
}

// step performs one merge: select → estimate → join → contract.
func (b *Builder) step() error {
	b.iterations++
	k := b.st.size()

	r, err := matrix.RowSums(b.st.d) // fresh every iteration
	if err != nil {
		return njErrorf("step", err)
	}
	p, q, cells := selectPair(b.st.d, r)
	b.operations += opsPerCell * cells

	vi, vj := branchLengths(b.st.dist(p.i, p.j), r[p.i], r[p.j], k)

	left := b.nodes[b.st.active[p.i]]
	right := b.nodes[b.st.active[p.j]]
	if err = left.join(vi); err != nil {
		return err
	}
	if err = right.join(vj); err != nil {
		return err
	}
	parentIdx := len(b.nodes)
	parent := newAncestor(parentIdx, left, right)
	b.nodes = append(b.nodes, parent)

	next, err := b.st.merge(p, parentIdx)
	if err != nil {
		return err
	}
	b.st = next

	if ce := b.log.Check(zap.DebugLevel, "joined pair"); ce != nil {
		ce.Write(
			zap.Int("iteration", b.iterations),
			zap.Int("k", k),
			zap.String("left", left.id),
			zap.String("right", right.id),
			zap.String("parent", parent.id),
			zap.Float64("q", q),
			zap.Float64("left_length", vi),
			zap.Float64("right_length", vj))
	}
	if b.opts.OnJoin != nil {
		b.opts.OnJoin(b.joinEvent(k, p, q, left, right, parent))
	}

	return nil
}

// joinEvent snapshots the state right after a merge.
func (b *Builder) joinEvent(k int, p pair, q float64, left, right, parent *Node) JoinEvent {
	active := make([]string, len(b.st.active))
	for x, idx := range b.st.active {
		active[x] = b.nodes[idx].id
	}

	return JoinEvent{
		Iteration:   b.iterations,
		Size:        k,
		I:           p.i,
		J:           p.j,
		Q:           q,
		Left:        left.id,
		Right:       right.id,
		Parent:      parent.id,
		LeftLength:  left.distance,
		RightLength: right.distance,
		Active:      active,
		Distances:   b.st.d.Clone().(*matrix.Dense),
	}
}

// Root returns the finished tree or ErrNotBuilt.
func (b *Builder) Root() (*Node, error) {
	if b.phase != phaseResolved {
		return nil, ErrNotBuilt
	}

	return b.root, nil
}

// Newick renders the finished tree; repeated calls return the same string.
func (b *Builder) Newick() (string, error) {
	root, err := b.Root()
	if err != nil {
		return "", err
	}

	return FormatNewick(root), nil
}

// Result bundles the tree record, its Newick text and the run statistics.
func (b *Builder) Result() (*Result, error) {
	root, err := b.Root()
	if err != nil {
		return nil, err
	}

	return &Result{
		Tree:       root.Record(),
		Newick:     FormatNewick(root),
		Statistics: b.Statistics(),
	}, nil
}
