package nj_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/njtree/matrix"
	"github.com/katalvlaran/njtree/nj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// wiki is the textbook 5-taxon example; every intermediate value is an
// exact binary fraction.
var (
	wiki = [][]float64{
		{0, 5, 9, 9, 8},
		{5, 0, 10, 10, 9},
		{9, 10, 0, 8, 7},
		{9, 10, 8, 0, 3},
		{8, 9, 7, 3, 0},
	}
	wikiLabels = []string{"a", "b", "c", "d", "e"}

	quartet = [][]float64{
		{0, 0.2, 0.4, 0.6},
		{0.2, 0, 0.5, 0.7},
		{0.4, 0.5, 0, 0.3},
		{0.6, 0.7, 0.3, 0},
	}
	quartetLabels = []string{"A", "B", "C", "D"}
)

func mustRun(t *testing.T, dist [][]float64, labels []string, opts ...nj.Option) (*nj.Builder, *nj.Node) {
	t.Helper()
	b, err := nj.New(dist, labels, opts...)
	require.NoError(t, err)
	root, err := b.Run()
	require.NoError(t, err)

	return b, root
}

// TestNew_MalformedInput checks every input rejection before any computation.
func TestNew_MalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dist   [][]float64
		labels []string
		want   error
	}{
		{"ragged", [][]float64{{0, 1, 2}, {1, 0}, {2, 1, 0}}, []string{"A", "B", "C"}, nj.ErrNonSquare},
		{"wide", [][]float64{{0, 1, 2, 3}, {1, 0, 1, 2}, {2, 1, 0, 1}}, []string{"A", "B", "C"}, nj.ErrNonSquare},
		{"label mismatch", quartet, []string{"A", "B", "C"}, nj.ErrLabelMismatch},
		{"empty", nil, nil, nj.ErrTooFewTaxa},
		{"one taxon", [][]float64{{0}}, []string{"A"}, nj.ErrTooFewTaxa},
		{"two taxa", [][]float64{{0, 1}, {1, 0}}, []string{"A", "B"}, nj.ErrTooFewTaxa},
		{"nan", [][]float64{{0, math.NaN(), 1}, {1, 0, 1}, {1, 1, 0}}, []string{"A", "B", "C"}, nj.ErrNonFinite},
		{"inf", [][]float64{{0, 1, 1}, {1, 0, math.Inf(1)}, {1, 1, 0}}, []string{"A", "B", "C"}, nj.ErrNonFinite},
		{"negative", [][]float64{{0, -1, 1}, {-1, 0, 1}, {1, 1, 0}}, []string{"A", "B", "C"}, nj.ErrNegativeDistance},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := nj.New(tc.dist, tc.labels)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, nj.ErrMalformedInput)
		})
	}
}

// TestNewFromMatrix_Validation mirrors New for matrix inputs.
func TestNewFromMatrix_Validation(t *testing.T) {
	t.Parallel()

	rect, err := matrix.NewDense(3, 4)
	require.NoError(t, err)
	_, err = nj.NewFromMatrix(rect, []string{"A", "B", "C"})
	assert.ErrorIs(t, err, nj.ErrNonSquare)

	_, err = nj.NewFromMatrix(nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	m, err := matrix.FromRows(wiki)
	require.NoError(t, err)
	_, err = nj.NewFromMatrix(m, wikiLabels[:4])
	assert.ErrorIs(t, err, nj.ErrLabelMismatch)

	res, err := nj.BuildTreeFromMatrix(m, wikiLabels)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Statistics.Iterations)
	assert.Equal(t, wiki, m.ToRows(), "input matrix must not be modified")
}

// TestRun_Wiki follows the textbook example merge by merge.
func TestRun_Wiki(t *testing.T) {
	t.Parallel()

	b, root := mustRun(t, wiki, wikiLabels)

	assert.Equal(t, nj.RootID, root.ID())
	assert.Equal(t, nj.RootID, root.Label())
	assert.Zero(t, root.Distance())
	require.Len(t, root.Children(), 3)

	inner := root.Children()[0]
	assert.Equal(t, "6", inner.ID())
	assert.Equal(t, "Node_6", inner.Label())
	assert.Equal(t, 2.0, inner.Distance())

	ab := inner.Children()[0]
	assert.Equal(t, "5", ab.ID())
	assert.Equal(t, 3.0, ab.Distance())
	assert.Equal(t, "a", ab.Children()[0].Label())
	assert.Equal(t, 2.0, ab.Children()[0].Distance())
	assert.Equal(t, "b", ab.Children()[1].Label())
	assert.Equal(t, 3.0, ab.Children()[1].Distance())
	assert.Equal(t, "c", inner.Children()[1].Label())
	assert.Equal(t, 4.0, inner.Children()[1].Distance())

	assert.Equal(t, "d", root.Children()[1].Label())
	assert.Equal(t, 2.0, root.Children()[1].Distance())
	assert.Equal(t, "e", root.Children()[2].Label())
	assert.Equal(t, 1.0, root.Children()[2].Distance())

	stats := b.Statistics()
	assert.Equal(t, nj.Statistics{
		Algorithm:       "neighbor_joining",
		NTaxa:           5,
		Iterations:      2,
		TotalOperations: 48, // (10 + 6) cells × 3
		Complexity:      "O(n³) where n=5",
	}, stats)
}

// TestRun_QuartetScenario is the 4-taxon acceptance scenario.
func TestRun_QuartetScenario(t *testing.T) {
	t.Parallel()

	b, root := mustRun(t, quartet, quartetLabels)

	assert.Equal(t, 1, b.Statistics().Iterations)
	assert.Len(t, root.Leaves(), 4)
	assert.Equal(t, 2, root.CountInternal())
	root.Walk(func(n *nj.Node, _ int) {
		assert.GreaterOrEqual(t, n.Distance(), 0.0, "node %s", n.ID())
	})

	s, err := b.Newick()
	require.NoError(t, err)
	assert.True(t, len(s) > 0 && s[len(s)-1] == ';')
	for _, l := range quartetLabels {
		assert.Contains(t, s, l+":")
	}
}

// TestRun_ThreeTaxa resolves the star directly with no iteration.
func TestRun_ThreeTaxa(t *testing.T) {
	t.Parallel()

	b, root := mustRun(t, [][]float64{
		{0, 3, 4},
		{3, 0, 5},
		{4, 5, 0},
	}, []string{"A", "B", "C"})

	assert.Zero(t, b.Statistics().Iterations)
	assert.Zero(t, b.Statistics().TotalOperations)
	kids := root.Children()
	require.Len(t, kids, 3)
	for x, want := range []float64{1, 2, 3} {
		assert.True(t, kids[x].IsLeaf())
		assert.Equal(t, want, kids[x].Distance())
	}
	assert.Equal(t, 1, root.CountInternal())

	s, err := b.Newick()
	require.NoError(t, err)
	assert.Equal(t, "(A:1.000000,B:2.000000,C:3.000000);", s)
}

// TestRun_NegativeLengthClamped engineers a raw v_i of -4.25.
func TestRun_NegativeLengthClamped(t *testing.T) {
	t.Parallel()

	b, root := mustRun(t, [][]float64{
		{0, 0.5, 1, 1},
		{0.5, 0, 10, 10},
		{1, 10, 0, 1},
		{1, 10, 1, 0},
	}, []string{"A", "B", "C", "D"})

	leaves := root.Leaves()
	require.Equal(t, "A", leaves[0].Label())
	assert.Equal(t, 0.0, leaves[0].Distance())
	assert.False(t, math.Signbit(leaves[0].Distance()), "clamped length must be +0")

	root.Walk(func(n *nj.Node, _ int) {
		assert.GreaterOrEqual(t, n.Distance(), 0.0)
	})

	s, err := b.Newick()
	require.NoError(t, err)
	assert.Equal(t, "((A:0.000000,B:4.750000):4.750000,C:0.500000,D:0.500000);", s)
}

// TestRun_Lifecycle covers output before Run and a second Run.
func TestRun_Lifecycle(t *testing.T) {
	t.Parallel()

	b, err := nj.New(wiki, wikiLabels)
	require.NoError(t, err)

	_, err = b.Newick()
	assert.ErrorIs(t, err, nj.ErrNotBuilt)
	_, err = b.Root()
	assert.ErrorIs(t, err, nj.ErrNotBuilt)
	_, err = b.Result()
	assert.ErrorIs(t, err, nj.ErrNotBuilt)

	_, err = b.Run()
	require.NoError(t, err)
	_, err = b.Run()
	assert.ErrorIs(t, err, nj.ErrAlreadyRun)

	// Output is still available after the rejected second Run.
	_, err = b.Newick()
	assert.NoError(t, err)
}

// TestNew_AsymmetricAveraged checks averaging and the advisory warning.
func TestNew_AsymmetricAveraged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	asym := [][]float64{
		{0, 3.2, 4},
		{2.8, 0, 5},
		{4, 5, 0},
	}
	b, root := mustRun(t, asym, []string{"A", "B", "C"}, nj.WithLogger(zap.New(core)))

	// d_AB averages to 3, so the lengths match the symmetric 3/4/5 case.
	assert.InDelta(t, 1.0, root.Children()[0].Distance(), 1e-12)
	assert.InDelta(t, 2.0, root.Children()[1].Distance(), 1e-12)
	assert.Equal(t, 1, logs.FilterMessageSnippet("not symmetric").Len())
	assert.Equal(t, 3, b.Statistics().NTaxa)
	assert.Equal(t, [][]float64{{0, 3.2, 4}, {2.8, 0, 5}, {4, 5, 0}}, asym, "caller input must not be modified")

	// Within tolerance: no warning.
	core, logs = observer.New(zapcore.WarnLevel)
	near := [][]float64{
		{0, 3 + 1e-12, 4},
		{3, 0, 5},
		{4, 5, 0},
	}
	mustRun(t, near, []string{"A", "B", "C"}, nj.WithLogger(zap.New(core)))
	assert.Zero(t, logs.Len())
}

// TestNew_StrictSymmetry rejects asymmetry above the tolerance.
func TestNew_StrictSymmetry(t *testing.T) {
	t.Parallel()

	asym := [][]float64{
		{0, 3.2, 4},
		{2.8, 0, 5},
		{4, 5, 0},
	}
	_, err := nj.New(asym, []string{"A", "B", "C"}, nj.WithStrictSymmetry())
	assert.ErrorIs(t, err, nj.ErrAsymmetric)

	_, err = nj.New(asym, []string{"A", "B", "C"}, nj.WithStrictSymmetry(), nj.WithSymmetryTolerance(0.5))
	assert.NoError(t, err)

	assert.Panics(t, func() { nj.WithSymmetryTolerance(-1) })
	assert.Panics(t, func() { nj.WithSymmetryTolerance(math.NaN()) })
}

// TestNew_NonZeroDiagonal zeroes the diagonal with a warning.
func TestNew_NonZeroDiagonal(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	_, root := mustRun(t, [][]float64{
		{0.5, 3, 4},
		{3, 0, 5},
		{4, 5, 0},
	}, []string{"A", "B", "C"}, nj.WithLogger(zap.New(core)))

	assert.Equal(t, 1.0, root.Children()[0].Distance())
	assert.Equal(t, 1, logs.FilterMessageSnippet("diagonal").Len())
}

// TestRun_DebugLogging exercises the per-join debug entries.
func TestRun_DebugLogging(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	mustRun(t, wiki, wikiLabels, nj.WithLogger(zap.New(core)))

	joins := logs.FilterMessage("joined pair").All()
	require.Len(t, joins, 2)
	assert.Equal(t, "5", joins[0].ContextMap()["parent"])
	assert.Equal(t, 1, logs.FilterMessage("neighbor joining completed").Len())

	// zaptest routes the same entries through t.Log.
	mustRun(t, quartet, quartetLabels, nj.WithLogger(zaptest.NewLogger(t)))
}

// TestRunContext_Cancelled stops before the first merge and fails the Builder.
func TestRunContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	core, logs := observer.New(zapcore.WarnLevel)
	joins := 0
	b, err := nj.New(wiki, wikiLabels,
		nj.WithLogger(zap.New(core)),
		nj.WithOnJoin(func(nj.JoinEvent) { joins++ }))
	require.NoError(t, err)

	_, err = b.RunContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, joins)
	assert.Equal(t, 1, logs.FilterMessage("neighbor joining aborted").Len())

	_, err = b.Root()
	assert.ErrorIs(t, err, nj.ErrNotBuilt)
	_, err = b.Run()
	assert.ErrorIs(t, err, nj.ErrAlreadyRun)

	// Three taxa skip the loop but still honour the context.
	_, err = nj.BuildTreeContext(ctx, [][]float64{{0, 3, 4}, {3, 0, 5}, {4, 5, 0}}, []string{"A", "B", "C"})
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRunContext_CancelMidway cancels from the join hook.
func TestRunContext_CancelMidway(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dist, labels := randomDistances(rand.New(rand.NewSource(3)), 10)
	joins := 0
	b, err := nj.New(dist, labels, nj.WithOnJoin(func(nj.JoinEvent) {
		joins++
		if joins == 2 {
			cancel()
		}
	}))
	require.NoError(t, err)

	_, err = b.RunContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, joins)
	assert.Equal(t, 2, b.Statistics().Iterations)
}
