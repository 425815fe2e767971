package nj

import (
	"fmt"

	"github.com/katalvlaran/njtree/matrix"
)

// state is the current k×k distance matrix plus the row → node mapping.
// active[r] is the arena index of the node that row/column r stands for.
// Both are replaced, never edited, on every merge.
type state struct {
	d      *matrix.Dense
	active []int
}

// newState maps row r to leaf r.
func newState(d *matrix.Dense) *state {
	active := make([]int, d.Rows())
	for i := range active {
		active[i] = i
	}

	return &state{d: d, active: active}
}

// size returns k, the number of active nodes.
func (s *state) size() int { return len(s.active) }

// dist returns D(i,j) of the current matrix.
func (s *state) dist(i, j int) float64 {
	v, _ := s.d.At(i, j) // callers only pass indices below size()
	return v
}

// merge contracts the pair and returns the next state, in which row p.i
// stands for parent and row p.j is gone.
func (s *state) merge(p pair, parent int) (*state, error) {
	d, err := contract(s.d, p.i, p.j)
	if err != nil {
		return nil, err
	}
	next := &state{d: d, active: reindex(s.active, p.i, p.j, parent)}
	if next.d.Rows() != len(next.active) {
		return nil, fmt.Errorf("%w: %d rows but %d active nodes", ErrInvariant, next.d.Rows(), len(next.active))
	}

	return next, nil
}
