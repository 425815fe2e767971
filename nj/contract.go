package nj

import (
	"fmt"

	"github.com/katalvlaran/njtree/matrix"
)

// contract returns the (k−1)×(k−1) matrix after joining rows i<j.
//
// Row/column j is dropped and every later index shifts down by one. Row and
// column i stand for the new parent u; for every surviving m
//
//	D(u,m) = 0.5·(D(i,m) + D(j,m) − D(i,j))
//
// All other cells are copied unchanged, so a symmetric zero-diagonal input
// yields a symmetric zero-diagonal output.
// Complexity: O(k²).
func contract(d *matrix.Dense, i, j int) (*matrix.Dense, error) {
	if i >= j {
		return nil, fmt.Errorf("%w: contract(%d,%d) requires i<j", ErrInvariant, i, j)
	}
	next, err := d.Without(j)
	if err != nil {
		return nil, njErrorf("contract", err)
	}

	k := d.Rows()
	dij, _ := d.At(i, j)
	var (
		m, om    int
		dim, djm float64
		v        float64
	)
	for m = 0; m < k-1; m++ {
		if m == i {
			continue
		}
		om = m // index of m in d
		if m >= j {
			om = m + 1
		}
		dim, _ = d.At(i, om)
		djm, _ = d.At(j, om)
		v = 0.5 * (dim + djm - dij)
		if err = next.Set(i, m, v); err != nil {
			return nil, njErrorf("contract", err)
		}
		if err = next.Set(m, i, v); err != nil {
			return nil, njErrorf("contract", err)
		}
	}

	return next, nil
}

// reindex builds the next active mapping: slot i names parent, slot j is
// removed and later slots shift down. The input slice is not modified.
func reindex(active []int, i, j, parent int) []int {
	out := make([]int, 0, len(active)-1)
	for x, id := range active {
		switch x {
		case i:
			out = append(out, parent)
		case j:
			// dropped
		default:
			out = append(out, id)
		}
	}

	return out
}
