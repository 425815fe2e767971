package nj

import (
	"fmt"
	"math"

	"github.com/katalvlaran/njtree/matrix"
)

// branchLengths returns the lengths from the new parent to i and to j.
//
//	v_i = 0.5·D(i,j) + (R(i) − R(j)) / (2·(k−2))
//	v_j = D(i,j) − v_i
//
// Both are clamped to 0 after v_j is derived from the raw v_i. With k ≤ 2 the
// row sums carry no information and D(i,j) is split evenly.
func branchLengths(dij, ri, rj float64, k int) (float64, float64) {
	if k <= 2 {
		return dij / 2, dij / 2
	}
	vi := 0.5*dij + (ri-rj)/(2*float64(k-2))
	vj := dij - vi

	return math.Max(0, vi), math.Max(0, vj)
}

// BranchLengths computes the two branch lengths for joining rows i and j of
// the square matrix d, using k = d.Rows(). A 2×2 matrix resolves to
// D(i,j)/2 on each side.
//
// Errors: matrix validation errors, matrix.ErrOutOfRange for bad indices,
// ErrInvariant when i == j.
func BranchLengths(d matrix.Matrix, i, j int) (float64, float64, error) {
	if err := matrix.ValidateSquare(d); err != nil {
		return 0, 0, njErrorf("BranchLengths", err)
	}
	k := d.Rows()
	if i < 0 || j < 0 || i >= k || j >= k {
		return 0, 0, fmt.Errorf("BranchLengths: (%d,%d) in %d×%d: %w", i, j, k, k, matrix.ErrOutOfRange)
	}
	if i == j {
		return 0, 0, fmt.Errorf("BranchLengths: %w: cannot join %d with itself", ErrInvariant, i)
	}

	var ri, rj, v float64
	for m := 0; m < k; m++ {
		v, _ = d.At(i, m)
		ri += v
		v, _ = d.At(j, m)
		rj += v
	}
	dij, _ := d.At(i, j)
	vi, vj := branchLengths(dij, ri, rj, k)

	return vi, vj, nil
}
