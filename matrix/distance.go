// SPDX-License-Identifier: MIT

// Package matrix - distance-matrix helpers.
//
// Purpose:
//   - Repair small asymmetries by averaging both triangles (Symmetrize).
//   - Force an exact zero diagonal (ZeroDiagonal).
//   - Compute per-row sums over the current matrix (RowSums).
//   - Materialize the matrix with one row/column removed (Without), shifting
//     every later index down by one so the result stays contiguous.
//
// All helpers operate on *Dense directly over the flat buffer in a fixed
// i→j order.

package matrix

import (
	"fmt"
	"math"
)

const (
	ctxSymmetrize = "Symmetrize"
	ctxWithout    = "Without"
)

// Symmetrize replaces A[i,j] and A[j,i] with their mean, in place, for all i<j.
// It returns the largest |A[i,j] - A[j,i]| observed before the repair, so the
// caller can decide whether the deviation deserves a warning.
//
// Implementation:
//   - Stage 1: validate non-nil and square.
//   - Stage 2: scan the strict upper triangle once, averaging each pair.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n²), no allocations.
func Symmetrize(m *Dense) (float64, error) {
	if m == nil {
		return 0, validatorErrorf(ctxSymmetrize, ErrNilMatrix)
	}
	if m.r != m.c {
		return 0, validatorErrorf(ctxSymmetrize, ErrNonSquare)
	}

	n := m.r
	var (
		i, j     int
		up, lo   int
		dev, avg float64
		maxDev   float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			up = i*n + j
			lo = j*n + i
			dev = math.Abs(m.data[up] - m.data[lo])
			if dev > maxDev {
				maxDev = dev
			}
			avg = 0.5 * (m.data[up] + m.data[lo])
			m.data[up] = avg
			m.data[lo] = avg
		}
	}

	return maxDev, nil
}

// ZeroDiagonal sets every A[i,i] to 0 in place and returns the largest |A[i,i]|
// that was overwritten.
// Complexity: O(n).
func ZeroDiagonal(m *Dense) (float64, error) {
	if m == nil {
		return 0, validatorErrorf("ZeroDiagonal", ErrNilMatrix)
	}
	if m.r != m.c {
		return 0, validatorErrorf("ZeroDiagonal", ErrNonSquare)
	}

	var maxAbs float64
	for i := 0; i < m.r; i++ {
		if v := math.Abs(m.data[i*m.c+i]); v > maxAbs {
			maxAbs = v
		}
		m.data[i*m.c+i] = 0
	}

	return maxAbs, nil
}

// RowSums returns r where r[i] = Σ_j A[i,j].
// Always recomputed from the current buffer; nothing is cached.
// Complexity: O(r*c).
func RowSums(m *Dense) ([]float64, error) {
	if m == nil {
		return nil, validatorErrorf("RowSums", ErrNilMatrix)
	}

	out := make([]float64, m.r)
	var i, j, base int
	var s float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		s = 0
		for j = 0; j < m.c; j++ {
			s += m.data[base+j]
		}
		out[i] = s
	}

	return out, nil
}

// Without returns a new (n-1)×(n-1) Dense equal to m with row k and column k
// removed. Index x>k in m becomes x-1 in the result; indices below k keep
// their position.
//
// Implementation:
//   - Stage 1: validate square, n ≥ 2 and 0 ≤ k < n.
//   - Stage 2: copy every surviving cell with a single pass over the result.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrInvalidDimensions (n<2), ErrOutOfRange.
// Complexity: O(n²) time and space.
func (m *Dense) Without(k int) (*Dense, error) {
	if m == nil {
		return nil, validatorErrorf(ctxWithout, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, validatorErrorf(ctxWithout, ErrNonSquare)
	}
	if m.r < 2 {
		return nil, validatorErrorf(ctxWithout, ErrInvalidDimensions)
	}
	if k < 0 || k >= m.r {
		return nil, fmt.Errorf("Dense.%s: index %d: %w", ctxWithout, k, ErrOutOfRange)
	}

	n := m.r
	res, err := NewDense(n-1, n-1)
	if err != nil {
		return nil, err
	}

	var i, j, si, sj int
	for i = 0; i < n-1; i++ {
		si = i
		if i >= k {
			si = i + 1 // skip the removed row
		}
		for j = 0; j < n-1; j++ {
			sj = j
			if j >= k {
				sj = j + 1 // skip the removed column
			}
			res.data[i*(n-1)+j] = m.data[si*n+sj]
		}
	}

	return res, nil
}
