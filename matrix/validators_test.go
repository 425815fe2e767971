// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/njtree/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"1x1", MustRows(t, [][]float64{{0}}), nil},
		{"4x4", MustRows(t, quartet), nil},
		{"2x3", MustRows(t, [][]float64{{0, 1, 2}, {1, 0, 3}}), matrix.ErrNonSquare},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.Truef(t, errors.Is(err, tc.want), "expected errors.Is(%v, %v)", err, tc.want)
			}
		})
	}
}

// TestValidateSymmetric covers exact, near and clearly asymmetric inputs.
func TestValidateSymmetric(t *testing.T) {
	t.Parallel()

	near := [][]float64{{0, 1 + 1e-12}, {1, 0}}
	far := [][]float64{{0, 1.5}, {1, 0}}

	require.NoError(t, matrix.ValidateSymmetric(MustRows(t, quartet), 0))
	require.NoError(t, matrix.ValidateSymmetric(MustRows(t, near), 1e-10))
	require.ErrorIs(t, matrix.ValidateSymmetric(MustRows(t, near), 0), matrix.ErrAsymmetry)
	require.ErrorIs(t, matrix.ValidateSymmetric(MustRows(t, far), -1e-10), matrix.ErrAsymmetry)
	require.ErrorIs(t, matrix.ValidateSymmetric(MustRows(t, far), math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateSymmetric(nil, 0), matrix.ErrNilMatrix)
}

// TestValidateZeroDiagonal flags non-zero self distances.
func TestValidateZeroDiagonal(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateZeroDiagonal(MustRows(t, quartet), 0))
	bad := MustRows(t, [][]float64{{0, 1}, {1, 0.5}})
	require.ErrorIs(t, matrix.ValidateZeroDiagonal(bad, 1e-10), matrix.ErrNonZeroDiagonal)
}

// TestValidateNonNegative flags negative distances.
func TestValidateNonNegative(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateNonNegative(MustRows(t, quartet)))
	bad := MustRows(t, [][]float64{{0, -1}, {-1, 0}})
	require.ErrorIs(t, matrix.ValidateNonNegative(bad), matrix.ErrNegative)
	require.ErrorIs(t, matrix.ValidateNonNegative(nil), matrix.ErrNilMatrix)
}
