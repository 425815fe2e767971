// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic distance fixtures.
//   • Keep all data finite and well-formed unless a test is about bad input.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/njtree/matrix"
	"github.com/stretchr/testify/require"
)

// quartet is the classic 4-taxon additive example.
var quartet = [][]float64{
	{0, 0.2, 0.4, 0.6},
	{0.2, 0, 0.5, 0.7},
	{0.4, 0.5, 0, 0.3},
	{0.6, 0.7, 0.3, 0},
}

// MustRows builds a *Dense from rows or fails the test.
func MustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}
