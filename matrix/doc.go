// Package matrix provides the dense, row-major distance storage used by the
// Neighbor-Joining builder.
//
// The matrix package provides:
//
//   - Dense, a flat row-major float64 buffer with bounds-checked At/Set.
//   - Validators (square, symmetric, zero diagonal, finite, non-negative)
//     that return package sentinels so callers can match them via errors.Is.
//   - Distance helpers: Symmetrize (average both triangles in place),
//     RowSums and Without (drop one row/column, shifting later ones down).
//
// Every helper walks the buffer in a fixed i→j order, so results are
// bit-for-bit reproducible for the same input.
//
// Complexity quicksheet:
//   - NewDense/FromRows: O(n²); At/Set: O(1); Clone: O(n²)
//   - Symmetrize, RowSums, Without: O(n²)
package matrix
