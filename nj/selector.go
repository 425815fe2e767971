package nj

import "github.com/katalvlaran/njtree/matrix"

// pair is the (i,j), i<j, of current indices chosen for a merge.
type pair struct {
	i, j int
}

// opsPerCell is the operation-counter increment per evaluated Q cell.
const opsPerCell = 3

// selectPair evaluates Q(i,j) = (k-2)·D(i,j) − R(i) − R(j) for every i<j of
// the current matrix and returns the first minimum in row-major order.
// r must hold the row sums of d as it is now.
//
// The diagonal is never scanned, which is the same as treating it as +Inf.
// Ties keep the earlier pair because only a strictly smaller score replaces
// the incumbent.
//
// Returns the pair, its score and the number of cells evaluated.
// Complexity: O(k²).
func selectPair(d *matrix.Dense, r []float64) (pair, float64, int) {
	k := d.Rows()
	scale := float64(k - 2)

	var (
		best  pair
		bestQ float64
		cells int
		dij   float64
		q     float64
	)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			dij, _ = d.At(i, j)
			q = scale*dij - r[i] - r[j]
			if cells == 0 || q < bestQ {
				best, bestQ = pair{i: i, j: j}, q
			}
			cells++
		}
	}

	return best, bestQ, cells
}
