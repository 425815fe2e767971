package nj

import "github.com/katalvlaran/njtree/matrix"

// JoinEvent describes one merge of the iterative phase, as seen right after
// the matrix was contracted.
type JoinEvent struct {
	// Iteration is 1-based.
	Iteration int

	// Size is k before the merge; the contracted matrix is (k-1)×(k-1).
	Size int

	// I and J are the merged row indices, I < J.
	I, J int

	// Q is the winning adjusted distance.
	Q float64

	// Left, Right and Parent are node ids.
	Left, Right, Parent string

	// LeftLength and RightLength are the clamped branch lengths.
	LeftLength, RightLength float64

	// Active lists node ids by row of the contracted matrix.
	Active []string

	// Distances is a private copy of the contracted matrix.
	Distances *matrix.Dense
}
