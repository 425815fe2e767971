package nj

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree construction.
//
// Every input error wraps ErrMalformedInput, so callers may match either the
// specific sentinel or the whole class:
//
//	errors.Is(err, nj.ErrTooFewTaxa)     // specific
//	errors.Is(err, nj.ErrMalformedInput) // any input problem
var (
	// ErrMalformedInput is the umbrella for every rejected input.
	ErrMalformedInput = errors.New("nj: malformed input")

	// ErrNonSquare indicates a distance matrix whose rows are not all n long.
	ErrNonSquare = fmt.Errorf("%w: distance matrix is not square", ErrMalformedInput)

	// ErrLabelMismatch indicates len(labels) differs from the matrix dimension.
	ErrLabelMismatch = fmt.Errorf("%w: label count does not match matrix dimension", ErrMalformedInput)

	// ErrTooFewTaxa indicates fewer than three taxa.
	ErrTooFewTaxa = fmt.Errorf("%w: at least 3 taxa are required", ErrMalformedInput)

	// ErrNonFinite indicates a NaN or ±Inf distance.
	ErrNonFinite = fmt.Errorf("%w: distance is NaN or Inf", ErrMalformedInput)

	// ErrNegativeDistance indicates a negative input distance.
	ErrNegativeDistance = fmt.Errorf("%w: distance is negative", ErrMalformedInput)

	// ErrAsymmetric is returned only under WithStrictSymmetry when the two
	// triangles differ by more than the symmetry tolerance.
	ErrAsymmetric = fmt.Errorf("%w: distance matrix is not symmetric", ErrMalformedInput)

	// ErrInvariant reports an internal defect, e.g. a final active-node count
	// other than 3 at star resolution. It should be unreachable.
	ErrInvariant = errors.New("nj: internal invariant violated")

	// ErrNotBuilt is returned when output is requested before Run completed.
	ErrNotBuilt = errors.New("nj: tree not yet constructed, call Run first")

	// ErrAlreadyRun is returned by a second call to Run on the same Builder.
	ErrAlreadyRun = errors.New("nj: builder already ran")
)

// njErrorf wraps err with a call-site tag.
func njErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
