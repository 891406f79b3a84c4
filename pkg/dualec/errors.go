package dualec

import "errors"

var (
	// ErrConfiguration indicates invalid setup: a base point off the curve,
	// a trapdoor scalar without an inverse, or a failed e*Q == P self-check.
	ErrConfiguration = errors.New("dualec: invalid configuration")

	// ErrDegenerateState indicates an intermediate scalar product hit the
	// point at infinity, so no x coordinate exists for the next step.
	ErrDegenerateState = errors.New("dualec: degenerate generator state")

	// ErrInvalidObservation indicates a captured output that cannot have
	// come from a generator with the configured widths.
	ErrInvalidObservation = errors.New("dualec: invalid observation")

	// ErrNotEnoughOutputs indicates fewer than two captured outputs.
	ErrNotEnoughOutputs = errors.New("dualec: need at least two outputs")
)
