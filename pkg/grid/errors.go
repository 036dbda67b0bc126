package grid

import "errors"

var (
	// ErrOutOfBounds is returned when a point or linear index falls outside
	// a grid's fixed size.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrInvalidDimensions is returned at construction for sizes that are
	// degenerate or cannot be allocated.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidConfiguration is returned by NewWorld for a bad cell size or pivot.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
