package hexbin

import "errors"

var (
	// ErrEmptyInput is returned when Aggregate is called with no shot events.
	// Lattice bounds are undefined for an empty point cloud.
	ErrEmptyInput = errors.New("hexbin: empty event batch")

	// ErrDegenerateLattice is returned when the lattice cannot be formed:
	// a non-positive bin width or a non-finite coordinate.
	ErrDegenerateLattice = errors.New("hexbin: degenerate lattice")
)
