package pricing

import "errors"

// Error classes for the numerical core. Callers discriminate with
// errors.Is; messages carry the offending value.
var (
	// ErrInvalidArgument indicates a non-finite, out-of-range, or
	// otherwise unusable input parameter.
	ErrInvalidArgument = errors.New("pricing: invalid argument")

	// ErrDimensionMismatch indicates slices whose lengths do not agree
	// with each other or with the grid.
	ErrDimensionMismatch = errors.New("pricing: dimension mismatch")

	// ErrSingularSystem indicates a zero pivot during tridiagonal
	// elimination, i.e. an ill-posed discretization.
	ErrSingularSystem = errors.New("pricing: singular system")
)
