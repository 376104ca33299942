package kmeans

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the common sentinel for argument validation
// failures. All structured argument errors in this package satisfy
// errors.Is(err, ErrInvalidArgument).
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidClusterCount indicates a cluster count that is not positive or
// exceeds the number of points available for initial sampling.
type ErrInvalidClusterCount struct {
	K int
	N int // number of points, -1 if not yet known
}

func (e *ErrInvalidClusterCount) Error() string {
	if e.N >= 0 {
		return fmt.Sprintf("invalid cluster count: k=%d with %d points", e.K, e.N)
	}
	return fmt.Sprintf("invalid cluster count: k=%d", e.K)
}

func (e *ErrInvalidClusterCount) Unwrap() error { return ErrInvalidArgument }

// ErrInvalidIterations indicates an iteration count below one.
type ErrInvalidIterations struct {
	Iterations int
}

func (e *ErrInvalidIterations) Error() string {
	return fmt.Sprintf("invalid iteration count: %d", e.Iterations)
}

func (e *ErrInvalidIterations) Unwrap() error { return ErrInvalidArgument }

// ErrInvalidAssignment indicates an assignment slice of the wrong length
// or an assignment value outside [0, k).
type ErrInvalidAssignment struct {
	Index int // offending point index, -1 for a length mismatch
	Value int
	K     int
}

func (e *ErrInvalidAssignment) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("assignment length %d does not match point count %d", e.Value, e.K)
	}
	return fmt.Sprintf("assignment %d at point %d is outside [0, %d)", e.Value, e.Index, e.K)
}

func (e *ErrInvalidAssignment) Unwrap() error { return ErrInvalidArgument }

// ErrInvalidDimension indicates a non-positive dimension or a point slice
// whose length is not a multiple of the configured dimension.
type ErrInvalidDimension struct {
	Dimension int
	Len       int // offending slice length, -1 if not applicable
}

func (e *ErrInvalidDimension) Error() string {
	if e.Len >= 0 {
		return fmt.Sprintf("point slice length %d is not a multiple of dimension %d", e.Len, e.Dimension)
	}
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return ErrInvalidArgument }
