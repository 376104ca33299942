package colorquant

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colorquant/kmeans"
	"github.com/hupe1980/colorquant/palette"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidIterations is returned when the iteration count is not positive.
	ErrInvalidIterations = errors.New("iterations must be positive")

	// ErrTooFewPoints is returned when the input holds fewer points than k.
	ErrTooFewPoints = errors.New("fewer points than clusters")
)

// ErrDimensionMismatch indicates a point/configuration dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var icc *kmeans.ErrInvalidClusterCount
	if errors.As(err, &icc) {
		if icc.N >= 0 && icc.K > icc.N {
			return fmt.Errorf("%w: %w", ErrTooFewPoints, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	var iit *kmeans.ErrInvalidIterations
	if errors.As(err, &iit) {
		return fmt.Errorf("%w: %w", ErrInvalidIterations, err)
	}

	var id *kmeans.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrDimensionMismatch{Expected: id.Dimension, Actual: id.Len, cause: err}
	}

	var am *palette.ErrAssignmentMismatch
	if errors.As(err, &am) {
		return &ErrDimensionMismatch{Expected: am.Expected, Actual: am.Len, cause: err}
	}

	return err
}
