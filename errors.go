package kdgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kdgo/geo"
	"github.com/hupe1980/kdgo/kdtree"
)

var (
	// ErrNotFound is returned when an item is not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
)

// ErrNonFiniteCoordinate indicates an input point with a NaN or infinite
// coordinate. The whole batch is rejected.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrNonFiniteCoordinate struct {
	Index int
	Point geo.Point
	cause error
}

func (e *ErrNonFiniteCoordinate) Error() string {
	return fmt.Sprintf("non-finite coordinate in point %d: %s", e.Index, e.Point)
}

func (e *ErrNonFiniteCoordinate) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kdtree.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	var nf *kdtree.ErrNonFiniteCoordinate
	if errors.As(err, &nf) {
		return &ErrNonFiniteCoordinate{Index: nf.Index, Point: nf.Point, cause: err}
	}

	return err
}
