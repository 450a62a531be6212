package kdtree

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kdgo/geo"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
)

// ErrNonFiniteCoordinate indicates an input point with a NaN or infinite
// coordinate. Build rejects the whole batch rather than producing a tree
// with indeterminate ordering.
type ErrNonFiniteCoordinate struct {
	Index int
	Point geo.Point
}

func (e *ErrNonFiniteCoordinate) Error() string {
	return fmt.Sprintf("non-finite coordinate in point %d: %s", e.Index, e.Point)
}
