package routing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a malformed optimizer request: start equal to
	// end, fewer than two points, an index out of range or a bad chunk size.
	ErrInvalidInput = errors.New("routing: invalid input")

	// ErrMissingCoordinate reports a waypoint that was never geocoded.
	ErrMissingCoordinate = errors.New("routing: missing coordinate")
)

// MissingCoordinateError identifies the waypoint that has no coordinates.
// It matches ErrMissingCoordinate with errors.Is.
type MissingCoordinateError struct {
	Index int
}

func (e *MissingCoordinateError) Error() string {
	return fmt.Sprintf("routing: waypoint %d has no coordinates", e.Index)
}

func (e *MissingCoordinateError) Is(target error) bool {
	return target == ErrMissingCoordinate
}
