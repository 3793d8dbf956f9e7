package board

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange    = errors.New("value out of range")
	ErrTileOccupied  = errors.New("tile is not empty")
	ErrInvalidAction = errors.New("invalid action")
)

// ValidationError is returned by a validating Engine when an argument is
// outside its allowed range. It matches ErrOutOfRange with errors.Is.
type ValidationError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d",
		e.Field, e.Min, e.Max, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrOutOfRange
}

func checkRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return &ValidationError{Field: field, Value: value, Min: lo, Max: hi}
	}
	return nil
}
