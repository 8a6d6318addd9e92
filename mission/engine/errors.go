package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBounds    = errors.New("upper grid bounds must be higher than lower grid bounds")
	ErrMalformedRecord  = errors.New("malformed input record")
	ErrOutOfBounds      = errors.New("position is outside the plateau")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrRoverNotFound    = errors.New("rover not found")
	ErrNoPlateau        = errors.New("plateau has not been initialized")
	ErrPlateauExists    = errors.New("plateau already initialized")
)

// ConfigurationError is a fatal setup failure: bad plateau bounds, a
// malformed record, or a rover that cannot be placed. A run that hits one
// must not process any further records.
type ConfigurationError struct {
	Record int // 1-based input record number, 0 when not fed from a stream
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("configuration error on record %d: %s", e.Record, e.Reason)
	}
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// PlacementError reports a rover registration outside the plateau bounds.
type PlacementError struct {
	Position Position
	Upper    Position
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("rover initial position (%d,%d) must be within the grid bounds (0,0)-(%d,%d)",
		e.Position.X, e.Position.Y, e.Upper.X, e.Upper.Y)
}

func (e *PlacementError) Unwrap() error {
	return ErrOutOfBounds
}
