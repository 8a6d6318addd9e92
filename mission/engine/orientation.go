package engine

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal headings a rover can face.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

// Vector is a unit movement step on the plateau
type Vector struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	compass = map[Direction]Vector{
		North: {DX: 0, DY: 1},
		South: {DX: 0, DY: -1},
		East:  {DX: 1, DY: 0},
		West:  {DX: -1, DY: 0},
	}
	headings = map[Vector]Direction{
		{DX: 0, DY: 1}:  North,
		{DX: 0, DY: -1}: South,
		{DX: 1, DY: 0}:  East,
		{DX: -1, DY: 0}: West,
	}
)

// Directions returns the four cardinal directions in compass order.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}

// ParseDirection converts a single-letter heading (N, S, E, W) into a Direction
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.TrimSpace(s))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	_, ok := compass[d]
	return ok
}

// Vector returns the unit movement vector for d. It panics if d is not a
// cardinal direction.
func (d Direction) Vector() Vector {
	v, ok := compass[d]
	if !ok {
		panic(fmt.Sprintf("engine: no vector for direction %q", string(d)))
	}
	return v
}

// Left returns the direction 90 degrees counter-clockwise of d.
func (d Direction) Left() Direction {
	return d.Vector().RotateLeft().Direction()
}

// Right returns the direction 90 degrees clockwise of d.
func (d Direction) Right() Direction {
	return d.Vector().RotateRight().Direction()
}

// Direction returns the cardinal direction v points to.
// It panics if v is not one of the four unit vectors.
func (v Vector) Direction() Direction {
	d, ok := headings[v]
	if !ok {
		panic(fmt.Sprintf("engine: vector (%d,%d) is not a cardinal unit vector", v.DX, v.DY))
	}
	return d
}

// RotateLeft turns v 90 degrees counter-clockwise: (dx, dy) -> (-dy, dx).
func (v Vector) RotateLeft() Vector {
	return Vector{DX: -v.DY, DY: v.DX}
}

// RotateRight turns v 90 degrees clockwise: (dx, dy) -> (dy, -dx).
func (v Vector) RotateRight() Vector {
	return Vector{DX: v.DY, DY: -v.DX}
}
