package engine

import "fmt"

// Handle identifies one occupancy entry on a Grid. Each rover holds the
// handle it received from Register and hands it back on every move.
type Handle int

// Grid is the rectangular plateau. The lower bound is always the origin;
// the upper bound is inclusive on both axes.
type Grid struct {
	upper    Position
	occupied []Position
}

// NewGrid creates a plateau whose upper-right corner is (width, height)
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("upper grid bounds must be higher than lower grid bounds, got %d %d", width, height),
			Err:    ErrInvalidBounds,
		}
	}
	return &Grid{upper: Position{X: width, Y: height}}, nil
}

// Width returns the x coordinate of the upper bound
func (g *Grid) Width() int {
	return g.upper.X
}

// Height returns the y coordinate of the upper bound
func (g *Grid) Height() int {
	return g.upper.Y
}

// InBounds reports whether p lies within (0,0)-(width,height) inclusive.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= g.upper.X && p.Y <= g.upper.Y
}

// IsOccupied reports whether some registered rover currently stands on p.
func (g *Grid) IsOccupied(p Position) bool {
	for _, pos := range g.occupied {
		if pos == p {
			return true
		}
	}
	return false
}

// Register adds p to the occupancy set and returns its handle.
// Registering onto an already occupied cell is allowed.
func (g *Grid) Register(p Position) (Handle, error) {
	if !g.InBounds(p) {
		return 0, &PlacementError{Position: p, Upper: g.upper}
	}
	g.occupied = append(g.occupied, p)
	return Handle(len(g.occupied) - 1), nil
}

// Update moves the occupancy entry h to p.
func (g *Grid) Update(h Handle, p Position) error {
	if int(h) < 0 || int(h) >= len(g.occupied) {
		return fmt.Errorf("unknown occupancy handle %d", h)
	}
	if !g.InBounds(p) {
		return &PlacementError{Position: p, Upper: g.upper}
	}
	g.occupied[h] = p
	return nil
}

// Lookup returns the position held by h
func (g *Grid) Lookup(h Handle) (Position, bool) {
	if int(h) < 0 || int(h) >= len(g.occupied) {
		return Position{}, false
	}
	return g.occupied[h], true
}

// Occupied returns a copy of every occupied position in registration order
func (g *Grid) Occupied() []Position {
	out := make([]Position, len(g.occupied))
	copy(out, g.occupied)
	return out
}
