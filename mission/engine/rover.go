package engine

import (
	"fmt"
	"strings"
)

// Rover is a vehicle registered on a Grid. Its position is always the
// occupancy entry referenced by its handle.
type Rover struct {
	ID       int
	position Position
	facing   Vector
	grid     *Grid
	handle   Handle
	history  []Event
}

// NewRover places a rover at (x, y) facing the given direction and registers
// it with grid. Registration failures are returned as *PlacementError.
func NewRover(x, y int, facing Direction, grid *Grid) (*Rover, error) {
	if grid == nil {
		return nil, ErrNoPlateau
	}
	if !facing.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, string(facing))
	}

	pos := Position{X: x, Y: y}
	handle, err := grid.Register(pos)
	if err != nil {
		return nil, err
	}

	return &Rover{
		position: pos,
		facing:   facing.Vector(),
		grid:     grid,
		handle:   handle,
		history:  []Event{},
	}, nil
}

// Position returns the rover's current coordinates
func (r *Rover) Position() Position {
	return r.position
}

// Facing returns the direction the rover is pointing to
func (r *Rover) Facing() Direction {
	return r.facing.Direction()
}

// State returns the rover's id, position and heading
func (r *Rover) State() RoverState {
	return RoverState{ID: r.ID, X: r.position.X, Y: r.position.Y, Facing: r.Facing()}
}

// History returns a copy of every command event the rover has processed
func (r *Rover) History() []Event {
	out := make([]Event, len(r.history))
	copy(out, r.history)
	return out
}

// TurnLeft rotates the rover 90 degrees counter-clockwise
func (r *Rover) TurnLeft() {
	r.turn("L", r.facing.RotateLeft())
}

// TurnRight rotates the rover 90 degrees clockwise
func (r *Rover) TurnRight() {
	r.turn("R", r.facing.RotateRight())
}

func (r *Rover) turn(cmd string, to Vector) {
	r.facing = to
	r.record(Event{Type: EventTurn, Command: cmd, From: r.position, To: r.position, Facing: r.Facing()})
}

// Move advances the rover one cell along its heading. A move that would leave
// the plateau or land on another rover is rejected: a diagnostic event is
// recorded, state is left unchanged and false is returned.
func (r *Rover) Move() bool {
	from := r.position
	target := from.Add(r.facing)
	heading := r.Facing()

	if !r.grid.InBounds(target) {
		r.record(Event{
			Type:    EventBlockedBoundary,
			Command: "M",
			From:    from,
			To:      target,
			Facing:  heading,
			Message: fmt.Sprintf("Unable to move %s from %s, out of bounds error. Trying next processable move..", heading, from),
		})
		return false
	}

	if r.grid.IsOccupied(target) {
		r.record(Event{
			Type:    EventBlockedRover,
			Command: "M",
			From:    from,
			To:      target,
			Facing:  heading,
			Message: fmt.Sprintf("Unable to move %s from %s as %s is blocked by another rover. Trying next processable move..", heading, from, target),
		})
		return false
	}

	if err := r.grid.Update(r.handle, target); err != nil {
		// InBounds was checked above; the handle is ours
		panic(fmt.Sprintf("engine: occupancy out of sync for rover %d: %v", r.ID, err))
	}
	r.position = target
	r.record(Event{Type: EventMove, Command: "M", From: from, To: target, Facing: heading})
	return true
}

// Execute interprets commands left to right: M moves, L and R turn. The first
// unrecognized character stops interpretation; commands already applied stay
// applied. The returned report always carries the final state.
func (r *Rover) Execute(commands string) *Report {
	commands = strings.TrimSpace(commands)
	report := &Report{
		RoverID:  r.ID,
		Commands: commands,
		Start:    r.State(),
	}
	mark := len(r.history)

	tokens, err := Tokenize(commands)
	if err != nil {
		r.record(Event{
			Type:    EventUnknownCommand,
			From:    r.position,
			To:      r.position,
			Facing:  r.Facing(),
			Message: fmt.Sprintf("Unable to read commands: %v", err),
		})
		report.Aborted = true
	}

	for _, cmd := range tokens {
		switch cmd.Kind {
		case CommandMove:
			if r.Move() {
				report.Moves++
			} else {
				report.Blocked++
			}
		case CommandLeft:
			r.TurnLeft()
		case CommandRight:
			r.TurnRight()
		default:
			r.record(Event{
				Type:    EventUnknownCommand,
				Command: cmd.Literal,
				Column:  cmd.Column,
				From:    r.position,
				To:      r.position,
				Facing:  r.Facing(),
				Message: "Unidentified character: " + cmd.Literal,
			})
			report.Aborted = true
		}
		if report.Aborted {
			break
		}
		report.Executed++
	}

	report.Final = r.State()
	report.Events = append([]Event{}, r.history[mark:]...)
	return report
}

func (r *Rover) record(ev Event) {
	r.history = append(r.history, ev)
}
