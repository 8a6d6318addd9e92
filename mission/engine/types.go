package engine

import "fmt"

// EventType classifies what happened when a rover processed one command
type EventType string

const (
	EventMove            EventType = "move"
	EventTurn            EventType = "turn"
	EventBlockedBoundary EventType = "blocked_boundary"
	EventBlockedRover    EventType = "blocked_rover"
	EventUnknownCommand  EventType = "unknown_command"
)

// Position represents x,y coordinates on the plateau
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position one step along v.
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.DX, Y: p.Y + v.DY}
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// RoverState is the externally visible state of a rover
type RoverState struct {
	ID     int       `json:"id"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Facing Direction `json:"facing"`
}

// String renders the state in the output format "x y D".
func (s RoverState) String() string {
	return fmt.Sprintf("%d %d %s", s.X, s.Y, s.Facing)
}

// Event records a single processed command in a rover's history
type Event struct {
	Type    EventType `json:"type"`
	Command string    `json:"command"`
	Column  int       `json:"column,omitempty"` // 1-based offset in the command string
	From    Position  `json:"from"`
	To      Position  `json:"to"`
	Facing  Direction `json:"facing"`
	Message string    `json:"message,omitempty"`
}

// Rejected reports whether the event is a diagnostic: a blocked move or an
// unrecognized command.
func (e Event) Rejected() bool {
	switch e.Type {
	case EventBlockedBoundary, EventBlockedRover, EventUnknownCommand:
		return true
	}
	return false
}

// Report summarizes one Execute call on a rover
type Report struct {
	RoverID  int        `json:"rover_id"`
	Commands string     `json:"commands"`
	Start    RoverState `json:"start"`
	Final    RoverState `json:"final"`
	Executed int        `json:"executed"` // commands applied before completion or abort
	Moves    int        `json:"moves"`
	Blocked  int        `json:"blocked"`
	Aborted  bool       `json:"aborted"`
	Events   []Event    `json:"events"`
}

// Diagnostics returns the messages of every rejected event, in order.
func (r *Report) Diagnostics() []string {
	var out []string
	for _, ev := range r.Events {
		if ev.Rejected() {
			out = append(out, ev.Message)
		}
	}
	return out
}

// PlateauState is a snapshot of the plateau and every rover on it
type PlateauState struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Rovers   []RoverState `json:"rovers"`
	Occupied []Position   `json:"occupied"`
	Records  int          `json:"records"`
}
