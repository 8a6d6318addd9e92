package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Engine provides the main interface for plateau operations
type Engine interface {
	// Record stream
	Feed(line string) error
	Records() int

	// Plateau
	InitPlateau(width, height int) error
	Grid() *Grid
	State() *PlateauState

	// Rovers
	Deploy(x, y int, facing Direction) (*Rover, error)
	Drive(id int, commands string) (*Report, error)
	Rover(id int) (*Rover, error)
	Rovers() []*Rover
	Reports() []*Report
}

// Controller owns one plateau and the rovers deployed on it. Rovers are
// created and driven strictly one at a time in the order records arrive.
type Controller struct {
	out     io.Writer
	grid    *Grid
	rovers  []*Rover
	reports []*Report
	records int
}

var _ Engine = (*Controller)(nil)

// NewController creates a controller that writes rover reports to out.
// A nil out discards them.
func NewController(out io.Writer) *Controller {
	if out == nil {
		out = io.Discard
	}
	return &Controller{out: out}
}

// Run feeds every line of r to the controller. It stops at the first
// configuration error. Fewer than three records produce the usage text.
func (c *Controller) Run(r io.Reader) error {
	// Command records have no length limit
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if feedErr := c.Feed(line); feedErr != nil {
				return feedErr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	if c.records < 3 {
		fmt.Fprint(c.out, Usage)
	}
	return nil
}

// Feed processes the next input record: the first builds the plateau, even
// records deploy a rover and the remaining odd records drive the latest rover.
func (c *Controller) Feed(line string) error {
	c.records++

	switch {
	case c.records == 1:
		return c.createPlateau(line)
	case c.records%2 == 0:
		return c.spawnRover(line)
	default:
		return c.updateRover(line)
	}
}

// Records returns how many records have been fed so far
func (c *Controller) Records() int {
	return c.records
}

func (c *Controller) createPlateau(line string) error {
	width, height, err := ParsePlateau(line)
	if err != nil {
		return &ConfigurationError{Record: c.records, Reason: err.Error(), Err: err}
	}
	if err := c.InitPlateau(width, height); err != nil {
		return withRecord(err, c.records)
	}
	return nil
}

func (c *Controller) spawnRover(line string) error {
	x, y, facing, err := ParseSpawn(line)
	if err != nil {
		return &ConfigurationError{Record: c.records, Reason: err.Error(), Err: err}
	}
	if _, err := c.Deploy(x, y, facing); err != nil {
		return withRecord(err, c.records)
	}
	return nil
}

func (c *Controller) updateRover(line string) error {
	if len(c.rovers) == 0 {
		return &ConfigurationError{Record: c.records, Reason: "no rover to command", Err: ErrRoverNotFound}
	}
	report, err := c.Drive(len(c.rovers), line)
	if err != nil {
		return err
	}

	for _, msg := range report.Diagnostics() {
		fmt.Fprintln(c.out, msg)
	}
	fmt.Fprintln(c.out, report.Final.String())
	return nil
}

// InitPlateau creates the plateau. It can only be called once.
func (c *Controller) InitPlateau(width, height int) error {
	if c.grid != nil {
		return ErrPlateauExists
	}
	grid, err := NewGrid(width, height)
	if err != nil {
		return err
	}
	c.grid = grid
	return nil
}

// Grid returns the plateau, or nil before InitPlateau
func (c *Controller) Grid() *Grid {
	return c.grid
}

// Deploy places a new rover on the plateau. Placement failures are
// configuration errors.
func (c *Controller) Deploy(x, y int, facing Direction) (*Rover, error) {
	if c.grid == nil {
		return nil, &ConfigurationError{Reason: "rover deployed before the plateau", Err: ErrNoPlateau}
	}

	rover, err := NewRover(x, y, facing, c.grid)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error(), Err: err}
	}
	rover.ID = len(c.rovers) + 1
	c.rovers = append(c.rovers, rover)
	return rover, nil
}

// Drive runs a command string against the rover with the given id.
func (c *Controller) Drive(id int, commands string) (*Report, error) {
	rover, err := c.Rover(id)
	if err != nil {
		return nil, err
	}
	report := rover.Execute(commands)
	c.reports = append(c.reports, report)
	return report, nil
}

// Rover returns the rover with the given 1-based id
func (c *Controller) Rover(id int) (*Rover, error) {
	if id < 1 || id > len(c.rovers) {
		return nil, fmt.Errorf("%w: %d", ErrRoverNotFound, id)
	}
	return c.rovers[id-1], nil
}

// Rovers returns every deployed rover in deployment order
func (c *Controller) Rovers() []*Rover {
	out := make([]*Rover, len(c.rovers))
	copy(out, c.rovers)
	return out
}

// Reports returns the report of every Drive call in order
func (c *Controller) Reports() []*Report {
	out := make([]*Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// State returns a snapshot of the plateau and its rovers
func (c *Controller) State() *PlateauState {
	state := &PlateauState{
		Rovers:   make([]RoverState, 0, len(c.rovers)),
		Occupied: []Position{},
		Records:  c.records,
	}
	if c.grid == nil {
		return state
	}

	state.Width = c.grid.Width()
	state.Height = c.grid.Height()
	state.Occupied = c.grid.Occupied()
	for _, r := range c.rovers {
		state.Rovers = append(state.Rovers, r.State())
	}
	return state
}

func withRecord(err error, record int) error {
	if ce, ok := err.(*ConfigurationError); ok {
		ce.Record = record
		return ce
	}
	return &ConfigurationError{Record: record, Reason: err.Error(), Err: err}
}
