package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func runInput(t *testing.T, input string) (string, *Controller, error) {
	t.Helper()
	var out bytes.Buffer
	c := NewController(&out)
	err := c.Run(strings.NewReader(input))
	return out.String(), c, err
}

func TestController_KataScenarios(t *testing.T) {
	out, c, err := runInput(t, "5 5\n1 2 N\nLMLMLMLMM\n3 3 E\nMMRMMRMRRM\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if diff := cmp.Diff("1 3 N\n5 1 E\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	want := &PlateauState{
		Width:  5,
		Height: 5,
		Rovers: []RoverState{
			{ID: 1, X: 1, Y: 3, Facing: North},
			{ID: 2, X: 5, Y: 1, Facing: East},
		},
		Occupied: []Position{{1, 3}, {5, 1}},
		Records:  5,
	}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestController_Collision(t *testing.T) {
	out, c, err := runInput(t, "5 5\n1 1 N\nM\n1 3 S\nM\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 output lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "1 2 N" {
		t.Errorf("Expected first rover at 1 2 N, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "blocked by another rover") {
		t.Errorf("Expected collision diagnostic, got %q", lines[1])
	}
	if lines[2] != "1 3 S" {
		t.Errorf("Expected second rover to stay at 1 3 S, got %q", lines[2])
	}

	reports := c.Reports()
	if len(reports) != 2 || reports[1].Blocked != 1 {
		t.Errorf("Expected the second report to record one blocked move, got %+v", reports)
	}
}

func TestController_StackedStartIsAllowed(t *testing.T) {
	out, _, err := runInput(t, "5 5\n2 2 N\nL\n2 2 S\nM\n")
	if err != nil {
		t.Fatalf("Stacked start should not be an error: %v", err)
	}
	if diff := cmp.Diff("2 2 W\n2 1 S\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestController_OutOfBounds(t *testing.T) {
	out, _, err := runInput(t, "1 1\n1 1 N\nM\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected diagnostic and state, got %q", out)
	}
	if !strings.Contains(lines[0], "out of bounds") {
		t.Errorf("Expected out of bounds diagnostic, got %q", lines[0])
	}
	if lines[1] != "1 1 N" {
		t.Errorf("Expected 1 1 N, got %q", lines[1])
	}
}

func TestController_MalformedGrid(t *testing.T) {
	for _, input := range []string{"0 5\n1 2 N\nM\n", "5 -1\n1 2 N\nM\n", "five five\n1 2 N\nM\n"} {
		out, c, err := runInput(t, input)

		var ce *ConfigurationError
		if !errors.As(err, &ce) {
			t.Fatalf("%q: expected ConfigurationError, got %v", input, err)
		}
		if ce.Record != 1 {
			t.Errorf("%q: expected record 1, got %d", input, ce.Record)
		}
		if out != "" {
			t.Errorf("%q: expected no output, got %q", input, out)
		}
		if len(c.Rovers()) != 0 {
			t.Errorf("%q: no rover should be processed", input)
		}
	}
}

func TestController_PlacementIsFatal(t *testing.T) {
	out, _, err := runInput(t, "5 5\n1 2 N\nM\n6 1 N\nM\n2 2 N\nM\n")

	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigurationError, got %v", err)
	}
	if ce.Record != 4 {
		t.Errorf("Expected record 4, got %d", ce.Record)
	}
	var pe *PlacementError
	if !errors.As(err, &pe) {
		t.Errorf("Expected PlacementError in chain, got %v", err)
	}
	if out != "1 3 N\n" {
		t.Errorf("Only the first rover should report, got %q", out)
	}
}

func TestController_UnknownCommand(t *testing.T) {
	out, _, err := runInput(t, "5 5\n1 2 N\nMMXMM\n0 0 E\nM\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "Unidentified character: X\n1 4 N\n1 0 E\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestController_Usage(t *testing.T) {
	tests := []string{"", "5 5\n", "5 5\n1 2 N\n"}

	for _, input := range tests {
		out, _, err := runInput(t, input)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", input, err)
		}
		if out != Usage {
			t.Errorf("%q: expected usage text, got %q", input, out)
		}
	}
}

func TestController_DeployAndDrive(t *testing.T) {
	c := NewController(nil)

	if _, err := c.Deploy(0, 0, North); !errors.Is(err, ErrNoPlateau) {
		t.Errorf("Expected ErrNoPlateau, got %v", err)
	}
	if err := c.InitPlateau(3, 3); err != nil {
		t.Fatalf("InitPlateau failed: %v", err)
	}
	if err := c.InitPlateau(4, 4); !errors.Is(err, ErrPlateauExists) {
		t.Errorf("Expected ErrPlateauExists, got %v", err)
	}

	first, err := c.Deploy(0, 0, North)
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	second, _ := c.Deploy(3, 3, South)
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	report, err := c.Drive(1, "MMM")
	if err != nil {
		t.Fatalf("Drive failed: %v", err)
	}
	if report.Final.String() != "0 3 N" {
		t.Errorf("Expected 0 3 N, got %s", report.Final)
	}

	if _, err := c.Drive(3, "M"); !errors.Is(err, ErrRoverNotFound) {
		t.Errorf("Expected ErrRoverNotFound, got %v", err)
	}
}

func TestController_StateBeforePlateau(t *testing.T) {
	state := NewController(nil).State()
	if state.Width != 0 || len(state.Rovers) != 0 || state.Occupied == nil {
		t.Errorf("Unexpected empty state %+v", state)
	}
}

func TestController_LongCommandRecord(t *testing.T) {
	commands := strings.Repeat("LR", 40000) + "M"
	out, _, err := runInput(t, "5 5\n1 2 N\n"+commands+"\n3 3 E\nM\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if diff := cmp.Diff("1 3 N\n4 3 E\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestController_CRLFAndMissingFinalNewline(t *testing.T) {
	out, _, err := runInput(t, "5 5\r\n1 2 N\r\nLMLMLMLMM\r\n3 3 E\r\nMMRMMRMRRM")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if diff := cmp.Diff("1 3 N\n5 1 E\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
