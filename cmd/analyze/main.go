// Command analyze replays every mission in a configs directory and prints
// quick, human-readable heuristics: final rover positions, blocked moves,
// aborted command strings and how much of the plateau the rovers covered.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// MissionAnalysis summarizes one replayed mission.
type MissionAnalysis struct {
	Name     string
	Width    int
	Height   int
	Finals   []engine.RoverState
	Moves    int
	Blocked  int
	Aborted  int
	Stacked  []engine.Position // start cells shared by more than one rover
	Visited  int               // distinct cells any rover stood on
	Cells    int
	ErrorMsg string
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := analyzeDir(dir, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func analyzeDir(dir string, w io.Writer) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintf(w, "No missions found in %s\n", dir)
		return nil
	}

	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)

		mission, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "Error loading mission: %v\n", err)
			continue
		}
		printAnalysis(w, analyzeMission(mission))
	}
	return nil
}

func analyzeMission(mission *engine.MissionConfig) *MissionAnalysis {
	a := &MissionAnalysis{
		Name:   mission.Name,
		Width:  mission.Plateau.Width,
		Height: mission.Plateau.Height,
		Cells:  (mission.Plateau.Width + 1) * (mission.Plateau.Height + 1),
	}

	starts := make(map[engine.Position]int)
	for _, r := range mission.Rovers {
		starts[engine.Position{X: r.X, Y: r.Y}]++
	}
	for pos, n := range starts {
		if n > 1 {
			a.Stacked = append(a.Stacked, pos)
		}
	}
	sort.Slice(a.Stacked, func(i, j int) bool {
		if a.Stacked[i].X != a.Stacked[j].X {
			return a.Stacked[i].X < a.Stacked[j].X
		}
		return a.Stacked[i].Y < a.Stacked[j].Y
	})

	controller, err := engine.Replay(mission, nil)
	if err != nil {
		a.ErrorMsg = err.Error()
	}
	if controller == nil {
		return a
	}

	visited := make(map[engine.Position]bool)
	for _, rep := range controller.Reports() {
		a.Finals = append(a.Finals, rep.Final)
		a.Moves += rep.Moves
		a.Blocked += rep.Blocked
		if rep.Aborted {
			a.Aborted++
		}

		visited[engine.Position{X: rep.Start.X, Y: rep.Start.Y}] = true
		for _, ev := range rep.Events {
			if ev.Type == engine.EventMove {
				visited[ev.To] = true
			}
		}
	}
	a.Visited = len(visited)
	return a
}

func printAnalysis(w io.Writer, a *MissionAnalysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Plateau: (0,0)-(%d,%d)\n", a.Width, a.Height)
	fmt.Fprintf(w, "Rovers: %d\n", len(a.Finals))
	for i, final := range a.Finals {
		fmt.Fprintf(w, "   Rover %d: %s\n", i+1, final)
	}
	fmt.Fprintf(w, "Moves: %d, blocked: %d, aborted command strings: %d\n", a.Moves, a.Blocked, a.Aborted)
	if a.Cells > 0 {
		fmt.Fprintf(w, "Coverage: %d/%d cells (%.0f%%)\n", a.Visited, a.Cells, 100*float64(a.Visited)/float64(a.Cells))
	}

	if len(a.Stacked) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d start cells are shared by more than one rover\n", len(a.Stacked))
		for _, p := range a.Stacked {
			fmt.Fprintf(w, "   Shared start: (%d, %d)\n", p.X, p.Y)
		}
	}
	if a.ErrorMsg != "" {
		fmt.Fprintf(w, "⚠️  CRITICAL: replay stopped: %s\n", a.ErrorMsg)
	} else {
		fmt.Fprintf(w, "✅ Mission replays cleanly\n")
	}
}
