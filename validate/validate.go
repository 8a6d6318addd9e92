// Command validate provides a small CLI that validates mission files (.json
// and .hcl) in the ../configs directory. It checks:
//   - File structure and required fields
//   - Plateau bounds of at least 1
//   - Rover headings (N, E, S, W) and start cells inside the plateau
//   - Start cells shared by more than one rover (warning)
//   - Command letters other than L, R and M (warning: they stop that rover)
//   - A dry run of the mission, reporting blocked moves
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// readMission decodes a mission file without validating it
func readMission(filePath string) (*engine.MissionConfig, error) {
	if filepath.Ext(filePath) == ".hcl" {
		return config.DecodeMissionFile(filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("Failed to read file: %v", err)
	}

	var mission engine.MissionConfig
	if err := json.Unmarshal(data, &mission); err != nil {
		return nil, fmt.Errorf("Invalid JSON: %v", err)
	}
	return &mission, nil
}

// validateMission loads and validates a single mission file.
func validateMission(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	mission, err := readMission(filePath)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	if mission.Name == "" {
		result.fail("name is required")
	}

	width, height := mission.Plateau.Width, mission.Plateau.Height
	if width < 1 || height < 1 {
		result.fail("plateau bounds must be at least 1, got %d %d", width, height)
	}

	starts := make(map[engine.Position][]int)
	for i, rover := range mission.Rovers {
		n := i + 1
		if _, err := engine.ParseDirection(rover.Facing); err != nil {
			result.fail("rover %d: invalid heading %q", n, rover.Facing)
		}
		if rover.X < 0 || rover.Y < 0 || rover.X > width || rover.Y > height {
			result.fail("rover %d: start (%d,%d) is outside plateau (0,0)-(%d,%d)", n, rover.X, rover.Y, width, height)
		}
		pos := engine.Position{X: rover.X, Y: rover.Y}
		starts[pos] = append(starts[pos], n)

		tokens, err := engine.Tokenize(strings.TrimSpace(rover.Commands))
		if err != nil {
			result.fail("rover %d: unreadable commands: %v", n, err)
			continue
		}
		for j, tok := range tokens {
			if tok.Kind == engine.CommandUnknown {
				result.warn("rover %d: unknown command %q at position %d skips the remaining %d commands",
					n, tok.Literal, j+1, len(tokens)-j-1)
				break
			}
		}
	}

	var shared []engine.Position
	for pos, rovers := range starts {
		if len(rovers) > 1 {
			shared = append(shared, pos)
		}
	}
	sort.Slice(shared, func(i, j int) bool {
		if shared[i].X != shared[j].X {
			return shared[i].X < shared[j].X
		}
		return shared[i].Y < shared[j].Y
	})
	for _, pos := range shared {
		result.warn("rovers %v share start cell (%d,%d)", starts[pos], pos.X, pos.Y)
	}

	if !result.Valid {
		return result
	}

	// Dry run
	controller, err := engine.Replay(mission, nil)
	if err != nil {
		result.fail("replay failed: %v", err)
		return result
	}

	blocked := 0
	for _, rep := range controller.Reports() {
		blocked += rep.Blocked
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", mission.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Plateau: (0,0)-(%d,%d)", width, height))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Rovers: %d", len(mission.Rovers)))
	for _, rover := range controller.Rovers() {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Rover %d ends at %s", rover.ID, rover.State()))
	}
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Blocked moves: %d", blocked))

	return result
}

// missionFiles lists every .json and .hcl file in dir
func missionFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.hcl"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main scans ../configs for mission files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := missionFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding mission files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateMission(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
		for _, w := range result.Warnings {
			fmt.Println("  ⚠️  " + w)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All missions are valid!")
	} else {
		fmt.Println("❌ Some missions have errors")
		os.Exit(1)
	}
}
