package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PlateauConfig is the upper bound of a mission's plateau
type PlateauConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DeploymentConfig describes one rover: where it lands and what it is told to do
type DeploymentConfig struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Facing   string `json:"facing"`
	Commands string `json:"commands"`
}

// MissionConfig represents a mission loaded from a JSON or HCL file
type MissionConfig struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Plateau     PlateauConfig      `json:"plateau"`
	Rovers      []DeploymentConfig `json:"rovers"`
}

// ValidateMissionConfig validates a mission for correctness. Unknown command
// characters are not rejected: they abort that rover's commands at run time.
func ValidateMissionConfig(config *MissionConfig) error {
	if config == nil {
		return fmt.Errorf("mission validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("mission validation: name is required")
	}
	if config.Plateau.Width <= 0 || config.Plateau.Height <= 0 {
		return fmt.Errorf("mission validation: plateau bounds must be positive, got %d %d",
			config.Plateau.Width, config.Plateau.Height)
	}

	for i, rover := range config.Rovers {
		if _, err := ParseDirection(rover.Facing); err != nil {
			return fmt.Errorf("mission validation: rover %d: %v", i+1, err)
		}
		if rover.X < 0 || rover.Y < 0 || rover.X > config.Plateau.Width || rover.Y > config.Plateau.Height {
			return fmt.Errorf("mission validation: rover %d starts at (%d,%d), outside plateau (0,0)-(%d,%d)",
				i+1, rover.X, rover.Y, config.Plateau.Width, config.Plateau.Height)
		}
	}

	return nil
}

// Records renders the mission as the line-oriented input format
func (m *MissionConfig) Records() []string {
	lines := make([]string, 0, 1+2*len(m.Rovers))
	lines = append(lines, fmt.Sprintf("%d %d", m.Plateau.Width, m.Plateau.Height))
	for _, r := range m.Rovers {
		lines = append(lines, fmt.Sprintf("%d %d %s", r.X, r.Y, r.Facing))
		lines = append(lines, r.Commands)
	}
	return lines
}

// Replay runs the mission through a fresh controller writing output to out
func Replay(config *MissionConfig, out io.Writer) (*Controller, error) {
	controller := NewController(out)
	for _, line := range config.Records() {
		if err := controller.Feed(line); err != nil {
			return controller, err
		}
	}
	return controller, nil
}

// LoadMissionConfig loads a mission from a JSON file
func LoadMissionConfig(filename string) (*MissionConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config MissionConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse mission file '%s': %w", filename, err)
	}

	if err := ValidateMissionConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultMission returns the classic two-rover exercise on a 5x5 plateau
func DefaultMission() *MissionConfig {
	return &MissionConfig{
		Name:        "kata",
		Description: "Two rovers on a 5x5 plateau",
		Plateau:     PlateauConfig{Width: 5, Height: 5},
		Rovers: []DeploymentConfig{
			{X: 1, Y: 2, Facing: "N", Commands: "LMLMLMLMM"},
			{X: 3, Y: 3, Facing: "E", Commands: "MMRMMRMRRM"},
		},
	}
}
