package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// hclMission is the HCL form of a mission:
//
//	name        = "collision"
//	description = "Second rover runs into the first"
//
//	plateau {
//	  width  = 5
//	  height = 5
//	}
//
//	rover {
//	  x        = 1
//	  y        = 1
//	  facing   = "N"
//	  commands = "M"
//	}
type hclMission struct {
	Name        string     `hcl:"name"`
	Description string     `hcl:"description,optional"`
	Plateau     hclPlateau `hcl:"plateau,block"`
	Rovers      []hclRover `hcl:"rover,block"`
}

type hclPlateau struct {
	Width  int `hcl:"width"`
	Height int `hcl:"height"`
}

type hclRover struct {
	X        int    `hcl:"x"`
	Y        int    `hcl:"y"`
	Facing   string `hcl:"facing"`
	Commands string `hcl:"commands,optional"`
}

// DecodeMissionFile parses and decodes a single HCL mission file.
func DecodeMissionFile(filePath string) (*engine.MissionConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", filePath, diags.Error())
	}

	var raw hclMission
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", filePath, diags.Error())
	}

	config := &engine.MissionConfig{
		Name:        raw.Name,
		Description: raw.Description,
		Plateau:     engine.PlateauConfig{Width: raw.Plateau.Width, Height: raw.Plateau.Height},
		Rovers:      make([]engine.DeploymentConfig, 0, len(raw.Rovers)),
	}
	for _, r := range raw.Rovers {
		config.Rovers = append(config.Rovers, engine.DeploymentConfig{
			X:        r.X,
			Y:        r.Y,
			Facing:   r.Facing,
			Commands: r.Commands,
		})
	}
	return config, nil
}
