// Package engine provides the core simulation for the Mars Rover mission.
//
// The engine package implements:
//   - Cardinal orientation as unit vectors with left/right rotation
//   - The rectangular plateau with bounds checking and occupancy tracking
//   - Rovers that interpret M/L/R command strings
//   - The record-driven Controller that builds a plateau and drives rovers
//   - Mission configuration loading and validation
//
// Core Types:
//
// Grid holds the plateau bounds and the occupied cells. Rover owns a
// position and heading and registers itself on a Grid. Controller consumes
// input records in order and implements the Engine interface used by the
// service layer.
//
// Usage:
//
//	controller := engine.NewController(os.Stdout)
//	if err := controller.Run(os.Stdin); err != nil {
//		log.Fatal(err)
//	}
//
// Input Format:
//
// The first record is "width height", the upper-right corner of the plateau.
// Records then alternate between a deployment "x y D" (D is N, S, E or W)
// and a command string over M (move), L (turn left) and R (turn right).
// Every command record produces a line "x y D" with the rover's final state.
//
// Rules:
//
// A move that would leave the plateau or land on another rover is rejected
// with a diagnostic and the rover stays put. An unknown command character
// stops that rover's command string. Bad bounds and rovers placed outside
// the plateau are configuration errors and end the run.
package engine
