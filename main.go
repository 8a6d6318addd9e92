// Command marsrover drives rovers across a plateau on Mars.
//
// It supports these subcommands:
//  1. "run" (default) – reads the plain-text mission format from a file or stdin and prints each rover's final position
//  2. "serve" – runs the HTTP server exposing the REST API, WebSocket updates and an /mcp endpoint
//  3. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  4. "version" – prints version information
//
// Flags control the listen address, mission directory, debug logging and
// optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
	"github.com/wricardo/mcp-training/marsrover/mission/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Mars Rover Mission Control"
)

const defaultAddr = "localhost:8080"

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree. Flags on the root are inherited by every
// subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:           "marsrover",
		Usage:          "Simulate rovers exploring a rectangular plateau",
		Version:        Version,
		DefaultCommand: "run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   defaultAddr,
				Usage:   "HTTP listen address (serve) or API address to reuse (mcp)",
				Sources: cli.EnvVars("MARSROVER_ADDR"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing mission files (.json, .hcl)",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run a plain-text mission from a file or stdin",
				ArgsUsage: "[file]",
				Action:    runAction,
			},
			{
				Name:  "serve",
				Usage: "Run the HTTP server with REST API, WebSocket and MCP endpoint",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "ngrok",
						Usage:   "Enable ngrok tunnel",
						Sources: cli.EnvVars("NGROK_ENABLED"),
					},
					&cli.StringFlag{
						Name:    "ngrok-auth",
						Usage:   "Ngrok auth token",
						Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
					},
					&cli.StringFlag{
						Name:    "ngrok-domain",
						Usage:   "Custom ngrok domain (optional)",
						Sources: cli.EnvVars("NGROK_DOMAIN"),
					},
				},
				Action: serveAction,
			},
			{
				Name:   "mcp",
				Usage:  "Run an MCP stdio server",
				Action: mcpAction,
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

// runAction streams the plain-text mission through a controller. A
// configuration error stops the run and exits non-zero.
func runAction(ctx context.Context, cmd *cli.Command) error {
	root := cmd.Root()

	var in io.Reader = root.Reader
	if path := cmd.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open mission: %w", err)
		}
		defer f.Close()
		in = f
	}

	return simulate(in, root.Writer)
}

func simulate(in io.Reader, out io.Writer) error {
	if err := engine.NewController(out).Run(in); err != nil {
		return fmt.Errorf("mission aborted: %w", err)
	}
	return nil
}

// initializeServices wires the config and session managers into the mission
// service and starts the background cleanup of idle sessions.
func initializeServices(configDir string) (service.MissionService, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	missionService := service.NewMissionService(sessionManager, configManager)

	go sessionCleanupRoutine(sessionManager)

	return missionService, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}
