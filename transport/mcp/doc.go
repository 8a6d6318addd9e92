// Package mcp provides the Model Context Protocol front end for the Mars rover mission.
//
// The Client is a thin proxy: every tool call is translated into a request
// against the REST API and the JSON response is rendered as text for the agent.
//
// MCP Tools:
//   - create_session: Replay a mission file into a new session
//   - create_plateau: Start a session with an empty plateau
//   - list_sessions, get_session: Inspect sessions
//   - plateau_state: Bounds, rovers and occupied cells
//   - deploy_rover: Land a rover
//   - execute_commands: Run an L/R/M command string
//   - rover_history: Paginated command events
//   - list_configs: Available mission files
//   - simulate: Run a plain-text input end to end
//   - mission_instructions: Rules and input format
//
// Transport Modes:
//
// GetMCPServer returns the underlying server so the caller can serve it over
// stdio or mount it as a streamable HTTP endpoint.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
