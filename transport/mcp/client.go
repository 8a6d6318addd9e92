package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Mars Rover Mission",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Mars Rover Mission - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Rovers land on a rectangular plateau whose lower-left corner is (0,0). Each
rover is driven by a command string: L and R turn 90 degrees in place, M moves
one cell forward. Moves off the plateau or onto another rover are skipped with
a diagnostic. The first unknown letter stops the command string.

AVAILABLE TOOLS:
- create_session: Start a session from a mission file
- create_plateau: Start a session with an empty plateau
- list_sessions / get_session: Inspect sessions
- plateau_state: Plateau bounds, rovers and occupied cells
- deploy_rover: Land a rover at x y facing N/E/S/W
- execute_commands: Run a command string such as LMLMLMLMM
- rover_history: Past command events of a rover
- list_configs: Available mission files
- simulate: Run a full plain-text input and get its output
- mission_instructions: Complete rules and input format`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new session by replaying a mission file (defaults to the kata mission)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Mission to replay (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_plateau",
		Description: "Create a new session with an empty plateau whose upper-right corner is (width, height)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Upper x bound, at least 1",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Upper y bound, at least 1",
				},
			},
			Required: []string{"width", "height"},
		},
	}, c.handleCreatePlateau)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Plateau and rovers
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plateau_state",
		Description: "Get the plateau bounds, every rover and the occupied cells",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handlePlateauState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "deploy_rover",
		Description: "Land a new rover on the plateau",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Starting x",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Starting y",
				},
				"facing": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"N", "E", "S", "W"},
					"description": "Starting heading",
				},
			},
			Required: []string{"session_id", "x", "y", "facing"},
		},
	}, c.handleDeployRover)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "execute_commands",
		Description: "Run a command string (L, R, M) against a rover",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Command letters, e.g. LMLMLMLMM",
				},
				"rover_id": map[string]interface{}{
					"type":        "integer",
					"description": "Rover to drive (optional, defaults to the latest deployed rover)",
				},
			},
			Required: []string{"session_id", "commands"},
		},
	}, c.handleExecuteCommands)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_history",
		Description: "View the command events of a rover",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"rover_id": map[string]interface{}{
					"type":        "integer",
					"description": "Rover ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Events per page (default 20)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
				},
			},
			Required: []string{"session_id", "rover_id"},
		},
	}, c.handleRoverHistory)

	// Configuration and misc
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available mission files",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulate",
		Description: "Run a complete plain-text input (plateau line, then rover line and command line pairs) and return the output",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"input": map[string]interface{}{
					"type":        "string",
					"description": "Newline separated records, e.g. \"5 5\\n1 2 N\\nLMLMLMLMM\"",
				},
			},
			Required: []string{"input"},
		},
	}, c.handleSimulate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "mission_instructions",
		Description: "Get the complete rules and input format",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleMissionInstructions)
}

// GetMCPServer returns the MCP server for stdio or HTTP transports
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall makes a JSON call to the REST API
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"].(string); ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// intArg reads an integer argument; JSON numbers arrive as float64
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), v == float64(int(v))
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleCreatePlateau(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	width, okW := intArg(args, "width")
	height, okH := intArg(args, "height")
	if !okW || !okH {
		return mcp.NewToolResultError("width and height must be integers"), nil
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", map[string]int{"width": width, "height": height}, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var resp struct {
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall("GET", "/api/sessions", nil, &resp); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(resp.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions (%d):\n", len(resp.Sessions))
	for _, s := range resp.Sessions {
		if s.State != nil {
			fmt.Fprintf(&b, "- %s: %s, plateau %dx%d, %d rovers\n", s.ID, s.ConfigName, s.State.Width, s.State.Height, len(s.State.Rovers))
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", s.ID, s.ConfigName)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall("GET", "/api/sessions/"+sessionID, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handlePlateauState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.PlateauState
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlateauState(&state)), nil
}

func (c *Client) handleDeployRover(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	facing, _ := args["facing"].(string)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y must be integers"), nil
	}

	body := map[string]interface{}{"x": x, "y": y, "facing": facing}

	var result service.DeployResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/rovers", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Rover %d deployed at %s\n\n%s",
		result.Rover.ID, result.Rover, formatPlateauState(result.State))), nil
}

func (c *Client) handleExecuteCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	commands, _ := args["commands"].(string)

	path := fmt.Sprintf("/api/sessions/%s/commands", sessionID)
	if roverID, ok := intArg(args, "rover_id"); ok && roverID > 0 {
		path = fmt.Sprintf("/api/sessions/%s/rovers/%d/commands", sessionID, roverID)
	}

	var result service.ExecuteResult
	if err := c.apiCall("POST", path, map[string]string{"commands": commands}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatExecuteResult(&result)), nil
}

func (c *Client) handleRoverHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	roverID, ok := intArg(args, "rover_id")
	if !ok {
		return mcp.NewToolResultError("rover_id must be an integer"), nil
	}

	query := []string{}
	if page, ok := intArg(args, "page"); ok {
		query = append(query, fmt.Sprintf("page=%d", page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query = append(query, fmt.Sprintf("limit=%d", limit))
	}
	if order, _ := args["order"].(string); order != "" {
		query = append(query, "order="+order)
	}

	path := fmt.Sprintf("/api/sessions/%s/rovers/%d/history", sessionID, roverID)
	if len(query) > 0 {
		path += "?" + strings.Join(query, "&")
	}

	var history service.HistoryResponse
	if err := c.apiCall("GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []*service.ConfigInfo
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(configs) == 0 {
		return mcp.NewToolResultText("No mission files available; create_session uses the built-in kata mission"), nil
	}

	var b strings.Builder
	b.WriteString("Available missions:\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "- %s (%s): plateau %dx%d, %d rovers", cfg.ConfigID, cfg.Format, cfg.Width, cfg.Height, cfg.Rovers)
		if cfg.Description != "" {
			fmt.Fprintf(&b, " - %s", cfg.Description)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, _ := arguments(request)["input"].(string)

	resp, err := c.httpClient.Post(c.baseURL+"/api/simulate", "text/plain", strings.NewReader(input))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer resp.Body.Close()

	// Partial output accompanies configuration errors
	var result struct {
		Output []string `json:"output"`
		Error  string   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("API error: %d", resp.StatusCode)), nil
	}

	text := strings.Join(result.Output, "\n")
	if result.Error != "" {
		if text != "" {
			text += "\n"
		}
		return mcp.NewToolResultError(text + "Error: " + result.Error), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleMissionInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(missionInstructions), nil
}

const missionInstructions = `Mars Rover Mission - Complete Instructions

PLATEAU:
The plateau is a rectangle. The lower-left corner is (0,0) and the upper-right
corner is (width,height); both corners are inside. x grows to the East, y to
the North.

ROVERS:
A rover has a position and a heading: N, E, S or W. Rovers are deployed and
driven one at a time. Two rovers may be deployed onto the same cell, but no
rover can move onto an occupied cell.

COMMANDS:
- L: turn 90 degrees left, stay in place
- R: turn 90 degrees right, stay in place
- M: move one cell forward

A move that would leave the plateau or land on another rover is skipped. The
rover reports a diagnostic and continues with the next command.

The first character that is not L, R or M stops the command string. Commands
before it stay applied and the final position is still reported.

OUTPUT:
After each command string the rover reports "x y D", e.g. "1 3 N".

PLAIN-TEXT INPUT (simulate tool):
Line 1: plateau upper bound, e.g. "5 5"
Line 2: rover start, e.g. "1 2 N"
Line 3: rover commands, e.g. "LMLMLMLMM"
Further rovers repeat lines 2 and 3.

Example:
5 5
1 2 N
LMLMLMLMM
3 3 E
MMRMMRMRRM

Output:
1 3 N
5 1 E

ERRORS:
Bounds below 1, unreadable lines and rovers deployed outside the plateau
are configuration errors. They stop a plain-text run at that line.`

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if len(session.Output) > 0 {
		b.WriteString("Mission output:\n")
		for _, line := range session.Output {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	if session.State != nil {
		b.WriteString("\n")
		b.WriteString(formatPlateauState(session.State))
	}
	return b.String()
}

func formatPlateauState(state *engine.PlateauState) string {
	if state == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Plateau: (0,0)-(%d,%d)\n", state.Width, state.Height)
	if len(state.Rovers) == 0 {
		b.WriteString("No rovers deployed\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Rovers (%d):\n", len(state.Rovers))
	for _, r := range state.Rovers {
		fmt.Fprintf(&b, "  #%d %s\n", r.ID, r)
	}
	return b.String()
}

func formatExecuteResult(result *service.ExecuteResult) string {
	var b strings.Builder
	rep := result.Report
	if rep != nil {
		status := "✓ Completed"
		if rep.Aborted {
			status = "✗ Stopped at an unknown command"
		}
		fmt.Fprintf(&b, "%s: rover %d ran %d/%d commands (%d moves, %d blocked)\n",
			status, rep.RoverID, rep.Executed, len(rep.Commands), rep.Moves, rep.Blocked)
	}
	for _, line := range result.Output {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rover %d history (page %d/%d, %d events):\n",
		history.RoverID, history.Page, history.TotalPages, history.TotalEvents)
	for _, ev := range history.Events {
		switch ev.Type {
		case engine.EventMove:
			fmt.Fprintf(&b, "  M %s -> %s\n", ev.From, ev.To)
		case engine.EventTurn:
			fmt.Fprintf(&b, "  %s now facing %s\n", ev.Command, ev.Facing)
		default:
			fmt.Fprintf(&b, "  %s: %s\n", ev.Type, ev.Message)
		}
	}
	return b.String()
}
