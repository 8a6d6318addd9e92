package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/marsrover/api"
	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
	"github.com/wricardo/mcp-training/marsrover/mission/session"
)

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "LMR", body["commands"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "ab12"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("POST", "/api", map[string]string{"commands": "LMR"}, &response)
	require.NoError(t, err)
	assert.Equal(t, "ab12", response["id"])
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall("GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	err := NewClient(server.URL).apiCall("GET", "/api", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error")
}

func TestClient_apiCall_ErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "rover start 9,9 is off the plateau"})
	}))
	defer server.Close()

	err := NewClient(server.URL).apiCall("POST", "/api", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "rover start 9,9 is off the plateau", err.Error())
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{
		"float":    float64(3),
		"fraction": 2.5,
		"int":      4,
		"string":   "7",
		"word":     "seven",
	}

	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{"float", 3, true},
		{"fraction", 2, false},
		{"int", 4, true},
		{"string", 7, true},
		{"word", 0, false},
		{"missing", 0, false},
	}

	for _, test := range tests {
		got, ok := intArg(args, test.key)
		if ok != test.wantOK || (ok && got != test.want) {
			t.Errorf("intArg(%s) = %d, %v; expected %d, %v", test.key, got, ok, test.want, test.wantOK)
		}
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "c0de",
			ConfigName: "kata",
			Output:     []string{"1 3 N", "5 1 E"},
			State: &engine.PlateauState{
				Width:  5,
				Height: 5,
				Rovers: []engine.RoverState{{ID: 1, X: 1, Y: 3, Facing: engine.North}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleCreateSession(context.Background(), callRequest("create_session", map[string]interface{}{}))
	require.NoError(t, err)

	text := resultText(t, result)
	for _, want := range []string{"c0de", "kata", "1 3 N", "5 1 E", "Plateau: (0,0)-(5,5)"} {
		assert.Contains(t, text, want)
	}
}

func TestClient_createPlateau_RejectsNonIntegers(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleCreatePlateau(context.Background(), callRequest("create_plateau", map[string]interface{}{
		"width": "wide",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestClient_simulate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(string(body), "0") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"output": []string{},
				"error":  "record 1: plateau bounds must be at least 1",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"output": []string{"1 3 N"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleSimulate(ctx, callRequest("simulate", map[string]interface{}{"input": "5 5\n1 2 N\nLMLMLMLMM"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "1 3 N", resultText(t, result))

	result, err = client.handleSimulate(ctx, callRequest("simulate", map[string]interface{}{"input": "0 5"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "at least 1")
}

func TestFormatPlateauState(t *testing.T) {
	state := &engine.PlateauState{
		Width:  5,
		Height: 5,
		Rovers: []engine.RoverState{
			{ID: 1, X: 1, Y: 3, Facing: engine.North},
			{ID: 2, X: 5, Y: 1, Facing: engine.East},
		},
	}

	text := formatPlateauState(state)
	assert.Contains(t, text, "Plateau: (0,0)-(5,5)")
	assert.Contains(t, text, "Rovers (2):")
	assert.Contains(t, text, "#1 1 3 N")
	assert.Contains(t, text, "#2 5 1 E")

	empty := formatPlateauState(&engine.PlateauState{Width: 2, Height: 2})
	assert.Contains(t, empty, "No rovers deployed")
	assert.Equal(t, "", formatPlateauState(nil))
}

func TestFormatExecuteResult(t *testing.T) {
	result := &service.ExecuteResult{
		Report: &engine.Report{
			RoverID:  1,
			Commands: "MMXMM",
			Executed: 2,
			Moves:    2,
			Aborted:  true,
		},
		Output: []string{"Unidentified character: X", "1 4 N"},
	}

	text := formatExecuteResult(result)
	assert.Contains(t, text, "Stopped at an unknown command")
	assert.Contains(t, text, "ran 2/5 commands")
	assert.True(t, strings.HasSuffix(text, "Unidentified character: X\n1 4 N\n"))

	result.Report.Aborted = false
	assert.Contains(t, formatExecuteResult(result), "Completed")
}

func TestClient_handleMissionInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleMissionInstructions(context.Background(), callRequest("mission_instructions", nil))
	require.NoError(t, err)

	text := resultText(t, result)
	for _, want := range []string{
		"Mars Rover Mission - Complete Instructions",
		"PLATEAU:",
		"COMMANDS:",
		"PLAIN-TEXT INPUT",
		"1 3 N\n5 1 E",
	} {
		assert.Contains(t, text, want)
	}
}

// TestClient_AgainstAPI drives the tools against the real REST server
func TestClient_AgainstAPI(t *testing.T) {
	configs, err := config.NewManager(t.TempDir())
	require.NoError(t, err)
	apiServer := api.NewServer(service.NewMissionService(session.NewManager(), configs), nil)

	server := httptest.NewServer(apiServer)
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleCreatePlateau(ctx, callRequest("create_plateau", map[string]interface{}{
		"width":  float64(5),
		"height": float64(5),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var sessions struct {
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	require.NoError(t, client.apiCall("GET", "/api/sessions", nil, &sessions))
	require.Len(t, sessions.Sessions, 1)
	sessionID := sessions.Sessions[0].ID

	deploy := func(x, y float64, facing string) *mcp.CallToolResult {
		result, err := client.handleDeployRover(ctx, callRequest("deploy_rover", map[string]interface{}{
			"session_id": sessionID,
			"x":          x,
			"y":          y,
			"facing":     facing,
		}))
		require.NoError(t, err)
		return result
	}

	result = deploy(1, 2, "N")
	require.False(t, result.IsError, resultText(t, result))
	assert.Contains(t, resultText(t, result), "Rover 1 deployed at 1 2 N")

	result, err = client.handleExecuteCommands(ctx, callRequest("execute_commands", map[string]interface{}{
		"session_id": sessionID,
		"commands":   "LMLMLMLMM",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "1 3 N")

	result = deploy(3, 3, "E")
	require.False(t, result.IsError, resultText(t, result))

	result, err = client.handleExecuteCommands(ctx, callRequest("execute_commands", map[string]interface{}{
		"session_id": sessionID,
		"commands":   "MMRMMRMRRM",
		"rover_id":   float64(2),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "5 1 E")

	result = deploy(9, 9, "N")
	assert.True(t, result.IsError, "deploying off the plateau should fail")

	result, err = client.handlePlateauState(ctx, callRequest("plateau_state", map[string]interface{}{"session_id": sessionID}))
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "Rovers (2):")
	assert.Contains(t, text, "#2 5 1 E")

	result, err = client.handleRoverHistory(ctx, callRequest("rover_history", map[string]interface{}{
		"session_id": sessionID,
		"rover_id":   float64(1),
		"limit":      float64(3),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "page 1/3, 9 events")

	result, err = client.handleListSessions(ctx, callRequest("list_sessions", nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), sessionID)

	result, err = client.handleGetSession(ctx, callRequest("get_session", map[string]interface{}{"session_id": "zzzz"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
