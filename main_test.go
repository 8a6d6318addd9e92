package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

const kataInput = "5 5\n1 2 N\nLMLMLMLMM\n3 3 E\nMMRMMRMRRM\n"

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	err := app.Run(context.Background(), append([]string{"marsrover"}, args...))
	return out.String(), err
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}
}

func TestRun_Stdin(t *testing.T) {
	out, err := runApp(t, kataInput, "run")
	require.NoError(t, err)
	assert.Equal(t, "1 3 N\n5 1 E\n", out)
}

func TestRun_DefaultCommand(t *testing.T) {
	out, err := runApp(t, kataInput)
	require.NoError(t, err)
	assert.Equal(t, "1 3 N\n5 1 E\n", out)
}

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mission.txt")
	require.NoError(t, os.WriteFile(path, []byte(kataInput), 0644))

	out, err := runApp(t, "", "run", path)
	require.NoError(t, err)
	assert.Equal(t, "1 3 N\n5 1 E\n", out)
}

func TestRun_MissingFile(t *testing.T) {
	_, err := runApp(t, "", "run", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestSimulate_ConfigurationError(t *testing.T) {
	var out bytes.Buffer
	err := simulate(strings.NewReader("5 5\n1 2 N\nM\n7 7 N\nM\n"), &out)

	var ce *engine.ConfigurationError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, 4, ce.Record)
	assert.Equal(t, "1 3 N\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, AppName)
	assert.Contains(t, out, Version)
}

func TestInitializeServices(t *testing.T) {
	missionService, err := initializeServices(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, missionService)

	info, err := missionService.CreateSession(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1 3 N", "5 1 E"}, info.Output)
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	if _, err := initializeServices("/non/existent/path"); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_ShippedMissions(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	missionService, err := initializeServices("configs")
	require.NoError(t, err)

	configs, err := missionService.ListConfigs(context.Background())
	require.NoError(t, err)
	for _, cfg := range configs {
		_, err := missionService.CreateSession(context.Background(), cfg.ConfigID)
		assert.NoError(t, err, cfg.ConfigID)
	}
}

func TestNewHandler(t *testing.T) {
	missionService, err := initializeServices(t.TempDir())
	require.NoError(t, err)

	server := httptest.NewServer(newHandler(missionService, nil, "http://localhost:0"))
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/simulate", "text/plain", strings.NewReader(kataInput))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result struct {
		Output []string `json:"output"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, []string{"1 3 N", "5 1 E"}, result.Output)

	assert.True(t, apiAvailable(server.URL))
	assert.False(t, apiAvailable("http://127.0.0.1:1"))
}
