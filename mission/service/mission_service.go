package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// MissionService defines all mission-related operations
type MissionService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	CreatePlateau(ctx context.Context, width, height int) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Rover Operations
	DeployRover(ctx context.Context, sessionID string, x, y int, facing string) (*DeployResult, error)
	ExecuteCommands(ctx context.Context, sessionID string, roverID int, commands string) (*ExecuteResult, error)

	// Plateau State
	GetPlateauState(ctx context.Context, sessionID string) (*engine.PlateauState, error)
	GetRoverHistory(ctx context.Context, sessionID string, roverID int, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.MissionConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.MissionConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.MissionConfig) (*Session, error)
	CreateBlank(id string, width, height int) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles mission file loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.MissionConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.MissionConfig
	SaveConfig(name string, config *engine.MissionConfig) error
}

// Session represents an active plateau with its rovers
type Session struct {
	ID             string
	Controller     *engine.Controller
	Config         *engine.MissionConfig // nil for blank plateaus
	Output         []string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
