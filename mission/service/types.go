package service

import (
	"time"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// SessionInfo provides information about a mission session
type SessionInfo struct {
	ID             string                `json:"id"`
	ConfigName     string                `json:"config_name"`
	CreatedAt      time.Time             `json:"created_at"`
	LastAccessedAt time.Time             `json:"last_accessed_at"`
	State          *engine.PlateauState  `json:"state"`
	Mission        *engine.MissionConfig `json:"mission,omitempty"`
	Output         []string              `json:"output,omitempty"` // lines printed while replaying the mission
}

// DeployResult contains the result of placing a rover
type DeployResult struct {
	Rover engine.RoverState    `json:"rover"`
	State *engine.PlateauState `json:"state"`
}

// ExecuteResult contains the result of running a command string
type ExecuteResult struct {
	Report *engine.Report       `json:"report"`
	Output []string             `json:"output"` // diagnostics followed by the final "x y D" line
	State  *engine.PlateauState `json:"state"`
}

// HistoryOptions configures rover history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated rover history
type HistoryResponse struct {
	RoverID     int            `json:"rover_id"`
	Events      []engine.Event `json:"events"`
	TotalEvents int            `json:"total_events"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ConfigInfo provides information about a mission file
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	Format      string `json:"format"` // "json" or "hcl"
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Rovers      int    `json:"rovers"`
}
