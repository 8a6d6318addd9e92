package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// missionServiceImpl implements the MissionService interface
type missionServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewMissionService creates a new mission service instance
func NewMissionService(sessions SessionManager, configs ConfigManager) MissionService {
	return &missionServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given mission name, used for consistent API responses
func (s *missionServiceImpl) getConfigID(config *engine.MissionConfig) string {
	if config == nil {
		return "blank"
	}
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == config.Name {
				return cfg.ConfigID
			}
		}
	}
	if config.Name == "" {
		return "default"
	}
	return config.Name
}

func (s *missionServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          sess.Controller.State(),
		Mission:        sess.Config,
		Output:         sess.Output,
	}
}

// CreateSession creates a new session and replays the named mission on it
func (s *missionServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MissionConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config)
	}

	return s.sessionInfo(session, configID), nil
}

// CreatePlateau creates a session holding an empty plateau
func (s *missionServiceImpl) CreatePlateau(ctx context.Context, width, height int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.CreateBlank("", width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create plateau: %w", err)
	}

	return s.sessionInfo(session, "blank"), nil
}

// GetSession retrieves session information
func (s *missionServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, s.getConfigID(session.Config)), nil
}

// ListSessions returns all active sessions
func (s *missionServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.Config)))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *missionServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// DeployRover places a new rover on the session's plateau. A rejected
// placement leaves the plateau untouched.
func (s *missionServiceImpl) DeployRover(ctx context.Context, sessionID string, x, y int, facing string) (*DeployResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	dir, err := engine.ParseDirection(facing)
	if err != nil {
		return nil, err
	}

	rover, err := sess.Controller.Deploy(x, y, dir)
	if err != nil {
		return nil, err
	}

	return &DeployResult{
		Rover: rover.State(),
		State: sess.Controller.State(),
	}, nil
}

// ExecuteCommands runs a command string against a rover. roverID 0 selects
// the most recently deployed rover.
func (s *missionServiceImpl) ExecuteCommands(ctx context.Context, sessionID string, roverID int, commands string) (*ExecuteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if roverID == 0 {
		roverID = len(sess.Controller.Rovers())
		if roverID == 0 {
			return nil, fmt.Errorf("%w: no rover deployed in session %s", engine.ErrRoverNotFound, sess.ID)
		}
	}

	report, err := sess.Controller.Drive(roverID, commands)
	if err != nil {
		return nil, err
	}

	output := append(report.Diagnostics(), report.Final.String())
	return &ExecuteResult{
		Report: report,
		Output: output,
		State:  sess.Controller.State(),
	}, nil
}

// GetPlateauState returns the current plateau snapshot
func (s *missionServiceImpl) GetPlateauState(ctx context.Context, sessionID string) (*engine.PlateauState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Controller.State(), nil
}

// GetRoverHistory returns a page of the rover's command events
func (s *missionServiceImpl) GetRoverHistory(ctx context.Context, sessionID string, roverID int, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	rover, err := sess.Controller.Rover(roverID)
	if err != nil {
		return nil, err
	}

	history := rover.History()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var events []engine.Event
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			events = append(events, history[i])
		}
	} else if start < total {
		events = history[start:end]
	}

	if events == nil {
		events = []engine.Event{}
	}

	return &HistoryResponse{
		RoverID:     rover.ID,
		Events:      events,
		TotalEvents: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns all available mission files
func (s *missionServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific mission
func (s *missionServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.MissionConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a mission to disk
func (s *missionServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.MissionConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// IsConfigurationError reports whether err is a rejected plateau, record or
// placement rather than a missing resource
func IsConfigurationError(err error) bool {
	var ce *engine.ConfigurationError
	var pe *engine.PlacementError
	return errors.As(err, &ce) || errors.As(err, &pe) || errors.Is(err, engine.ErrUnknownDirection)
}
