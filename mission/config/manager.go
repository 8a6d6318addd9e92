package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigName is the mission used when none is requested
const DefaultConfigName = "kata"

// extensions in lookup order
var extensions = []string{".json", ".hcl"}

// Manager handles mission file loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.MissionConfig
	configs       map[string]*engine.MissionConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.MissionConfig),
	}

	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a mission by name. A bare name resolves to name.json
// first and name.hcl second.
func (m *Manager) LoadConfig(name string) (*engine.MissionConfig, error) {
	id := configID(name)

	m.mu.RLock()
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	config, err := readMissionFile(path)
	if err != nil {
		return nil, err
	}

	if err := engine.ValidateMissionConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[id] = config
	return config, nil
}

// ListConfigs returns information about all available missions, sorted by ID
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	seen := make(map[string]bool)
	var configs []*service.ConfigInfo

	// One entry per ID; resolve reports the file LoadConfig actually reads
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !isMissionExt(ext) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ext)
		if seen[id] {
			continue
		}
		seen[id] = true

		config, err := m.LoadConfig(id)
		if err != nil {
			// Skip invalid missions
			continue
		}

		path, _ := m.resolve(id)
		configs = append(configs, &service.ConfigInfo{
			Filename:    filepath.Base(path),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Format:      strings.TrimPrefix(filepath.Ext(path), "."),
			Width:       config.Plateau.Width,
			Height:      config.Plateau.Height,
			Rovers:      len(config.Rovers),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default mission
func (m *Manager) GetDefault() *engine.MissionConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default mission by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached mission and reloads the default from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.MissionConfig)
	m.mu.Unlock()

	m.loadDefaultConfig()
	return nil
}

// loadDefaultConfig picks kata, then the first valid mission, then the built-in kata
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = engine.DefaultMission()
		} else if config, err = m.LoadConfig(configs[0].ConfigID); err != nil {
			config = engine.DefaultMission()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// SaveConfig saves a mission to disk as JSON
func (m *Manager) SaveConfig(name string, config *engine.MissionConfig) error {
	if err := engine.ValidateMissionConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	id := configID(name)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: bad mission name %q", ErrInvalidConfig, name)
	}

	configPath := filepath.Join(m.configDir, id+".json")

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[id] = config
	m.mu.Unlock()

	return nil
}

// resolve finds the file backing a mission name
func (m *Manager) resolve(name string) (string, error) {
	if isMissionExt(filepath.Ext(name)) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			return "", ErrConfigNotFound
		}
		return path, nil
	}

	for _, ext := range extensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// readMissionFile decodes a mission file according to its extension
func readMissionFile(path string) (*engine.MissionConfig, error) {
	if filepath.Ext(path) == ".hcl" {
		return DecodeMissionFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.MissionConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

func configID(name string) string {
	ext := filepath.Ext(name)
	if isMissionExt(ext) {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func isMissionExt(ext string) bool {
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
