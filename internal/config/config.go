// Package config provides persistent configuration for the tool.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Config holds the tool configuration.
type Config struct {
	SteamDir      string `json:"steamDir,omitempty"`
	PreferredUser string `json:"preferredUser,omitempty"`
	ShowNsfw      bool   `json:"showNsfw"`
	ShowHumor     bool   `json:"showHumor"`
}

// Manager handles loading and saving configuration.
type Manager struct {
	mu       sync.RWMutex
	config   Config
	filePath string
}

// NewManager creates a configuration manager backed by the user config
// directory.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(configDir, "nonsteam")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return NewManagerWithPath(filepath.Join(dir, "config.json")), nil
}

// NewManagerWithPath creates a manager backed by an explicit file (for tests).
func NewManagerWithPath(filePath string) *Manager {
	m := &Manager{filePath: filePath}

	// Load existing config if present
	m.load()

	return m
}

// load reads config from disk.
func (m *Manager) load() {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		return // Use defaults
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return // Use defaults
	}
	m.config = cfg
}

// Save writes config to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveUnlocked()
}

// GetConfig returns a copy of the current config.
func (m *Manager) GetConfig() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetSteamDir returns the configured Steam directory override.
func (m *Manager) GetSteamDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.SteamDir
}

// SetSteamDir sets the Steam directory override and saves config.
func (m *Manager) SetSteamDir(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.SteamDir = dir
	return m.saveUnlocked()
}

// GetPreferredUser returns the preferred Steam account ID.
func (m *Manager) GetPreferredUser() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.PreferredUser
}

// SetPreferredUser sets the preferred Steam account ID and saves config.
func (m *Manager) SetPreferredUser(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.PreferredUser = userID
	return m.saveUnlocked()
}

// GetShowNsfw returns whether NSFW artwork is allowed in results.
func (m *Manager) GetShowNsfw() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ShowNsfw
}

// SetShowNsfw sets the NSFW artwork preference and saves config.
func (m *Manager) SetShowNsfw(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.ShowNsfw = enabled
	return m.saveUnlocked()
}

// GetShowHumor returns whether humor artwork is allowed in results.
func (m *Manager) GetShowHumor() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ShowHumor
}

// SetShowHumor sets the humor artwork preference and saves config.
func (m *Manager) SetShowHumor(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.ShowHumor = enabled
	return m.saveUnlocked()
}

// saveUnlocked writes config to disk (must hold lock).
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0600)
}
