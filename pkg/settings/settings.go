// Package settings persists the tailview configuration: the tailed
// command, the UI refresh cadence, and the favorite command list.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultCommand is tailed when no configuration exists yet.
	DefaultCommand = "journalctl -f"

	// Refresh interval bounds, in milliseconds.
	DefaultRefreshMs = 1000
	MinRefreshMs     = 100
	MaxRefreshMs     = 5000
)

// Favorite is a named command shortcut.
type Favorite struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
}

// Settings is the persisted configuration.
type Settings struct {
	LogCommand        string     `yaml:"log_command"`
	RefreshIntervalMs int        `yaml:"refresh_interval_ms"`
	Favorites         []Favorite `yaml:"favorites,omitempty"`
}

// Default returns the out-of-the-box configuration.
func Default() Settings {
	return Settings{
		LogCommand:        DefaultCommand,
		RefreshIntervalMs: DefaultRefreshMs,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "tailview", "config.yaml"), nil
}

// Load reads settings from path, falling back to defaults when the file
// does not exist. Out-of-range values are normalized, not rejected.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	s.normalize()
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	s.normalize()
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *Settings) normalize() {
	if s.LogCommand == "" {
		s.LogCommand = DefaultCommand
	}
	switch {
	case s.RefreshIntervalMs <= 0:
		s.RefreshIntervalMs = DefaultRefreshMs
	case s.RefreshIntervalMs < MinRefreshMs:
		s.RefreshIntervalMs = MinRefreshMs
	case s.RefreshIntervalMs > MaxRefreshMs:
		s.RefreshIntervalMs = MaxRefreshMs
	}
}

// AddFavorite appends a favorite, replacing any existing one of the same
// name.
func (s *Settings) AddFavorite(name, command string) {
	for i, f := range s.Favorites {
		if f.Name == name {
			s.Favorites[i].Command = command
			return
		}
	}
	s.Favorites = append(s.Favorites, Favorite{Name: name, Command: command})
}

// RemoveFavorite deletes the favorite with the given name. It reports
// whether one was removed.
func (s *Settings) RemoveFavorite(name string) bool {
	for i, f := range s.Favorites {
		if f.Name == name {
			s.Favorites = append(s.Favorites[:i], s.Favorites[i+1:]...)
			return true
		}
	}
	return false
}
