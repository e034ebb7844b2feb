// Package config handles loading and saving dw configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/dw/config.yaml
//   - Data:    ~/.local/share/dw/ (preset database)
//   - State:   ~/.local/state/dw/ (layout autosave)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	MainView   string  `yaml:"main_view,omitempty"`   // view type anchoring the main pane (default board)
	SplitRatio float64 `yaml:"split_ratio,omitempty"` // ratio for newly created splits (0.1-0.9)
	Headless   bool    `yaml:"headless,omitempty"`    // compact header mode
}

// LayoutConfig controls layout persistence.
type LayoutConfig struct {
	AutosavePath string `yaml:"autosave_path,omitempty"` // overrides the XDG state location
	DBPath       string `yaml:"db_path,omitempty"`       // overrides the XDG preset database location
	Autosave     *bool  `yaml:"autosave,omitempty"`      // nil means on
}

// Config is the top-level configuration for dw.
type Config struct {
	Favorites map[int]string `yaml:"favorites,omitempty"` // number key (1-9) -> preset name
	UI        UIConfig       `yaml:"ui,omitempty"`
	Layout    LayoutConfig   `yaml:"layout,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Favorites: make(map[int]string),
		UI: UIConfig{
			MainView:   "board",
			SplitRatio: 0.5,
		},
	}
}

// ConfigDir returns the XDG config directory for dw.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "dw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dw")
}

// DataDir returns the XDG data directory for dw.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "dw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "dw")
}

// StateDir returns the XDG state directory for dw.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "dw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "dw")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// Ensure favorites map is initialized
	if cfg.Favorites == nil {
		cfg.Favorites = make(map[int]string)
	}

	// Expand ~ in persistence paths
	cfg.Layout.AutosavePath = expandHome(cfg.Layout.AutosavePath)
	cfg.Layout.DBPath = expandHome(cfg.Layout.DBPath)

	if cfg.UI.SplitRatio != 0 && (cfg.UI.SplitRatio < 0.1 || cfg.UI.SplitRatio > 0.9) {
		return cfg, fmt.Errorf("ui.split_ratio %v out of range 0.1-0.9", cfg.UI.SplitRatio)
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// AutosavePath returns the layout autosave location, honoring the override.
func (c Config) AutosavePath() string {
	if c.Layout.AutosavePath != "" {
		return c.Layout.AutosavePath
	}
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "layout.json")
}

// DBPath returns the preset database location, honoring the override.
func (c Config) DBPath() string {
	if c.Layout.DBPath != "" {
		return c.Layout.DBPath
	}
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "presets.db")
}

// AutosaveEnabled reports whether the layout should be saved on every change.
func (c Config) AutosaveEnabled() bool {
	return c.Layout.Autosave == nil || *c.Layout.Autosave
}

// FavoritePreset returns the preset name assigned to number key n (1-9), or "".
func (c Config) FavoritePreset(n int) string {
	return c.Favorites[n]
}

// SetFavorite assigns a preset name to a number key (1-9).
func (c *Config) SetFavorite(n int, preset string) {
	if c.Favorites == nil {
		c.Favorites = make(map[int]string)
	}
	if preset == "" {
		delete(c.Favorites, n)
	} else {
		c.Favorites[n] = preset
	}
}

// PresetFavoriteNumber returns the favorite number (1-9) for a preset name, or 0 if not favorited.
func (c Config) PresetFavoriteNumber(name string) int {
	for n, pname := range c.Favorites {
		if strings.EqualFold(pname, name) {
			return n
		}
	}
	return 0
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
