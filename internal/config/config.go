package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// appDirName is the directory under the user config dir holding our files.
const appDirName = "lister-tui"

// Config represents the application configuration.
type Config struct {
	// DocumentsDir is where list documents live.
	DocumentsDir string `json:"documentsDir"`

	// DefaultDocument is the document opened when none is named.
	DefaultDocument string `json:"defaultDocument"`

	// CacheDir is where the badger document cache lives.
	CacheDir string `json:"cacheDir"`

	Theme ThemeConfig `json:"theme"`
	UI    UIConfig    `json:"ui"`
}

// ThemeConfig defines color and styling options.
type ThemeConfig struct {
	AccentColor   string `json:"accentColor"`
	CompleteColor string `json:"completeColor"`
	ErrorColor    string `json:"errorColor"`
	SubtleColor   string `json:"subtleColor"`
}

// UIConfig defines UI behavior settings.
type UIConfig struct {
	// Autosave writes the document after every committed edit.
	Autosave bool `json:"autosave"`

	// WatchDebounceMs is the debounce window for external-edit reloads.
	WatchDebounceMs int `json:"watchDebounceMs"`
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{
		DefaultDocument: "today",
		Theme: ThemeConfig{
			AccentColor:   "#00FFFF",
			CompleteColor: "#32CD32",
			ErrorColor:    "#DC143C",
			SubtleColor:   "#666666",
		},
		UI: UIConfig{
			Autosave:        true,
			WatchDebounceMs: 300,
		},
	}
	if base, err := os.UserConfigDir(); err == nil {
		cfg.DocumentsDir = filepath.Join(base, appDirName, "documents")
		cfg.CacheDir = filepath.Join(base, appDirName, "cache")
	} else {
		cfg.DocumentsDir = filepath.Join(".", appDirName, "documents")
		cfg.CacheDir = filepath.Join(".", appDirName, "cache")
	}
	return cfg
}

// configPath returns the location of the user config file.
func configPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, "config.json"), nil
}

// Load builds the configuration from defaults merged with the user config
// file, when present. A missing file is not an error.
func Load() (*Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var partial Config
	if err := json.Unmarshal(data, &partial); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	merge(cfg, &partial)
	return cfg, nil
}

// merge copies non-zero values from partial into target.
func merge(target, partial *Config) {
	if partial.DocumentsDir != "" {
		target.DocumentsDir = partial.DocumentsDir
	}
	if partial.DefaultDocument != "" {
		target.DefaultDocument = partial.DefaultDocument
	}
	if partial.CacheDir != "" {
		target.CacheDir = partial.CacheDir
	}
	if partial.Theme.AccentColor != "" {
		target.Theme.AccentColor = partial.Theme.AccentColor
	}
	if partial.Theme.CompleteColor != "" {
		target.Theme.CompleteColor = partial.Theme.CompleteColor
	}
	if partial.Theme.ErrorColor != "" {
		target.Theme.ErrorColor = partial.Theme.ErrorColor
	}
	if partial.Theme.SubtleColor != "" {
		target.Theme.SubtleColor = partial.Theme.SubtleColor
	}
	if partial.UI.WatchDebounceMs > 0 {
		target.UI.WatchDebounceMs = partial.UI.WatchDebounceMs
	}
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
