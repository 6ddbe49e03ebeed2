// Package config handles tick configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tOgg1/tick/internal/models"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Themes understood by the TUI.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the root configuration structure for tick.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Storage settings
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`

	// Source is the config file the settings were read from, empty when only
	// defaults and environment applied.
	Source string `yaml:"-" mapstructure:"-"`
}

// GlobalConfig contains global tick settings.
type GlobalConfig struct {
	// DataDir is where tick stores its data (default: ~/.local/share/tick).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ConfigDir is where config files are stored (default: ~/.config/tick).
	ConfigDir string `yaml:"config_dir" mapstructure:"config_dir"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// Backend selects the key-value store (file, sqlite, memory).
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Path overrides the store location. Defaults to DataDir/todos.json or DataDir/tick.db.
	Path string `yaml:"path" mapstructure:"path"`

	// Key is the key the task list is stored under.
	Key string `yaml:"key" mapstructure:"key"`

	// Debounce is how long the write-behind checkpoint waits for more changes.
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`

	// BusyTimeoutMs is how long sqlite waits for a locked database (milliseconds).
	BusyTimeoutMs int `yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`

	// History records task events (sqlite backend only).
	History bool `yaml:"history" mapstructure:"history"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. The TUI logs here instead of stderr.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme is the initial color theme (light, dark).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// DefaultFilter is the filter selected at startup (all, active, completed).
	DefaultFilter string `yaml:"default_filter" mapstructure:"default_filter"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Global: GlobalConfig{
			DataDir:   filepath.Join(homeDir, ".local", "share", "tick"),
			ConfigDir: filepath.Join(homeDir, ".config", "tick"),
		},
		Storage: StorageConfig{
			Backend:       BackendFile,
			Path:          "",
			Key:           "todos",
			Debounce:      250 * time.Millisecond,
			BusyTimeoutMs: 5000,
			History:       true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		TUI: TUIConfig{
			Theme:         ThemeLight,
			DefaultFilter: string(models.FilterAll),
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be one of file, sqlite, memory")
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key is required")
	}
	if c.Storage.Debounce < 0 {
		return fmt.Errorf("storage.debounce must not be negative")
	}
	if c.Storage.BusyTimeoutMs < 0 {
		return fmt.Errorf("storage.busy_timeout_ms must not be negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	switch c.TUI.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("tui.theme must be light or dark")
	}
	if _, err := models.ParseFilter(c.TUI.DefaultFilter); err != nil {
		return fmt.Errorf("tui.default_filter: %w", err)
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Global.DataDir}
	if c.Storage.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Storage.Path))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// StoragePath returns the full path of the backing store for the configured backend.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(c.Global.DataDir, "tick.db")
	case BackendMemory:
		return ""
	default:
		return filepath.Join(c.Global.DataDir, "todos.json")
	}
}
