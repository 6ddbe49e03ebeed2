package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, BackendFile, cfg.Storage.Backend)
	require.Equal(t, "todos", cfg.Storage.Key)
	require.Equal(t, filepath.Join(cfg.Global.DataDir, "todos.json"), cfg.StoragePath())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, want: "storage.backend"},
		{name: "key", mutate: func(c *Config) { c.Storage.Key = "  " }, want: "storage.key"},
		{name: "debounce", mutate: func(c *Config) { c.Storage.Debounce = -time.Second }, want: "storage.debounce"},
		{name: "format", mutate: func(c *Config) { c.Logging.Format = "xml" }, want: "logging.format"},
		{name: "theme", mutate: func(c *Config) { c.TUI.Theme = "solarized" }, want: "tui.theme"},
		{name: "filter", mutate: func(c *Config) { c.TUI.DefaultFilter = "later" }, want: "tui.default_filter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStoragePathPerBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Global.DataDir = "/data"

	cfg.Storage.Backend = BackendSQLite
	require.Equal(t, filepath.Join("/data", "tick.db"), cfg.StoragePath())

	cfg.Storage.Backend = BackendMemory
	require.Equal(t, "", cfg.StoragePath())

	cfg.Storage.Path = "/elsewhere/list.json"
	require.Equal(t, "/elsewhere/list.json", cfg.StoragePath())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: sqlite
  debounce: 1s
tui:
  theme: dark
`), 0o644))

	t.Setenv("TICK_LOGGING_LEVEL", "debug")
	t.Setenv("TICK_GLOBAL_DATA_DIR", "~/ticks")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, time.Second, cfg.Storage.Debounce)
	require.Equal(t, ThemeDark, cfg.TUI.Theme)
	require.Equal(t, "debug", cfg.Logging.Level)

	home, _ := os.UserHomeDir()
	require.Equal(t, filepath.Join(home, "ticks"), cfg.Global.DataDir)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: floppy\n"), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "config validation failed")
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Global.DataDir = filepath.Join(root, "data")
	cfg.Storage.Path = filepath.Join(root, "store", "todos.json")

	require.NoError(t, cfg.EnsureDirectories())
	require.DirExists(t, cfg.Global.DataDir)
	require.DirExists(t, filepath.Join(root, "store"))
}
