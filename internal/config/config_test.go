package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "watch-history.json", cfg.Input.Path)
	assert.Equal(t, "output", cfg.Storage.Path)
	assert.Equal(t, "parquet", cfg.Storage.Format)
	assert.Equal(t, "watch_history.parquet", cfg.Storage.ParquetFile)
	assert.Equal(t, "watch_history.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "127.0.0.1", cfg.Dashboard.Host)
	assert.Equal(t, 8501, cfg.Dashboard.Port)
	assert.Equal(t, 0, cfg.Dashboard.TopChannels)
	assert.NotEmpty(t, cfg.Dashboard.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	assert.NoError(t, cfg.Validate())
}

func TestStoreFile(t *testing.T) {
	cfg := DefaultConfig()

	path, err := cfg.StoreFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "watch_history.parquet"), path)

	cfg.Storage.Format = "sqlite"
	path, err = cfg.StoreFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "watch_history.db"), path)
}

func TestStoreFile_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := DefaultConfig()
	cfg.Storage.Path = "~/watchlog"

	path, err := cfg.StoreFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "watchlog", "watch_history.parquet"), path)
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
input:
  path: "Takeout/YouTube/history/watch-history.json"
storage:
  format: "sqlite"
dashboard:
  port: 9999
  top_channels: 25
logging:
  level: "debug"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "Takeout/YouTube/history/watch-history.json", cfg.Input.Path)
	assert.Equal(t, "sqlite", cfg.Storage.Format)
	assert.Equal(t, 9999, cfg.Dashboard.Port)
	assert.Equal(t, 25, cfg.Dashboard.TopChannels)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Non-overridden values remain defaults
	assert.Equal(t, "127.0.0.1", cfg.Dashboard.Host)
	assert.Equal(t, "output", cfg.Storage.Path)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	err := os.WriteFile(cfgPath, []byte(":::not valid yaml{{{"), 0644)
	require.NoError(t, err)

	_, err = Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing", "config.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"unknown format": "storage:\n  format: csv\n",
		"port too large": "dashboard:\n  port: 70000\n",
		"negative top":   "dashboard:\n  top_channels: -1\n",
		"bad log format": "logging:\n  format: xml\n",
		"empty input":    "input:\n  path: \"\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

			_, err := Load(cfgPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoadOrCreateCreatesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "deep", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)

	// Should return defaults
	assert.Equal(t, "parquet", cfg.Storage.Format)
	assert.Equal(t, 8501, cfg.Dashboard.Port)

	// File should now exist on disk
	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)

	// File should be valid YAML loadable again
	cfg2, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, cfg2)
}

func TestLoadOrCreateLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
storage:
  path: "/var/lib/watchlog"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/watchlog", cfg.Storage.Path)
	// Other fields remain defaults
	assert.Equal(t, "watch_history.parquet", cfg.Storage.ParquetFile)
}

func TestLoadWithAllowedOrigins(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
dashboard:
  allowed_origins:
    - "http://localhost:3000"
    - "https://charts.example.org"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://charts.example.org"}, cfg.Dashboard.AllowedOrigins)
}
