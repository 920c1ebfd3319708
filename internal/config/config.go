package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/watchlog/config.yaml"

// Config holds all watchlog configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Storage   StorageConfig   `yaml:"storage"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// InputConfig locates the watch-history export.
type InputConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// StorageConfig selects where the dataset lives and in which format.
type StorageConfig struct {
	Path        string `yaml:"path" validate:"required"`
	Format      string `yaml:"format" validate:"oneof=parquet sqlite"`
	ParquetFile string `yaml:"parquet_file" validate:"required"`
	SQLiteFile  string `yaml:"sqlite_file" validate:"required"`
}

// DashboardConfig configures the dashboard HTTP API.
type DashboardConfig struct {
	Host           string   `yaml:"host" validate:"required"`
	Port           int      `yaml:"port" validate:"min=1,max=65535"`
	TopChannels    int      `yaml:"top_channels" validate:"min=0"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig sets the root logger's level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error off disabled"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and returns the first violations found.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StoreFile returns the resolved path of the dataset file for the
// configured storage format.
func (c *Config) StoreFile() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	name := c.Storage.ParquetFile
	if c.Storage.Format == "sqlite" {
		name = c.Storage.SQLiteFile
	}
	return filepath.Join(dir, name), nil
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML, or
// fails validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
