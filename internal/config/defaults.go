package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path: "watch-history.json",
		},
		Storage: StorageConfig{
			Path:        "output",
			Format:      "parquet",
			ParquetFile: "watch_history.parquet",
			SQLiteFile:  "watch_history.db",
		},
		Dashboard: DashboardConfig{
			Host:           "127.0.0.1",
			Port:           8501,
			TopChannels:    0,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
