package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/watchlog/internal/config"
	"github.com/runnerr0/watchlog/internal/history"
	"github.com/runnerr0/watchlog/internal/logger"
	"github.com/runnerr0/watchlog/internal/storage"
)

// resolveConfig loads --config when given, otherwise the default config
// file (created with defaults on first use), and initializes logging.
func resolveConfig(globals *GlobalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if globals != nil && globals.Config != "" {
		cfg, err = config.Load(globals.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if globals != nil && globals.Verbose {
		level = "debug"
	}
	logger.Init(logger.Options{Level: level, Format: cfg.Logging.Format})

	return cfg, nil
}

// openStore opens the store for the configured storage format.
func openStore(cfg *config.Config) (storage.Store, error) {
	path, err := cfg.StoreFile()
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}

	switch cfg.Storage.Format {
	case "sqlite":
		return storage.OpenSQLite(path)
	case "parquet", "":
		return storage.NewParquetStore(path), nil
	default:
		return nil, fmt.Errorf("unknown storage format %q", cfg.Storage.Format)
	}
}

// loadDataset opens the configured store and reads the full dataset.
func loadDataset(globals *GlobalFlags) ([]history.WatchEvent, error) {
	cfg, err := resolveConfig(globals)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	events, err := store.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load dataset (run `watchlog ingest` first?): %w", err)
	}
	return events, nil
}

// buildFilter turns command-line filter flags into a history.Filter.
func buildFilter(ff FilterFlags) (history.Filter, error) {
	var f history.Filter

	if ff.From != "" {
		t, err := history.ParseDate(ff.From)
		if err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
		f.From = t
	}
	if ff.To != "" {
		t, err := history.ParseDate(ff.To)
		if err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
		f.To = t
	}

	switch {
	case ff.NoChannels && len(ff.Channel) > 0:
		return f, fmt.Errorf("--no-channels cannot be combined with --channel")
	case ff.NoChannels:
		f.Channels = []string{}
	case len(ff.Channel) > 0:
		f.Channels = ff.Channel
	}

	return f, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDate(f history.Filter) (string, string) {
	var from, to string
	if !f.From.IsZero() {
		from = f.From.Format(history.DateLayout)
	}
	if !f.To.IsZero() {
		to = f.To.Format(history.DateLayout)
	}
	return from, to
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// bar renders count relative to peak as a run of '#' characters.
func bar(count, peak, width int) string {
	if peak <= 0 || count <= 0 {
		return ""
	}
	n := count * width / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
