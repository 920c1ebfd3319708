package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/watchlog/internal/config"
	"github.com/runnerr0/watchlog/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version        string             `json:"version"`
	StorePath      string             `json:"store_path"`
	StoreFormat    string             `json:"store_format"`
	StoreSizeBytes int64              `json:"store_size_bytes"`
	InputPath      string             `json:"input_path"`
	TotalEvents    int64              `json:"total_events"`
	TotalChannels  int64              `json:"total_channels"`
	OldestEvent    string             `json:"oldest_event,omitempty"`
	NewestEvent    string             `json:"newest_event,omitempty"`
	TopChannels    []channelCountJSON `json:"top_channels"`
	DashboardAddr  string             `json:"dashboard_addr"`
}

type channelCountJSON struct {
	Channel string `json:"channel"`
	Count   int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := resolveConfig(c.globals)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store, cfg)
}

// executeWithStore runs status against a provided store (for testing).
func (c *StatusCommand) executeWithStore(store storage.Store, cfg *config.Config) error {
	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(stats, store.Path(), cfg)
	}
	return c.printStatusHuman(stats, store.Path(), cfg)
}

func dashboardAddr(cfg *config.Config) string {
	return fmt.Sprintf("http://%s:%d", cfg.Dashboard.Host, cfg.Dashboard.Port)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, path string, cfg *config.Config) error {
	fmt.Println("watchlog Status")
	fmt.Println("===============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Input:         %s\n", cfg.Input.Path)
	fmt.Printf("Store:         %s [%s] (%s)\n", path, cfg.Storage.Format, formatBytes(stats.SizeBytes))
	fmt.Printf("Events:        %s\n", formatNumber(stats.TotalEvents))
	fmt.Printf("Channels:      %s\n", formatNumber(stats.TotalChannels))

	if stats.TotalEvents > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestEvent.UTC().Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.NewestEvent.UTC().Format("2006-01-02"))
	}

	if len(stats.TopChannels) > 0 {
		fmt.Println()
		fmt.Println("Top Channels:")
		for _, ch := range stats.TopChannels {
			fmt.Printf("  %-28s %s\n", ch.Channel, formatNumber(ch.Count))
		}
	}

	fmt.Println()
	fmt.Printf("Dashboard:     %s\n", dashboardAddr(cfg))

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, path string, cfg *config.Config) error {
	out := statusJSON{
		Version:        c.version,
		StorePath:      path,
		StoreFormat:    cfg.Storage.Format,
		StoreSizeBytes: stats.SizeBytes,
		InputPath:      cfg.Input.Path,
		TotalEvents:    stats.TotalEvents,
		TotalChannels:  stats.TotalChannels,
		TopChannels:    make([]channelCountJSON, len(stats.TopChannels)),
		DashboardAddr:  dashboardAddr(cfg),
	}

	if stats.TotalEvents > 0 {
		out.OldestEvent = stats.OldestEvent.UTC().Format(time.RFC3339)
		out.NewestEvent = stats.NewestEvent.UTC().Format(time.RFC3339)
	}

	for i, ch := range stats.TopChannels {
		out.TopChannels[i] = channelCountJSON{Channel: ch.Channel, Count: ch.Count}
	}

	return printJSON(out)
}
