package cli

import "github.com/runnerr0/watchlog/internal/storage"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// FilterFlags selects a subset of the dataset by date and channel.
type FilterFlags struct {
	From       string   `long:"from" description:"First calendar date to include (YYYY-MM-DD)"`
	To         string   `long:"to" description:"Last calendar date to include (YYYY-MM-DD)"`
	Channel    []string `long:"channel" description:"Only this channel (repeatable)"`
	NoChannels bool     `long:"no-channels" description:"Select no channels at all"`
}

// IngestCommand reads the export and rebuilds the stored dataset.
type IngestCommand struct {
	Input       string `long:"input" short:"i" description:"Watch-history export (overrides input.path)"`
	Format      string `long:"format" description:"Storage format: parquet | sqlite (overrides storage.format)"`
	MetricsFile string `long:"metrics-file" description:"Write ingest metrics in Prometheus text format to this file"`

	globals *GlobalFlags
	version string
}

// StatsCommand prints hourly, weekday and monthly view counts.
type StatsCommand struct {
	FilterFlags

	globals *GlobalFlags
	version string
}

// ChannelsCommand lists channels in default order for a date range.
type ChannelsCommand struct {
	From  string `long:"from" description:"First calendar date to include (YYYY-MM-DD)"`
	To    string `long:"to" description:"Last calendar date to include (YYYY-MM-DD)"`
	Limit int    `long:"limit" description:"Maximum channels to list (0 = all)" default:"0"`

	globals *GlobalFlags
	version string
}

// StatusCommand shows dataset statistics and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// ServeCommand starts the dashboard data API.
type ServeCommand struct {
	Host string `long:"host" description:"Override dashboard host"`
	Port int    `long:"port" description:"Override dashboard port"`

	globals *GlobalFlags
	version string
}

// PurgeCommand deletes the stored dataset with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	store   storage.Store // injectable for testing; nil means open the configured store
}
