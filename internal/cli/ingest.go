package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/watchlog/internal/logger"
	"github.com/runnerr0/watchlog/internal/metrics"
	"github.com/runnerr0/watchlog/internal/pipeline"
	"github.com/runnerr0/watchlog/internal/storage"
)

// Execute implements the go-flags Commander interface for IngestCommand.
func (c *IngestCommand) Execute(args []string) error {
	cfg, err := resolveConfig(c.globals)
	if err != nil {
		return err
	}
	if c.Format != "" {
		cfg.Storage.Format = c.Format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	input := cfg.Input.Path
	if c.Input != "" {
		input = c.Input
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(store, input)
}

// executeWithStore runs ingest against a provided store (for testing).
func (c *IngestCommand) executeWithStore(store storage.Store, input string) error {
	m := metrics.NewIngest()
	p := pipeline.New(store, logger.Named("ingest"), m)

	res, err := p.Run(context.Background(), input)
	// Failed runs are recorded too; the run error takes precedence.
	if c.MetricsFile != "" {
		if werr := m.WriteTextfile(c.MetricsFile); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(res)
	}

	fmt.Printf("Ingested %s watch events into %s\n", formatNumber(int64(res.Normalized)), res.Output)
	fmt.Printf("  extracted:  %s\n", formatNumber(int64(res.Extracted)))
	fmt.Printf("  dropped:    %s (unparseable timestamp)\n", formatNumber(int64(res.Dropped)))
	return nil
}
