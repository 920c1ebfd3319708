package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/runnerr0/watchlog/internal/config"
	"github.com/runnerr0/watchlog/internal/dashboard"
	"github.com/runnerr0/watchlog/internal/logger"
	"github.com/runnerr0/watchlog/internal/metrics"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := resolveConfig(c.globals)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	events, err := store.Load(context.Background())
	store.Close()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := dashboard.New(events, cfg.Dashboard, logger.Named("dashboard"), metrics.NewDashboard())
	return srv.Run(ctx)
}

func (c *ServeCommand) applyOverrides(cfg *config.Config) {
	if c.Host != "" {
		cfg.Dashboard.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Dashboard.Port = c.Port
	}
}
