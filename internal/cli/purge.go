package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runnerr0/watchlog/internal/storage"
)

// setStore allows tests to inject a store.
func (c *PurgeCommand) setStore(s storage.Store) {
	c.store = s
}

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	return c.execute(os.Stdin)
}

func (c *PurgeCommand) execute(in io.Reader) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete the stored watch-history dataset.")
		fmt.Println("The original export is not touched; run `watchlog ingest` to rebuild.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		if strings.TrimSpace(scanner.Text()) != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	store := c.store
	if store == nil {
		cfg, err := resolveConfig(c.globals)
		if err != nil {
			return err
		}
		store, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if err := store.PurgeAll(context.Background()); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{
			"purged":  true,
			"path":    store.Path(),
			"message": "dataset deleted",
		})
	}

	fmt.Println("Purged the stored dataset.")
	return nil
}
