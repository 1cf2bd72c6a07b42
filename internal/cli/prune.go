package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/sitelog/internal/storage"
	"github.com/runnerr0/sitelog/internal/tally"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeStore()

	return c.executeWithStore(store)
}

// executeWithStore runs the prune logic against a provided store (used by tests).
func (c *PruneCommand) executeWithStore(store storage.DayStore) error {
	retention, err := parseDuration(c.OlderThan)
	if err != nil {
		return err
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	cutoff := tally.DayKey(now().Add(-retention))

	ctx := context.Background()

	var pruned int64
	if c.DryRun {
		days, err := store.ListDays(ctx)
		if err != nil {
			return fmt.Errorf("list days: %w", err)
		}
		for _, d := range days {
			if d < cutoff {
				pruned++
			}
		}
	} else {
		pruned, err = store.PruneBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("prune: %w", err)
		}
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"cutoff":  cutoff,
			"days":    pruned,
			"dry_run": c.DryRun,
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	verb := "Pruned"
	if c.DryRun {
		verb = "Would prune"
	}
	fmt.Printf("%s %d day(s) older than %s (before %s).\n", verb, pruned, formatDurationHuman(retention), cutoff)
	return nil
}
