package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/sitelog/internal/tally"
)

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	log, logCloser, err := newLogger(cfg, c.globals)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	_, day, err := resolveDay(c.Day, c.now)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeStore()

	// Everything comes from storage; nothing is tracked in this process.
	return renderReports(context.Background(), cfg, store, tally.NewAggregator(), day, log)
}
