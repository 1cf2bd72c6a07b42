package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/runnerr0/sitelog/internal/config"
	"github.com/runnerr0/sitelog/internal/storage"
	"github.com/runnerr0/sitelog/internal/tally"
	"github.com/runnerr0/sitelog/internal/tracker"
	"github.com/runnerr0/sitelog/internal/window"
)

// Execute implements the go-flags Commander interface for TrackCommand.
func (c *TrackCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	log, logCloser, err := newLogger(cfg, c.globals)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeStore()

	// Interrupt ends the run normally; save and report still happen.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.run(ctx, cfg, store, log)
}

func (c *TrackCommand) clock() func() time.Time {
	if c.now != nil {
		return c.now
	}
	return time.Now
}

// run tracks until ctx is cancelled, then saves every day held in memory
// and renders the charts.
func (c *TrackCommand) run(ctx context.Context, cfg *config.Config, store storage.DayStore, log *logrus.Logger) error {
	interval := cfg.Tracking.IntervalSeconds
	if c.Interval > 0 {
		interval = c.Interval
	}
	now := c.clock()

	agg := tally.NewAggregator()
	if cfg.Tracking.ResumeToday {
		today := tally.DayKey(now())
		prev, err := store.LoadDay(ctx, today)
		if err != nil {
			return fmt.Errorf("load today's totals: %w", err)
		}
		agg.Seed(today, prev)
		if prev.Len() > 0 {
			log.WithField("sites", prev.Len()).Info("resuming today's totals")
		}
	}

	observer := c.observer
	if observer == nil {
		observer = window.New(log)
	}

	tr := tracker.New(observer, cfg.Classifier(), agg,
		window.NewBrowserSet(cfg.Tracking.Browsers),
		time.Duration(interval)*time.Second,
		tracker.WithClock(now), tracker.WithLogger(log))

	fmt.Println("Tracking browser time per site (Ctrl+C to stop)")

	stats, err := tr.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Tracking stopped.")
	log.WithFields(logrus.Fields{
		"samples":  stats.Ticks,
		"recorded": stats.Recorded,
		"skipped":  stats.Skipped,
	}).Info("run finished")

	// ctx is already cancelled; persistence must not observe it.
	done := context.Background()

	if err := saveAll(done, store, agg, log); err != nil {
		return err
	}

	if c.NoReport || !cfg.Report.Enabled {
		return nil
	}
	return renderReports(done, cfg, store, agg, now(), log)
}

// saveAll persists every day the aggregator holds.
func saveAll(ctx context.Context, store storage.DayStore, agg *tally.Aggregator, log logrus.FieldLogger) error {
	for _, day := range agg.Days() {
		totals := agg.DailyView(day)
		if err := store.SaveDay(ctx, day, totals); err != nil {
			return fmt.Errorf("save %s: %w", day, err)
		}
		log.WithFields(logrus.Fields{"day": day, "sites": totals.Len()}).Info("saved daily totals")
	}
	return nil
}
