package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/runnerr0/sitelog/internal/config"
	"github.com/runnerr0/sitelog/internal/logging"
	"github.com/runnerr0/sitelog/internal/report"
	"github.com/runnerr0/sitelog/internal/storage"
	"github.com/runnerr0/sitelog/internal/tally"
)

// loadConfig loads --config, or the default config file, creating it with
// defaults when missing.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	return config.LoadOrCreate()
}

// newLogger builds the logger for cfg, honouring --verbose.
func newLogger(cfg *config.Config, globals *GlobalFlags) (*logrus.Logger, io.Closer, error) {
	verbose := globals != nil && globals.Verbose
	return logging.New(cfg.Logging, verbose)
}

// openStore opens the configured storage backend. The returned func
// releases it.
func openStore(cfg *config.Config) (storage.DayStore, func(), error) {
	dir, err := cfg.DataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data directory: %w", err)
	}

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return openSQLiteStore(filepath.Join(dir, cfg.Storage.SQLiteFile))
	default:
		store, err := storage.NewCSVStore(dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}

// openSQLiteStore opens the database at dbPath, runs migrations, and
// returns a ready-to-use store.
func openSQLiteStore(dbPath string) (storage.DayStore, func(), error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, func() {
		store.Close()
		db.Close()
	}, nil
}

// newRenderer builds the chart renderer described by cfg.
func newRenderer(cfg *config.Config) (*report.Renderer, error) {
	dir, err := cfg.ChartDir()
	if err != nil {
		return nil, fmt.Errorf("resolve chart directory: %w", err)
	}

	r := &report.Renderer{Dir: dir, Width: cfg.Report.Width, Height: cfg.Report.Height}
	if cfg.Report.FontPath != "" {
		font, err := report.LoadFont(cfg.Report.FontPath)
		if err != nil {
			return nil, err
		}
		r.Font = font
	}
	return r, nil
}

// renderReports draws today's share chart and the trailing week's hours
// chart. agg supplies days not yet persisted; it may be empty.
func renderReports(ctx context.Context, cfg *config.Config, store storage.DayStore,
	agg *tally.Aggregator, now time.Time, log logrus.FieldLogger) error {
	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	today := tally.DayKey(now)

	daily, err := agg.MultiDayView(ctx, store, []string{today})
	if err != nil {
		return fmt.Errorf("load today: %w", err)
	}
	path, err := renderer.Daily(today, daily)
	switch {
	case errors.Is(err, report.ErrNoData):
		fmt.Println("No browser use recorded today.")
	case err != nil:
		return err
	default:
		log.WithField("path", path).Info("daily chart written")
		fmt.Printf("Daily chart:  %s\n", path)
	}

	week, err := agg.MultiDayView(ctx, store, tally.WeekDays(now, cfg.Report.WeekDays))
	if err != nil {
		return fmt.Errorf("load week: %w", err)
	}
	path, err = renderer.Weekly(today, week)
	switch {
	case errors.Is(err, report.ErrNoData):
		fmt.Println("No browser use recorded this week.")
	case err != nil:
		return err
	default:
		log.WithField("path", path).Info("weekly chart written")
		fmt.Printf("Weekly chart: %s\n", path)
	}

	return nil
}

// resolveDay returns the --day flag value or today's key.
func resolveDay(flag string, now func() time.Time) (string, time.Time, error) {
	if now == nil {
		now = time.Now
	}
	if flag == "" {
		t := now()
		return tally.DayKey(t), t, nil
	}
	t, err := time.ParseInLocation(tally.DateLayout, flag, time.Local)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid --day %q: want YYYY-MM-DD", flag)
	}
	return flag, t, nil
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, or w suffix)", s)
	}
}

// formatDurationHuman formats a duration into a human-readable string like "30 days".
func formatDurationHuman(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	hours := int(d.Hours())
	if hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}

// formatSeconds formats seconds as h:mm:ss.
func formatSeconds(secs int64) string {
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
