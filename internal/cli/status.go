package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/runnerr0/sitelog/internal/config"
	"github.com/runnerr0/sitelog/internal/storage"
	"github.com/runnerr0/sitelog/internal/tally"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version      string     `json:"version"`
	Backend      string     `json:"backend"`
	DataDir      string     `json:"data_dir"`
	StoredDays   int64      `json:"stored_days"`
	TotalSeconds int64      `json:"total_seconds"`
	OldestDay    string     `json:"oldest_day,omitempty"`
	NewestDay    string     `json:"newest_day,omitempty"`
	Day          string     `json:"day"`
	Today        []siteJSON `json:"today"`
	Week         []siteJSON `json:"week"`
	TopSites     []siteJSON `json:"top_sites"`
}

type siteJSON struct {
	Site    string `json:"site"`
	Seconds int64  `json:"seconds"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeStore()

	return c.executeWithStore(cfg, store)
}

// executeWithStore runs status against a provided store (for testing).
func (c *StatusCommand) executeWithStore(cfg *config.Config, store storage.DayStore) error {
	ctx := context.Background()

	day, now, err := resolveDay(c.Day, c.now)
	if err != nil {
		return err
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	today, err := store.LoadDay(ctx, day)
	if err != nil {
		return fmt.Errorf("load %s: %w", day, err)
	}

	week, err := tally.NewAggregator().MultiDayView(ctx, store, tally.WeekDays(now, cfg.Report.WeekDays))
	if err != nil {
		return fmt.Errorf("load week: %w", err)
	}

	dataDir, _ := cfg.DataDir()

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(cfg, dataDir, day, stats, today, week)
	}
	return c.printStatusHuman(cfg, dataDir, day, stats, today, week)
}

// byTime returns sites sorted by seconds, largest first.
func byTime(t *tally.Totals) []tally.Site {
	sites := t.Sites()
	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].Seconds > sites[j].Seconds
	})
	return sites
}

func printSites(t *tally.Totals) {
	sum := t.Sum()
	for _, s := range byTime(t) {
		pct := 0.0
		if sum > 0 {
			pct = float64(s.Seconds) / float64(sum) * 100
		}
		fmt.Printf("  %-24s %10s %6.1f%%\n", s.Label, formatSeconds(s.Seconds), pct)
	}
}

func (c *StatusCommand) printStatusHuman(cfg *config.Config, dataDir, day string, stats *storage.Stats, today, week *tally.Totals) error {
	fmt.Println("sitelog Status")
	fmt.Println("==============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Storage:       %s (%s)\n", cfg.Storage.Backend, dataDir)
	fmt.Printf("Days stored:   %d\n", stats.Days)
	if stats.Days > 0 {
		fmt.Printf("Range:         %s .. %s\n", stats.OldestDay, stats.NewestDay)
	}
	fmt.Printf("Total time:    %s\n", formatSeconds(stats.TotalSeconds))

	fmt.Println()
	if today.Len() == 0 {
		fmt.Printf("Today (%s): no browser use recorded\n", day)
	} else {
		fmt.Printf("Today (%s): %s\n", day, formatSeconds(today.Sum()))
		printSites(today)
	}

	fmt.Println()
	if week.Len() == 0 {
		fmt.Printf("Last %d days: no browser use recorded\n", cfg.Report.WeekDays)
	} else {
		fmt.Printf("Last %d days: %s\n", cfg.Report.WeekDays, formatSeconds(week.Sum()))
		printSites(week)
	}

	if len(stats.TopSites) > 0 {
		fmt.Println()
		fmt.Println("Top Sites:")
		for _, s := range stats.TopSites {
			fmt.Printf("  %-24s %10s\n", s.Site, formatSeconds(s.Seconds))
		}
	}

	return nil
}

func toSiteJSON(sites []tally.Site) []siteJSON {
	out := make([]siteJSON, len(sites))
	for i, s := range sites {
		out[i] = siteJSON{Site: s.Label, Seconds: s.Seconds}
	}
	return out
}

func (c *StatusCommand) printStatusJSON(cfg *config.Config, dataDir, day string, stats *storage.Stats, today, week *tally.Totals) error {
	out := statusJSON{
		Version:      c.version,
		Backend:      cfg.Storage.Backend,
		DataDir:      dataDir,
		StoredDays:   stats.Days,
		TotalSeconds: stats.TotalSeconds,
		OldestDay:    stats.OldestDay,
		NewestDay:    stats.NewestDay,
		Day:          day,
		Today:        toSiteJSON(byTime(today)),
		Week:         toSiteJSON(byTime(week)),
		TopSites:     make([]siteJSON, len(stats.TopSites)),
	}

	for i, s := range stats.TopSites {
		out.TopSites[i] = siteJSON{Site: s.Site, Seconds: s.Seconds}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
