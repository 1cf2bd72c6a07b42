// Package storage persists per-day site totals.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/sitelog/internal/tally"
)

// DayStore defines the persistence operations for daily totals.
// LoadDay returns empty totals and no error for a day with no data.
type DayStore interface {
	SaveDay(ctx context.Context, day string, totals *tally.Totals) error
	LoadDay(ctx context.Context, day string) (*tally.Totals, error)
	ListDays(ctx context.Context) ([]string, error)
	DeleteDay(ctx context.Context, day string) error
	PruneBefore(ctx context.Context, day string) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// Stats holds aggregate statistics about stored days.
type Stats struct {
	Days         int64
	TotalSeconds int64
	OldestDay    string
	NewestDay    string
	TopSites     []SiteSeconds
}

// SiteSeconds pairs a site with its stored total.
type SiteSeconds struct {
	Site    string
	Seconds int64
}

// topSitesLimit caps Stats.TopSites.
const topSitesLimit = 10

// ValidateDay checks that day is an ISO calendar date.
func ValidateDay(day string) error {
	if _, err := time.Parse(tally.DateLayout, day); err != nil {
		return fmt.Errorf("invalid day %q: want YYYY-MM-DD", day)
	}
	return nil
}
