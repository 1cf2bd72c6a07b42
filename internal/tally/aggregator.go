// Package tally accumulates seconds per site per calendar day.
package tally

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-day layout used for day keys.
const DateLayout = "2006-01-02"

// DayKey formats t as a day key in t's location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekDays returns the day keys for today and the n-1 days before it,
// newest first.
func WeekDays(today time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, DayKey(today.AddDate(0, 0, -i)))
	}
	return days
}

// DayLoader reads the persisted totals for one day. A day with no stored
// data returns empty totals and a nil error.
type DayLoader interface {
	LoadDay(ctx context.Context, day string) (*Totals, error)
}

// Aggregator owns the in-memory totals of the current run. It is not safe
// for concurrent use; the tracking loop is its only writer.
type Aggregator struct {
	days  map[string]*Totals
	order []string
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{days: make(map[string]*Totals)}
}

func (a *Aggregator) day(day string) *Totals {
	t, ok := a.days[day]
	if !ok {
		t = NewTotals()
		a.days[day] = t
		a.order = append(a.order, day)
	}
	return t
}

// Add increments the seconds recorded for site on day.
func (a *Aggregator) Add(day, site string, seconds int64) {
	if seconds < 0 {
		return
	}
	a.day(day).Add(site, seconds)
}

// Seed merges previously persisted totals for day into memory, so a later
// save of that day includes them.
func (a *Aggregator) Seed(day string, totals *Totals) {
	if totals.Len() == 0 {
		return
	}
	a.day(day).Merge(totals)
}

// Has reports whether day has in-memory totals.
func (a *Aggregator) Has(day string) bool {
	_, ok := a.days[day]
	return ok
}

// Days returns the days held in memory in first-observation order.
func (a *Aggregator) Days() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// DailyView returns a copy of the totals for day, empty if none.
func (a *Aggregator) DailyView(day string) *Totals {
	t, ok := a.days[day]
	if !ok {
		return NewTotals()
	}
	return t.Clone()
}

// MultiDayView sums seconds per site across days. Days held in memory are
// read from memory; all others come from loader. Repeated days are counted
// once and days with no data contribute nothing.
func (a *Aggregator) MultiDayView(ctx context.Context, loader DayLoader, days []string) (*Totals, error) {
	sum := NewTotals()
	seen := make(map[string]struct{}, len(days))

	for _, day := range days {
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}

		if t, ok := a.days[day]; ok {
			sum.Merge(t)
			continue
		}
		if loader == nil {
			continue
		}

		t, err := loader.LoadDay(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", day, err)
		}
		sum.Merge(t)
	}

	return sum, nil
}
