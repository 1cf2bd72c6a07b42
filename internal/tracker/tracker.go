// Package tracker runs the fixed-interval sample, classify, accumulate loop.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/sitelog/internal/classify"
	"github.com/runnerr0/sitelog/internal/tally"
	"github.com/runnerr0/sitelog/internal/window"
)

// Logger abstracts logging so callers can use logrus or any other logger
// that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Debugf(string, ...interface{}) {}

// RunStats counts what happened during a run.
type RunStats struct {
	Ticks    int
	Recorded int
	Skipped  int
}

// Tracker samples the foreground window every interval and credits the
// interval to the classified site of the current day.
type Tracker struct {
	observer   window.Observer
	classifier *classify.Classifier
	agg        *tally.Aggregator
	browsers   window.BrowserSet
	interval   time.Duration
	now        func() time.Time
	log        Logger

	// sleep overrides the wait between samples; zero means interval.
	sleep time.Duration
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source used to pick the day key.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger. Nil keeps the silent default.
func WithLogger(log Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log
		}
	}
}

// New returns a Tracker writing into agg. interval is both the sampling
// period and the time credited per recorded sample.
func New(observer window.Observer, classifier *classify.Classifier, agg *tally.Aggregator,
	browsers window.BrowserSet, interval time.Duration, opts ...Option) *Tracker {
	t := &Tracker{
		observer:   observer,
		classifier: classifier,
		agg:        agg,
		browsers:   browsers,
		interval:   interval,
		now:        time.Now,
		log:        nopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tick takes one sample. It returns the site credited, or false when the
// sample was skipped (no window, or not a browser).
func (t *Tracker) Tick(ctx context.Context) (string, bool) {
	obs, ok := t.observer.Active(ctx)
	if !ok {
		t.log.Debugf("no foreground window")
		return "", false
	}
	if !t.browsers.Contains(obs.Process) {
		t.log.Debugf("skip non-browser process %q", obs.Process)
		return "", false
	}

	site, source := t.classifier.Match(obs.Title)
	day := tally.DayKey(t.now())
	t.agg.Add(day, site, int64(t.interval/time.Second))

	t.log.Debugf("%s: %q -> %s (%s)", day, obs.Title, site, source)
	return site, true
}

// Run samples until ctx is cancelled. Cancellation is the normal way to
// stop and is not reported as an error.
func (t *Tracker) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats
	if ctx.Err() != nil {
		return stats, nil
	}

	wait := t.interval
	if t.sleep > 0 {
		wait = t.sleep
	}
	if wait <= 0 {
		return stats, fmt.Errorf("sampling interval must be positive, got %s", t.interval)
	}
	ticker := time.NewTicker(wait)
	defer ticker.Stop()

	t.log.Infof("tracking every %s", t.interval)

	for {
		stats.Ticks++
		if _, ok := t.Tick(ctx); ok {
			stats.Recorded++
		} else {
			stats.Skipped++
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			t.log.Infof("tracking stopped after %d samples (%d recorded)", stats.Ticks, stats.Recorded)
			return stats, nil
		}
	}
}
