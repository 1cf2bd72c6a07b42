package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/sitelog/internal/tally"
	"github.com/runnerr0/sitelog/internal/window"
)

// cancelOnFirst reports obs once and cancels ctx, ending the run after a
// single sample.
func cancelOnFirst(cancel context.CancelFunc, obs window.Observation) window.Observer {
	return window.ObserverFunc(func(ctx context.Context) (window.Observation, bool) {
		cancel()
		return obs, true
	})
}

func TestTrack_SavesAndReports(t *testing.T) {
	cfg := testConfig(t)
	store := testStore(t)
	log, _ := logtest.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := &TrackCommand{
		globals:  &GlobalFlags{},
		observer: cancelOnFirst(cancel, window.Observation{Process: "chrome.exe", Title: "Cats - YouTube"}),
		now:      fixedClock("2024-03-07"),
	}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.run(ctx, cfg, store, log))
	})
	assert.Contains(t, out, "Tracking stopped.")
	assert.Contains(t, out, "Daily chart:")
	assert.Contains(t, out, "Weekly chart:")

	got, err := store.LoadDay(context.Background(), "2024-03-07")
	require.NoError(t, err)
	secs, ok := got.Seconds("youtube")
	require.True(t, ok)
	assert.Equal(t, int64(cfg.Tracking.IntervalSeconds), secs)

	for _, name := range []string{"daily-2024-03-07.png", "weekly-2024-03-07.png"} {
		_, err := os.Stat(filepath.Join(cfg.Report.OutputDir, name))
		assert.NoError(t, err, name)
	}
}

func TestTrack_ResumesToday(t *testing.T) {
	cfg := testConfig(t)
	store := testStore(t)
	saveTotals(t, store, "2024-03-07", tally.Site{Label: "youtube", Seconds: 100})
	log, _ := logtest.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := &TrackCommand{
		Interval: 2,
		NoReport: true,
		globals:  &GlobalFlags{},
		observer: cancelOnFirst(cancel, window.Observation{Process: "firefox", Title: "Cats - YouTube"}),
		now:      fixedClock("2024-03-07"),
	}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.run(ctx, cfg, store, log))
	})
	assert.NotContains(t, out, "Daily chart:")

	got, err := store.LoadDay(context.Background(), "2024-03-07")
	require.NoError(t, err)
	secs, _ := got.Seconds("youtube")
	assert.Equal(t, int64(102), secs)
}

func TestTrack_NonBrowserRecordsNothing(t *testing.T) {
	cfg := testConfig(t)
	store := testStore(t)
	log, _ := logtest.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := &TrackCommand{
		globals:  &GlobalFlags{},
		observer: cancelOnFirst(cancel, window.Observation{Process: "code.exe", Title: "main.go - sitelog"}),
		now:      fixedClock("2024-03-07"),
	}

	out := captureOutput(t, func() {
		require.NoError(t, cmd.run(ctx, cfg, store, log))
	})
	assert.Contains(t, out, "No browser use recorded today.")
	assert.Contains(t, out, "No browser use recorded this week.")

	days, err := store.ListDays(context.Background())
	require.NoError(t, err)
	assert.Empty(t, days)
}
