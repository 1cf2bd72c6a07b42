package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/sitelog/internal/config"
	"github.com/runnerr0/sitelog/internal/storage"
	"github.com/runnerr0/sitelog/internal/tally"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testConfig returns a default config whose data and chart directories
// live under a fresh temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(dir, "data")
	cfg.Report.OutputDir = filepath.Join(dir, "charts")
	return cfg
}

// testStore opens a CSV store in a temp dir.
func testStore(t *testing.T) *storage.CSVStore {
	t.Helper()
	store, err := storage.NewCSVStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return store
}

func fixedClock(day string) func() time.Time {
	t, err := time.ParseInLocation(tally.DateLayout, day, time.Local)
	if err != nil {
		panic(err)
	}
	t = t.Add(15 * time.Hour)
	return func() time.Time { return t }
}

func saveTotals(t *testing.T, store storage.DayStore, day string, sites ...tally.Site) {
	t.Helper()
	totals := tally.NewTotals()
	for _, s := range sites {
		totals.Add(s.Label, s.Seconds)
	}
	require.NoError(t, store.SaveDay(context.Background(), day, totals))
}
