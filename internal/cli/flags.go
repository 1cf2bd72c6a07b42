package cli

import (
	"time"

	"github.com/runnerr0/sitelog/internal/storage"
	"github.com/runnerr0/sitelog/internal/window"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// TrackCommand sample the foreground browser window until interrupted,
// then save totals and render charts.
type TrackCommand struct {
	Interval int  `long:"interval" description:"Override sampling interval in seconds"`
	NoReport bool `long:"no-report" description:"Skip chart rendering at shutdown"`

	globals  *GlobalFlags
	version  string
	observer window.Observer  // injectable for testing; nil means the platform observer
	now      func() time.Time // injectable for testing; nil means time.Now
}

// ReportCommand render the daily and weekly charts from stored data.
type ReportCommand struct {
	Day string `long:"day" description:"Day to report (YYYY-MM-DD), defaults to today"`

	globals *GlobalFlags
	version string
	now     func() time.Time
}

// StatusCommand show today's and this week's totals and storage stats.
type StatusCommand struct {
	Day string `long:"day" description:"Day to show (YYYY-MM-DD), defaults to today"`

	globals *GlobalFlags
	version string
	now     func() time.Time
}

// ClassifyCommand print the site label each title would be credited to.
type ClassifyCommand struct {
	Args struct {
		Titles []string `positional-arg-name:"title" description:"Window titles to classify"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
}

// PruneCommand delete stored days older than a retention period.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Retention period (e.g., 90d, 12w)" default:"90d"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
	now     func() time.Time
}

// PurgeCommand delete ALL stored data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	store   storage.DayStore // injectable for testing; nil means open the configured store
}
