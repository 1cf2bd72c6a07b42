package config

import "github.com/runnerr0/sitelog/internal/classify"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Tracking: TrackingConfig{
			IntervalSeconds: 5,
			Browsers:        DefaultBrowsers(),
			ResumeToday:     true,
		},
		Classify: ClassifyConfig{
			KnownSites:    classify.DefaultRules(),
			MaxLabelRunes: classify.DefaultMaxLabelRunes,
		},
		Storage: StorageConfig{
			Backend:    BackendCSV,
			Path:       "data",
			SQLiteFile: "sitelog.db",
		},
		Report: ReportConfig{
			Enabled:   true,
			OutputDir: "",
			FontPath:  "",
			WeekDays:  7,
			Width:     1024,
			Height:    768,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
	}
}
