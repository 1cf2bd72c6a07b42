package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/runnerr0/sitelog/internal/classify"
)

// Default config file path.
const DefaultConfigPath = "~/.config/sitelog/config.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config holds all sitelog configuration.
type Config struct {
	Tracking TrackingConfig `yaml:"tracking"`
	Classify ClassifyConfig `yaml:"classify"`
	Storage  StorageConfig  `yaml:"storage"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type TrackingConfig struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	Browsers        []string `yaml:"browsers"`
	ResumeToday     bool     `yaml:"resume_today"`
}

type ClassifyConfig struct {
	KnownSites    []classify.Rule `yaml:"known_sites"`
	MaxLabelRunes int             `yaml:"max_label_runes"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"`
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type ReportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
	FontPath  string `yaml:"font_path"`
	WeekDays  int    `yaml:"week_days"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML,
// or fails validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would make tracking meaningless.
func (c *Config) Validate() error {
	if c.Tracking.IntervalSeconds <= 0 {
		return fmt.Errorf("tracking.interval_seconds must be positive, got %d", c.Tracking.IntervalSeconds)
	}
	switch c.Storage.Backend {
	case BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendCSV, BackendSQLite, c.Storage.Backend)
	}
	for i, r := range c.Classify.KnownSites {
		if r.Label == "" || r.Marker == "" {
			return fmt.Errorf("classify.known_sites[%d]: label and marker are required", i)
		}
	}
	if c.Report.WeekDays <= 0 {
		return fmt.Errorf("report.week_days must be positive, got %d", c.Report.WeekDays)
	}
	return nil
}

// Classifier builds the title classifier described by the config.
func (c *Config) Classifier() *classify.Classifier {
	return classify.New(c.Classify.KnownSites, c.Classify.MaxLabelRunes)
}

// DataDir returns the storage directory with ~ expanded.
func (c *Config) DataDir() (string, error) {
	return homedir.Expand(c.Storage.Path)
}

// ChartDir returns the chart output directory with ~ expanded. It defaults
// to a charts directory beside the stored data.
func (c *Config) ChartDir() (string, error) {
	if c.Report.OutputDir != "" {
		return homedir.Expand(c.Report.OutputDir)
	}
	dir, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "charts"), nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := homedir.Expand(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
