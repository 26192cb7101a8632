// Package config loads the study configuration: which companies and
// events to analyze, window parameters, input paths, and store DSNs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tariff-event-lab/internal/domain"
)

// Config is the full application configuration.
type Config struct {
	Study   StudyConfig   `yaml:"study"`
	Inputs  InputsConfig  `yaml:"inputs"`
	Storage StorageConfig `yaml:"storage"`
	Output  OutputConfig  `yaml:"output"`
}

// StudyConfig holds the analytic parameters.
type StudyConfig struct {
	Tickers    []string      `yaml:"tickers"`
	Events     []EventConfig `yaml:"events"`
	RadiusDays int           `yaml:"radius_days"` // K for ±K-day event windows
	MAWindows  []int         `yaml:"ma_windows"`  // trailing SMA window lengths
}

// EventConfig is one named event date in ISO form.
type EventConfig struct {
	Label string `yaml:"label"`
	Date  string `yaml:"date"` // 2006-01-02
}

// InputsConfig points at the raw exports the ingest step consumes.
type InputsConfig struct {
	PricesCSV    string `yaml:"prices_csv"`
	SentimentCSV string `yaml:"sentiment_csv"`
	HeaderRows   int    `yaml:"header_rows"` // fixed header-skip offset of the price table
}

// StorageConfig holds store DSNs.
type StorageConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the configuration of the Philippine food
// company tariff study.
func DefaultConfig() *Config {
	return &Config{
		Study: StudyConfig{
			Tickers: []string{"JFC", "URC", "CNPF", "GSMI", "MONDE"},
			Events: []EventConfig{
				{Label: "inauguration", Date: "2025-01-20"},
				{Label: "17pct_announcement", Date: "2025-04-02"},
				{Label: "20pct_escalation", Date: "2025-07-09"},
				{Label: "19pct_deal", Date: "2025-07-22"},
			},
			RadiusDays: 7,
			MAWindows:  []int{domain.MAWindowShort, domain.MAWindowLong},
		},
		Inputs: InputsConfig{
			PricesCSV:    "data/stock_prices.csv",
			SentimentCSV: "data/reddit_sentiment_detailed.csv",
			HeaderRows:   2,
		},
		Storage: StorageConfig{
			PostgresDSN:   os.Getenv("POSTGRES_DSN"),
			ClickhouseDSN: os.Getenv("CLICKHOUSE_DSN"),
		},
		Output: OutputConfig{
			Dir: "docs",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Storage.PostgresDSN = dsn
	}
	if dsn := os.Getenv("CLICKHOUSE_DSN"); dsn != "" {
		cfg.Storage.ClickhouseDSN = dsn
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Study.Tickers) == 0 {
		return fmt.Errorf("at least one ticker is required")
	}
	if len(c.Study.Events) == 0 {
		return fmt.Errorf("at least one event is required")
	}
	if c.Study.RadiusDays < 1 {
		return fmt.Errorf("radius_days must be at least 1")
	}
	if len(c.Study.MAWindows) == 0 {
		return fmt.Errorf("at least one moving average window is required")
	}
	for _, w := range c.Study.MAWindows {
		if w < 2 {
			return fmt.Errorf("moving average window %d is too short", w)
		}
	}
	if _, err := c.Events(); err != nil {
		return err
	}
	return nil
}

// Events parses the configured event dates, preserving config order.
func (c *Config) Events() ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(c.Study.Events))
	for _, e := range c.Study.Events {
		t, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return nil, fmt.Errorf("event %q: bad date %q: %w", e.Label, e.Date, err)
		}
		events = append(events, domain.Event{Label: e.Label, Date: domain.Day(t)})
	}
	return events, nil
}
