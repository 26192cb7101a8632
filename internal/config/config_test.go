package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Study.Tickers) != 5 {
		t.Errorf("expected 5 tickers, got %d", len(cfg.Study.Tickers))
	}
	if cfg.Study.Tickers[0] != "JFC" {
		t.Errorf("expected JFC first, got %s", cfg.Study.Tickers[0])
	}
	if len(cfg.Study.Events) != 4 {
		t.Errorf("expected 4 events, got %d", len(cfg.Study.Events))
	}
	if cfg.Study.RadiusDays != 7 {
		t.Errorf("expected radius 7, got %d", cfg.Study.RadiusDays)
	}
	if len(cfg.Study.MAWindows) != 2 || cfg.Study.MAWindows[0] != 7 || cfg.Study.MAWindows[1] != 30 {
		t.Errorf("unexpected MA windows: %v", cfg.Study.MAWindows)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(cfg.Study.Tickers) != 5 {
		t.Errorf("expected default tickers, got %v", cfg.Study.Tickers)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
study:
  tickers: [JFC, URC]
  radius_days: 3
output:
  dir: out
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Study.Tickers) != 2 {
		t.Errorf("expected 2 tickers, got %v", cfg.Study.Tickers)
	}
	if cfg.Study.RadiusDays != 3 {
		t.Errorf("expected radius 3, got %d", cfg.Study.RadiusDays)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("expected output dir 'out', got %s", cfg.Output.Dir)
	}
	// Untouched sections keep defaults.
	if len(cfg.Study.Events) != 4 {
		t.Errorf("expected default events preserved, got %d", len(cfg.Study.Events))
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("study: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestEnvOverridesDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://env-host/db")
	t.Setenv("CLICKHOUSE_DSN", "clickhouse://env-host:9000/db")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
storage:
  postgres_dsn: postgres://file-host/db
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.PostgresDSN != "postgres://env-host/db" {
		t.Errorf("env DSN should win, got %s", cfg.Storage.PostgresDSN)
	}
	if cfg.Storage.ClickhouseDSN != "clickhouse://env-host:9000/db" {
		t.Errorf("env DSN should win, got %s", cfg.Storage.ClickhouseDSN)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no tickers", func(c *Config) { c.Study.Tickers = nil }},
		{"no events", func(c *Config) { c.Study.Events = nil }},
		{"zero radius", func(c *Config) { c.Study.RadiusDays = 0 }},
		{"no ma windows", func(c *Config) { c.Study.MAWindows = nil }},
		{"ma window too short", func(c *Config) { c.Study.MAWindows = []int{1} }},
		{"bad event date", func(c *Config) { c.Study.Events[0].Date = "April 2nd" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEvents(t *testing.T) {
	cfg := DefaultConfig()
	events, err := cfg.Events()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[0].Label != "inauguration" {
		t.Errorf("expected config order preserved, got %s first", events[0].Label)
	}
	want := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	if !events[1].Date.Equal(want) {
		t.Errorf("expected %v, got %v", want, events[1].Date)
	}
}
