package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Fetch.ChunkSize != 200 {
		t.Errorf("chunk_size default %d, want 200", cfg.Fetch.ChunkSize)
	}
	if len(cfg.Universe.Screens) != 4 {
		t.Errorf("expected 4 default screens, got %v", cfg.Universe.Screens)
	}
	if cfg.Universe.LookupTimeoutSec != 5 {
		t.Errorf("lookup timeout default %d, want 5", cfg.Universe.LookupTimeoutSec)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.BaseDelayMS != 1000 || cfg.Retry.Multiplier != 2.0 {
		t.Errorf("unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.Session.Timezone != "America/New_York" {
		t.Errorf("session timezone default %q", cfg.Session.Timezone)
	}
	if cfg.LLM.Provider != "NOOP" {
		t.Errorf("llm provider default %q, want NOOP", cfg.LLM.Provider)
	}
	if cfg.LLM.System == "" {
		t.Error("expected a default system prompt")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
fetch:
  chunk_size: 50
llm:
  provider: OPENAI
  model: gpt-4o
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Fetch.ChunkSize != 50 {
		t.Errorf("chunk_size %d, want 50", cfg.Fetch.ChunkSize)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("model %q, want gpt-4o", cfg.LLM.Model)
	}
	// Untouched sections keep their defaults.
	if cfg.Fetch.DailyPeriod != "30d" {
		t.Errorf("daily_period %q, want 30d", cfg.Fetch.DailyPeriod)
	}
}

func TestLoadConfig_InvalidProvider(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: GEMINI
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error for unknown provider")
	}
}

func TestLoadConfig_InvalidTimezone(t *testing.T) {
	path := writeConfig(t, `
session:
  timezone: Mars/OlympusMons
  open_hour: 9
  open_min: 30
  close_hour: 16
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error for bad timezone")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
