package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "TEMP_DIR", "SESSION_MAX_AGE", "YEAR_PIVOT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.MaxAge != time.Hour {
		t.Errorf("MaxAge = %v, want 1h", cfg.MaxAge)
	}
	if cfg.YearPivot != 50 {
		t.Errorf("YearPivot = %d, want 50", cfg.YearPivot)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("SESSION_MAX_AGE", "30m")
	t.Setenv("YEAR_PIVOT", "30")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Addr)
	}
	if cfg.MaxAge != 30*time.Minute {
		t.Errorf("MaxAge = %v, want 30m", cfg.MaxAge)
	}
	if cfg.YearPivot != 30 {
		t.Errorf("YearPivot = %d, want 30", cfg.YearPivot)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "soon")
	t.Setenv("YEAR_PIVOT", "mid-century")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()
	if cfg.MaxAge != time.Hour {
		t.Errorf("MaxAge = %v, want fallback 1h", cfg.MaxAge)
	}
	if cfg.YearPivot != 50 {
		t.Errorf("YearPivot = %d, want fallback 50", cfg.YearPivot)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want fallback info", cfg.LogLevel)
	}
}
