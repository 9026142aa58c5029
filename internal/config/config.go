// Package config loads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerlift/statement-converter/internal/parser"
	"github.com/ledgerlift/statement-converter/internal/session"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr      string
	TempDir   string
	MaxAge    time.Duration
	YearPivot int
	LogLevel  slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; missing values fall back to
// defaults that work out of the box.
func Load() *Config {
	// Absence of .env is the normal production case.
	_ = godotenv.Load()

	return &Config{
		Addr:      getString("ADDR", ":8080"),
		TempDir:   getString("TEMP_DIR", ""),
		MaxAge:    getDuration("SESSION_MAX_AGE", session.DefaultMaxAge),
		YearPivot: getInt("YEAR_PIVOT", parser.DefaultYearPivot),
		LogLevel:  getLogLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration setting", "key", key, "value", v)
		return fallback
	}
	return d
}

func getLogLevel(key string, fallback slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv(key)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "":
		return fallback
	default:
		slog.Warn("ignoring invalid log level", "key", key, "value", os.Getenv(key))
		return fallback
	}
}
