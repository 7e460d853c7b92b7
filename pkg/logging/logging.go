// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel names the environment variable holding the default log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel maps debug, info, warn/warning and error to a slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv returns the level from LOG_LEVEL, or fallback when unset.
func LevelFromEnv(fallback string) slog.Level {
	if v := os.Getenv(EnvLogLevel); v != "" {
		return ParseLevel(v)
	}
	return ParseLevel(fallback)
}

// NewLogger returns a text or JSON logger writing to w.
func NewLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetDefaultLogger installs a stderr logger for command line use.
func SetDefaultLogger(level string, json bool) {
	slog.SetDefault(NewLogger(os.Stderr, ParseLevel(level), json))
}

// SetDefaultStructuredLogger installs a JSON stderr logger tagged with the
// service name and version. The level comes from LOG_LEVEL.
func SetDefaultStructuredLogger(name, version string) {
	logger := NewLogger(os.Stderr, LevelFromEnv(slog.LevelInfo.String()), true).
		With("name", name, "version", version)
	slog.SetDefault(logger)
}
