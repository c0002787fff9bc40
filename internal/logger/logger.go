// Package logger provides structured logging configuration using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger configuration.
type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
	Output io.Writer
}

// NewLogger creates a configured slog.Logger.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
		// Add a source location for debug level
		AddSource: cfg.Level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// LookupLevel maps DEBUG, INFO, WARN/WARNING and ERROR (any case) to a slog level.
// ok is false for any other value.
func LookupLevel(value string) (level slog.Level, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// ParseLevel is LookupLevel with fallback for unknown values.
func ParseLevel(value string, fallback slog.Level) slog.Level {
	if level, ok := LookupLevel(value); ok {
		return level
	}
	return fallback
}

// DefaultConfig returns the default logger configuration.
// GOSPIN_LOG_LEVEL sets the level (default INFO) and GOSPIN_LOG_FORMAT=json switches the handler.
func DefaultConfig() Config {
	format := "text"
	if strings.EqualFold(os.Getenv("GOSPIN_LOG_FORMAT"), "json") {
		format = "json"
	}

	return Config{
		Level:  ParseLevel(os.Getenv("GOSPIN_LOG_LEVEL"), slog.LevelInfo),
		Format: format,
	}
}
