package keysweep

import (
	"log/slog"
	"os"
)

// NewTextLogger creates a logger that writes human-readable text logs to
// stderr at the given minimum level.
func NewTextLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a logger that discards all output. Library types fall
// back to it when no logger is configured.
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}
