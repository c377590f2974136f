package helpers

import (
	"io"
	"log/slog"
	"os"
)

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewLogger returns the JSON stdout logger used by every runtime mode.
// Verbosity lowers the level from Warn in steps of one slog level per count.
func NewLogger(verbosity int, callerTrace bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: callerTrace,
		Level:     LogLevel(verbosity),
	}))
}

// LogLevel maps a -v count onto a slog level.
func LogLevel(verbosity int) slog.Level {
	return slog.LevelWarn - slog.Level(verbosity*4)
}
