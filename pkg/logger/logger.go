package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON-formatted logger writing to stdout at Info level,
// with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithLevel(slog.LevelInfo, extractors...)
}

// NewWithLevel creates a JSON-formatted logger with an explicit minimum level.
func NewWithLevel(level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
