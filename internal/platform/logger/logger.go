package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process logger: JSON for production, text otherwise.
func New(production bool) *slog.Logger {
	return NewWithWriter(os.Stdout, production)
}

// NewWithWriter builds the logger on w so tests can capture output.
func NewWithWriter(w io.Writer, production bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if production {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	opts.Level = slog.LevelDebug
	return slog.New(slog.NewTextHandler(w, opts))
}
