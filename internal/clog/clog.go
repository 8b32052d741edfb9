// Package clog constructs the structured logger used by the supctl CLI.
package clog

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stderr. Verbose lowers the
// level to debug.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	})
	return slog.New(handler)
}
