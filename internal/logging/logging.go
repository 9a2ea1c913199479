// Package logging configures the process-wide slog logger. All output
// goes to stderr; stdout carries the editor protocol.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs the default logger at the named level. Unrecognized
// level names fall back to info.
func Init(level string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Nop returns a logger that discards everything. Useful in tests.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
