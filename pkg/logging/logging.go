// Package logging builds the diagnostic logger used across the CLI.
//
// Diagnostics go to stderr through a tint slog handler and are exposed as a
// logr.Logger, so stdout only ever carries the region table and console lines.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/lmittmann/tint"
)

// NewLogger returns a logger writing to stderr. verbosity 0 logs info and
// above; each step beyond that enables one more logr V-level.
func NewLogger(verbosity int) logr.Logger {
	return NewLoggerWithWriter(os.Stderr, verbosity)
}

// NewLoggerWithWriter is NewLogger with an explicit destination.
func NewLoggerWithWriter(w io.Writer, verbosity int) logr.Logger {
	if verbosity < 0 {
		verbosity = 0
	}
	handler := tint.NewHandler(w, &tint.Options{
		// logr V(n) maps to slog level -n
		Level:      slog.Level(-verbosity),
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	})
	return logr.FromSlogHandler(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
