package main

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger returns a text logger on w. Verbose enables debug records
// (ignored tags, unclosed markers); quiet keeps errors only.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printfLogger adapts logger for libraries that take a printf function.
func printfLogger(logger *slog.Logger) func(string, ...any) {
	return func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}
}
