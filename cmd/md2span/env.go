package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alnah/go-md2span/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, logging, and configuration.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config // Loaded once, shared across the batch
}

// DefaultEnv returns the production environment. The logger discards
// until main installs one from the flags.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: slog.New(slog.DiscardHandler),
		Config: config.DefaultConfig(),
	}
}
