package md2span

import (
	"log/slog"

	"github.com/alnah/go-md2span/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	layout   Layout
	logger   *slog.Logger
	goldmark pipeline.GoldmarkOptions
}

// defaultConfig returns the configuration used when no options are given.
func defaultConfig() converterConfig {
	return converterConfig{
		layout:   DefaultLayout(),
		logger:   slog.New(slog.DiscardHandler),
		goldmark: pipeline.DefaultGoldmarkOptions(),
	}
}

// WithLayout sets the list indentation. NewConverter rejects invalid layouts
// with ErrInvalidLayout.
func WithLayout(l Layout) Option {
	return func(c *Converter) {
		c.cfg.layout = l
	}
}

// WithLogger sets the logger receiving diagnostics such as ignored tags.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.cfg.logger = logger
		}
	}
}

// WithHardWraps controls whether a newline inside a paragraph becomes a
// line break (the default) or a space.
func WithHardWraps(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.goldmark.HardWraps = enabled
	}
}

// WithRawHTML controls whether inline HTML in the source, such as
// <center>, reaches the tag engine (the default) or is dropped.
func WithRawHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.goldmark.RawHTML = enabled
	}
}
