package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrSourceConversion indicates the Markdown to HTML step failed.
var ErrSourceConversion = errors.New("markdown conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkOptions tunes the goldmark renderer.
type GoldmarkOptions struct {
	HardWraps bool // treat newlines inside paragraphs as <br>
	RawHTML   bool // pass inline HTML such as <center> through
}

// DefaultGoldmarkOptions returns the options used by the converter.
func DefaultGoldmarkOptions() GoldmarkOptions {
	return GoldmarkOptions{HardWraps: true, RawHTML: true}
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
func NewGoldmarkConverter(opts GoldmarkOptions) *GoldmarkConverter {
	rendererOpts := []renderer.Option{
		html.WithXHTML(), // Self-closing tags
	}
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.RawHTML {
		// Output is plain text plus spans, never executed as HTML.
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrSourceConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
