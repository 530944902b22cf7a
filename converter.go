package md2span

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2span/internal/pipeline"
	"github.com/alnah/go-md2span/internal/styled"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.MarkupPreprocessor   = (*pipeline.HTMLMarkupPreprocessor)(nil)
	_ pipeline.SpanConverter        = (*pipeline.HTMLSpanConverter)(nil)
)

// Converter orchestrates the Markdown to styled text pipeline.
// It holds only configuration and is safe for concurrent use; every call
// gets its own buffer and tag engine.
type Converter struct {
	cfg                converterConfig
	preprocessor       pipeline.MarkdownPreprocessor
	htmlConverter      pipeline.HTMLConverter
	markupPreprocessor pipeline.MarkupPreprocessor
	spanConverter      pipeline.SpanConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLayout, WithLogger).
// Returns ErrInvalidLayout if the configured layout is unusable.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cfg: defaultConfig()}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.layout.Validate(); err != nil {
		return nil, err
	}

	// Stages may be injected by tests.
	if c.preprocessor == nil {
		c.preprocessor = &pipeline.CommonMarkPreprocessor{}
	}
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(c.cfg.goldmark)
	}
	if c.markupPreprocessor == nil {
		c.markupPreprocessor = &pipeline.HTMLMarkupPreprocessor{}
	}
	if c.spanConverter == nil {
		c.spanConverter = &pipeline.HTMLSpanConverter{}
	}

	return c, nil
}

// Render converts Markdown to styled text. Leading and trailing whitespace
// produced by block elements is kept.
func (c *Converter) Render(ctx context.Context, markdown string) (*StyledText, error) {
	return c.render(ctx, markdown, false)
}

// RenderTrimmed converts Markdown to styled text and trims surrounding
// whitespace, rebasing every span onto the trimmed text.
func (c *Converter) RenderTrimmed(ctx context.Context, markdown string) (*StyledText, error) {
	return c.render(ctx, markdown, true)
}

// render runs the full pipeline.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) render(ctx context.Context, markdown string, trim bool) (result *StyledText, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to HTML
	markup, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Route engine tags and split code lines
	markup = c.markupPreprocessor.PreprocessMarkup(ctx, markup)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Walk the markup into a buffer
	engine := pipeline.NewTagEngine(c.cfg.layout.toPipeline(), c.cfg.logger)
	buf, err := c.spanConverter.ToSpans(ctx, markup, engine)
	if err != nil {
		return nil, fmt.Errorf("building spans: %w", err)
	}
	if engine.Depth() > 0 || engine.OpenMarkers() > 0 {
		c.cfg.logger.Debug("unclosed tags at end of document",
			"lists", engine.Depth(), "markers", engine.OpenMarkers())
	}

	text, spans := buf.String(), buf.Annotations()
	if trim {
		text, spans = styled.TrimSpace(text, spans)
	}
	return &StyledText{Text: text, Spans: spans}, nil
}
