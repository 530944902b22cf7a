package md2span

import (
	"fmt"

	"github.com/alnah/go-md2span/internal/pipeline"
	"github.com/alnah/go-md2span/internal/styled"
)

// Kind identifies the style a span applies.
type Kind = styled.Kind

// Span kinds.
const (
	LeadingMargin = styled.LeadingMargin // Margin: indent of every line
	Bullet        = styled.Bullet        // Margin: gap between bullet and text
	Monospace     = styled.Monospace
	CenterAlign   = styled.CenterAlign
	Strikethrough = styled.Strikethrough
	Bold          = styled.Bold
	Italic        = styled.Italic
	Link          = styled.Link         // URL: link target
	Quote         = styled.Quote        // block quote stripe
	RelativeSize  = styled.RelativeSize // Scale: heading size factor
	Image         = styled.Image        // URL: image source
)

// ObjectReplacement is the character standing in for an image in the text.
const ObjectReplacement = styled.ObjectReplacement

// Span is a style applied to the byte range [Start, End) of the text.
type Span = styled.Annotation

// Layout bounds, in pixels.
const (
	DefaultIndent       = pipeline.DefaultIndent
	DefaultBulletRadius = pipeline.DefaultBulletRadius
	MaxIndent           = 200
	MaxBulletRadius     = 50
)

// Layout configures list indentation. Values are in the widget's pixel unit.
type Layout struct {
	Indent       int // base indent; nested items move by twice this
	BulletRadius int // radius of the bullet glyph
}

// DefaultLayout returns the layout used when none is configured.
func DefaultLayout() Layout {
	return Layout{Indent: DefaultIndent, BulletRadius: DefaultBulletRadius}
}

// Validate checks that the layout produces usable margins.
func (l Layout) Validate() error {
	if l.Indent <= 0 || l.Indent > MaxIndent {
		return fmt.Errorf("%w: indent %d (must be between 1 and %d)", ErrInvalidLayout, l.Indent, MaxIndent)
	}
	if l.BulletRadius < 0 || l.BulletRadius > MaxBulletRadius {
		return fmt.Errorf("%w: bullet radius %d (must be between 0 and %d)", ErrInvalidLayout, l.BulletRadius, MaxBulletRadius)
	}
	return nil
}

// toPipeline converts the public Layout to the engine's layout.
func (l Layout) toPipeline() pipeline.Layout {
	return pipeline.Layout{Indent: l.Indent, BulletRadius: l.BulletRadius}
}

// StyledText is rendered text plus the spans styling it.
// Span offsets are byte offsets into Text.
type StyledText struct {
	Text  string `yaml:"text"`
	Spans []Span `yaml:"spans"`
}

// SpansOfKind returns the spans of the given kind, in emission order.
func (s *StyledText) SpansOfKind(kind Kind) []Span {
	var out []Span
	for _, sp := range s.Spans {
		if sp.Kind == kind {
			out = append(out, sp)
		}
	}
	return out
}

// Excerpt returns the text covered by sp. Out of range offsets are clamped.
func (s *StyledText) Excerpt(sp Span) string {
	start := min(max(sp.Start, 0), len(s.Text))
	end := min(max(sp.End, start), len(s.Text))
	return s.Text[start:end]
}

// UTF16 returns a copy whose span offsets count UTF-16 code units, the
// unit used by widgets that index text that way. The text is unchanged.
func (s *StyledText) UTF16() *StyledText {
	return &StyledText{Text: s.Text, Spans: styled.ToUTF16(s.Text, s.Spans)}
}
