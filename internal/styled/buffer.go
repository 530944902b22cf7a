// Package styled holds the text buffer and style annotations produced by the
// rendering pipeline.
//
// Offsets are byte offsets into the UTF-8 text. Annotations are
// exclusive-exclusive: the buffer only ever grows at its end, so a finalized
// range never changes after it is attached.
package styled

import (
	"fmt"
	"strings"
)

// Kind identifies the style an annotation applies.
type Kind string

// Kinds emitted by the tag engine.
const (
	LeadingMargin Kind = "leading-margin"
	Bullet        Kind = "bullet"
	Monospace     Kind = "monospace"
	CenterAlign   Kind = "center-align"
	Strikethrough Kind = "strikethrough"
)

// Kinds emitted by the standard vocabulary walker.
const (
	Bold         Kind = "bold"
	Italic       Kind = "italic"
	Link         Kind = "link"
	Quote        Kind = "quote"
	RelativeSize Kind = "relative-size"
	Image        Kind = "image"
)

// ObjectReplacement stands in for an embedded image in the text.
const ObjectReplacement = "￼"

// Annotation is a style applied to the byte range [Start, End).
// Margin is set for LeadingMargin (indent) and Bullet (gap width),
// URL for Link and Image, Scale for RelativeSize.
type Annotation struct {
	Kind   Kind    `yaml:"kind"`
	Start  int     `yaml:"start"`
	End    int     `yaml:"end"`
	Margin int     `yaml:"margin,omitempty"`
	URL    string  `yaml:"url,omitempty"`
	Scale  float64 `yaml:"scale,omitempty"`
}

// Len returns the length of the annotated range in bytes.
func (a Annotation) Len() int {
	return a.End - a.Start
}

// Buffer is an append-only text buffer collecting annotations.
// The zero value is ready to use. A Buffer must not be shared between
// concurrent conversions.
type Buffer struct {
	text        strings.Builder
	annotations []Annotation
}

// Len returns the current length of the text in bytes.
func (b *Buffer) Len() int {
	return b.text.Len()
}

// String returns the text written so far.
func (b *Buffer) String() string {
	return b.text.String()
}

// WriteString appends s to the text.
func (b *Buffer) WriteString(s string) {
	b.text.WriteString(s)
}

// EndsWith reports whether the text ends with suffix.
func (b *Buffer) EndsWith(suffix string) bool {
	return strings.HasSuffix(b.text.String(), suffix)
}

// LastByte returns the final byte of the text, or false when it is empty.
func (b *Buffer) LastByte() (byte, bool) {
	s := b.text.String()
	if s == "" {
		return 0, false
	}
	return s[len(s)-1], true
}

// Annotate attaches a finalized annotation.
// Panics if the range is inverted or outside the text (programmer error).
func (b *Buffer) Annotate(a Annotation) {
	if a.Start < 0 || a.Start > a.End || a.End > b.Len() {
		panic(fmt.Sprintf("styled: annotation %s [%d,%d) outside text of length %d", a.Kind, a.Start, a.End, b.Len()))
	}
	b.annotations = append(b.annotations, a)
}

// Annotations returns a copy of the attached annotations in attach order.
func (b *Buffer) Annotations() []Annotation {
	out := make([]Annotation, len(b.annotations))
	copy(out, b.annotations)
	return out
}
