package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-md2span/internal/styled"
)

// ErrMarkupParse indicates the intermediate HTML could not be tokenized.
var ErrMarkupParse = errors.New("markup parsing failed")

// headingScales are the relative text sizes for h1 through h6.
var headingScales = [6]float64{1.5, 1.4, 1.3, 1.2, 1.1, 1.0}

// SpanConverter abstracts HTML to styled text conversion.
type SpanConverter interface {
	ToSpans(ctx context.Context, markup string, handler TagHandler) (*styled.Buffer, error)
}

// HTMLSpanConverter walks HTML tokens, writing text and the standard
// vocabulary (paragraphs, breaks, headings, emphasis, links, quotes, images)
// into a buffer. Every other tag is passed to the handler.
type HTMLSpanConverter struct{}

// openElement is a standard-vocabulary element awaiting its close tag.
type openElement struct {
	name  string
	start int
	href  string
}

// spanState is the per-conversion state of the walker.
type spanState struct {
	buf       *styled.Buffer
	handler   TagHandler
	open      []openElement
	codeDepth int

	// pendingSpace is a collapsed whitespace run not yet written. It is
	// written before the next inline content and dropped at block edges.
	pendingSpace bool
}

// ToSpans converts the HTML fragment into a fresh buffer.
func (c *HTMLSpanConverter) ToSpans(ctx context.Context, markup string, handler TagHandler) (*styled.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &spanState{buf: &styled.Buffer{}, handler: handler}
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %v", ErrMarkupParse, err)
			}
			return s.buf, nil
		}

		tok := z.Token()
		switch tt {
		case html.TextToken:
			s.text(tok.Data)
		case html.StartTagToken:
			s.start(tok)
		case html.EndTagToken:
			s.end(tok.Data)
		case html.SelfClosingTagToken:
			s.start(tok)
			if !isVoidElement(tok.Data) {
				s.end(tok.Data)
			}
		}
	}
}

// text appends character data. Outside code, whitespace runs collapse to a
// single space that never starts or ends a line and never follows a space.
func (s *spanState) text(data string) {
	if s.codeDepth > 0 {
		s.buf.WriteString(data)
		return
	}

	last, _ := s.buf.LastByte()
	var sb strings.Builder
	for i := 0; i < len(data); i++ {
		ch := data[i]
		if isHTMLSpace(ch) {
			if sb.Len() > 0 || (last != 0 && last != '\n' && last != ' ') {
				s.pendingSpace = true
			}
			continue
		}
		if s.pendingSpace {
			sb.WriteByte(' ')
			s.pendingSpace = false
		}
		sb.WriteByte(ch)
	}
	s.buf.WriteString(sb.String())
}

// flushSpace writes a pending space ahead of inline content.
func (s *spanState) flushSpace() {
	if s.pendingSpace {
		s.buf.WriteString(" ")
		s.pendingSpace = false
	}
}

func (s *spanState) start(tok html.Token) {
	if isBlockElement(tok.Data) {
		s.pendingSpace = false
	} else {
		s.flushSpace()
	}

	switch tok.Data {
	case "p", "div":
		s.paragraphBreak()
	case "br":
		s.buf.WriteString("\n")
	case "hr":
		s.paragraphBreak()
	case "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
		s.paragraphBreak()
		s.push(tok.Data, "")
	case "strong", "b", "em", "i":
		s.push(tok.Data, "")
	case "a":
		s.push(tok.Data, attr(tok, "href"))
	case "img":
		s.image(attr(tok, "src"))
	default:
		if tok.Data == CodeTag {
			s.codeDepth++
		}
		s.handler.HandleTag(true, tok.Data, s.buf)
	}
}

func (s *spanState) end(name string) {
	if isBlockElement(name) {
		s.pendingSpace = false
	}

	switch name {
	case "p", "div":
		s.paragraphBreak()
	case "br", "hr", "img":
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if el, ok := s.pop(name); ok {
			level := int(name[1] - '1')
			s.annotate(el, styled.Annotation{Kind: styled.RelativeSize, Scale: headingScales[level]})
			s.annotate(el, styled.Annotation{Kind: styled.Bold})
		}
		s.paragraphBreak()
	case "blockquote":
		if el, ok := s.pop(name); ok {
			s.annotate(el, styled.Annotation{Kind: styled.Quote})
		}
		s.paragraphBreak()
	case "strong", "b":
		if el, ok := s.pop(name); ok {
			s.annotate(el, styled.Annotation{Kind: styled.Bold})
		}
	case "em", "i":
		if el, ok := s.pop(name); ok {
			s.annotate(el, styled.Annotation{Kind: styled.Italic})
		}
	case "a":
		if el, ok := s.pop(name); ok && el.href != "" {
			s.annotate(el, styled.Annotation{Kind: styled.Link, URL: el.href})
		}
	default:
		if name == CodeTag && s.codeDepth > 0 {
			s.codeDepth--
		}
		s.handler.HandleTag(false, name, s.buf)
	}
}

// paragraphBreak ends the current block with a blank line.
func (s *spanState) paragraphBreak() {
	if s.buf.Len() == 0 || s.buf.EndsWith("\n\n") {
		return
	}
	if s.buf.EndsWith("\n") {
		s.buf.WriteString("\n")
		return
	}
	s.buf.WriteString("\n\n")
}

// image writes an object replacement character tagged with the source.
// Resolving the image is left to the widget.
func (s *spanState) image(src string) {
	start := s.buf.Len()
	s.buf.WriteString(styled.ObjectReplacement)
	s.buf.Annotate(styled.Annotation{Kind: styled.Image, Start: start, End: s.buf.Len(), URL: src})
}

func (s *spanState) push(name, href string) {
	s.open = append(s.open, openElement{name: name, start: s.buf.Len(), href: href})
}

// pop removes the innermost open element with the given name.
func (s *spanState) pop(name string) (openElement, bool) {
	for i := len(s.open) - 1; i >= 0; i-- {
		if s.open[i].name == name {
			el := s.open[i]
			s.open = append(s.open[:i], s.open[i+1:]...)
			return el, true
		}
	}
	return openElement{}, false
}

// annotate attaches a over the element's content, skipping empty content
// and trailing line breaks.
func (s *spanState) annotate(el openElement, a styled.Annotation) {
	end := s.buf.Len()
	text := s.buf.String()
	for end > el.start && text[end-1] == '\n' {
		end--
	}
	if end == el.start {
		return
	}
	a.Start, a.End = el.start, end
	s.buf.Annotate(a)
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isHTMLSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// isBlockElement reports whether a tag starts or ends a line of its own.
func isBlockElement(name string) bool {
	switch name {
	case "p", "div", "br", "hr", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote",
		OrderedListTag, UnorderedListTag, ListItemTag, CenterTag:
		return true
	}
	return false
}

// isVoidElement reports whether the standard vocabulary treats a
// self-closing tag as complete without a close event.
func isVoidElement(name string) bool {
	switch name {
	case "br", "hr", "img":
		return true
	}
	return false
}
