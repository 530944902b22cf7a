package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// codeLineBreak splits a code run at a line break so every line becomes its
// own monospace run. A single styled run cannot span a line break and still
// render each line as code.
const codeLineBreak = "</code><br /><code>"

const codeCloseMarker = "</code>"

// Precompiled patterns for the intermediate HTML.
var (
	preOpenPattern   = regexp.MustCompile(`(?i)<pre(\s[^>]*)?>`)
	preClosePattern  = regexp.MustCompile(`(?i)</pre\s*>`)
	codeOpenPattern  = regexp.MustCompile(`(?i)<code(\s[^>]*)?>`)
	codeClosePattern = regexp.MustCompile(`(?i)</code\s*>`)

	// Hard wraps inside raw inline code come out as a break before the newline.
	codeHardWrapPattern = regexp.MustCompile(`(?i)<br\s*/?>\n`)

	// ul, ol, li and del tags; attributes are dropped on rename.
	renamedTagPattern = regexp.MustCompile(`(?i)<(/?)(ul|ol|li|del)(\s[^>]*)?>`)
)

// renamedTags routes list and strike tags past the standard vocabulary to
// the tag engine.
var renamedTags = map[string]string{
	"ul":  UnorderedListTag,
	"ol":  OrderedListTag,
	"li":  ListItemTag,
	"del": StrikeTag,
}

// MarkupPreprocessor defines the contract for intermediate HTML rewriting.
type MarkupPreprocessor interface {
	PreprocessMarkup(ctx context.Context, markup string) string
}

// HTMLMarkupPreprocessor rewrites goldmark HTML for the span walker.
type HTMLMarkupPreprocessor struct{}

// PreprocessMarkup turns preformatted blocks into paragraphs, routes list
// and strike tags to the tag engine, and splits code runs at line breaks.
func (p *HTMLMarkupPreprocessor) PreprocessMarkup(ctx context.Context, markup string) string {
	if ctx.Err() != nil {
		return markup
	}

	markup = replacePreformatted(markup)
	markup = renameEngineTags(markup)
	markup = splitCodeLines(markup)
	return markup
}

// replacePreformatted replaces <pre> blocks with paragraphs. Monospacing of
// their content comes from the nested <code> tags.
func replacePreformatted(markup string) string {
	markup = preOpenPattern.ReplaceAllString(markup, "<p>")
	return preClosePattern.ReplaceAllString(markup, "</p>")
}

// renameEngineTags rewrites ul, ol, li and del to the engine's tag names.
func renameEngineTags(markup string) string {
	return renamedTagPattern.ReplaceAllStringFunc(markup, func(tag string) string {
		m := renamedTagPattern.FindStringSubmatch(tag)
		return "<" + m[1] + renamedTags[strings.ToLower(m[2])] + ">"
	})
}

// splitCodeLines replaces every line break inside a code span with
// close-code, break, open-code. A hard-wrap break already in front of the
// line break is folded into it. Code spans are matched in document order and
// assumed not to nest. Scanning stops at the first open or close marker that
// has no partner; the remainder passes through verbatim.
func splitCodeLines(markup string) string {
	var sb strings.Builder
	sb.Grow(len(markup))

	idx := 0
	for {
		open := codeOpenPattern.FindStringIndex(markup[idx:])
		if open == nil {
			break
		}
		closing := codeClosePattern.FindStringIndex(markup[idx:])
		if closing == nil {
			break
		}
		openAt := idx + open[0]
		closeAt := idx + closing[0]
		end := idx + closing[1]

		if closeAt < openAt {
			// Stray close before the next open.
			sb.WriteString(markup[idx:end])
			idx = end
			continue
		}

		region := codeHardWrapPattern.ReplaceAllString(markup[openAt:closeAt], "\n")
		sb.WriteString(markup[idx:openAt])
		sb.WriteString(strings.ReplaceAll(region, "\n", codeLineBreak))
		sb.WriteString(codeCloseMarker)
		idx = end
	}
	sb.WriteString(markup[idx:])
	return sb.String()
}
