package pipeline

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-md2span/internal/styled"
)

// Default list layout, in pixels.
const (
	DefaultIndent       = 10
	DefaultBulletRadius = 3
)

// Layout holds the indentation constants used for list items.
type Layout struct {
	Indent       int // base indent unit; also the bullet gap width
	BulletRadius int // radius of the bullet glyph
}

// DefaultLayout returns the stock list layout.
func DefaultLayout() Layout {
	return Layout{Indent: DefaultIndent, BulletRadius: DefaultBulletRadius}
}

// itemIndent is the indent added per nesting level.
func (l Layout) itemIndent() int {
	return 2 * l.Indent
}

// bulletLeadingMargin is the leading margin a bullet glyph occupies when it
// is first in a line: the glyph diameter plus its gap.
func (l Layout) bulletLeadingMargin() int {
	return 2*l.BulletRadius + l.Indent
}

// TagHandler receives every tag event outside the standard vocabulary,
// in document order.
type TagHandler interface {
	HandleTag(opening bool, tag string, buf *styled.Buffer)
}

// tagKind is the closed set of tags the engine understands.
type tagKind int

const (
	tagUnknown tagKind = iota
	tagOrderedList
	tagUnorderedList
	tagListItem
	tagCode
	tagCenter
	tagStrike
)

// Tag names routed to the engine.
const (
	OrderedListTag   = "orderedlist"
	UnorderedListTag = "unorderedlist"
	ListItemTag      = "listitem"
	CodeTag          = "code"
	CenterTag        = "center"
	StrikeTag        = "strike"
	StrikeShortTag   = "s"
)

func lookupTag(name string) tagKind {
	switch strings.ToLower(name) {
	case OrderedListTag:
		return tagOrderedList
	case UnorderedListTag:
		return tagUnorderedList
	case ListItemTag:
		return tagListItem
	case CodeTag:
		return tagCode
	case CenterTag:
		return tagCenter
	case StrikeTag, StrikeShortTag:
		return tagStrike
	default:
		return tagUnknown
	}
}

func (k tagKind) String() string {
	switch k {
	case tagOrderedList:
		return OrderedListTag
	case tagUnorderedList:
		return UnorderedListTag
	case tagListItem:
		return ListItemTag
	case tagCode:
		return CodeTag
	case tagCenter:
		return CenterTag
	case tagStrike:
		return StrikeTag
	default:
		return "unknown"
	}
}

// listVariant distinguishes numbered from bulleted lists.
type listVariant int

const (
	unorderedList listVariant = iota
	orderedList
)

// listContext is the live state of one open list.
type listContext struct {
	variant     listVariant
	nextOrdinal int
	depth       int
}

// openMarker remembers where a tag opened. Offsets stay put while the
// buffer grows after them.
type openMarker struct {
	kind   tagKind
	offset int
	list   *listContext // set for list items only
}

// TagEngine converts list, code, center and strike tag events into
// annotations. It is single-use: create one per conversion.
type TagEngine struct {
	indent       int
	itemIndent   int
	bulletMargin int
	logger       *slog.Logger

	lists   []*listContext
	markers []openMarker
}

// NewTagEngine creates an engine for one conversion.
// A nil logger discards diagnostics.
func NewTagEngine(layout Layout, logger *slog.Logger) *TagEngine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TagEngine{
		indent:       layout.Indent,
		itemIndent:   layout.itemIndent(),
		bulletMargin: layout.bulletLeadingMargin(),
		logger:       logger,
	}
}

// Compile-time interface check.
var _ TagHandler = (*TagEngine)(nil)

// HandleTag processes one open or close event. Unknown tags and close
// events without a matching open are ignored.
func (e *TagEngine) HandleTag(opening bool, tag string, buf *styled.Buffer) {
	kind := lookupTag(tag)
	switch kind {
	case tagOrderedList, tagUnorderedList:
		if opening {
			e.openList(kind)
		} else {
			e.closeList(kind)
		}
	case tagListItem:
		if opening {
			e.openItem(buf)
		} else {
			e.closeItem(buf)
		}
	case tagCode, tagCenter, tagStrike:
		if opening {
			e.mark(kind, buf.Len(), nil)
		} else {
			e.closeStyle(kind, buf)
		}
	default:
		e.logger.Debug("ignoring unsupported tag", "tag", tag, "opening", opening)
	}
}

// Depth returns the number of currently open lists.
func (e *TagEngine) Depth() int {
	return len(e.lists)
}

// OpenMarkers returns the number of tags still waiting for their close.
func (e *TagEngine) OpenMarkers() int {
	return len(e.markers)
}

func (e *TagEngine) openList(kind tagKind) {
	ctx := &listContext{variant: unorderedList, depth: len(e.lists) + 1}
	if kind == tagOrderedList {
		ctx.variant = orderedList
		ctx.nextOrdinal = 1
	}
	e.lists = append(e.lists, ctx)
}

func (e *TagEngine) closeList(kind tagKind) {
	if len(e.lists) == 0 {
		e.logger.Debug("ignoring list close without open list", "tag", kind.String())
		return
	}
	e.lists = e.lists[:len(e.lists)-1]
}

func (e *TagEngine) openItem(buf *styled.Buffer) {
	if len(e.lists) == 0 {
		e.logger.Debug("ignoring list item outside of a list")
		return
	}
	list := e.lists[len(e.lists)-1]

	ensureNewline(buf)
	e.mark(tagListItem, buf.Len(), list)

	if list.variant == orderedList {
		buf.WriteString(strconv.Itoa(list.nextOrdinal) + ". ")
		list.nextOrdinal++
	}
}

func (e *TagEngine) closeItem(buf *styled.Buffer) {
	if len(e.lists) == 0 {
		e.logger.Debug("ignoring list item close outside of a list")
		return
	}
	idx := e.lastMarker(tagListItem)
	if idx < 0 {
		e.logger.Debug("ignoring list item close without open item")
		return
	}

	ensureNewline(buf)
	depth := len(e.lists)
	list := e.lists[depth-1]
	marker := e.markers[idx]
	if marker.list != list {
		e.logger.Debug("list item closed inside a nested list", "openDepth", marker.list.depth, "closeDepth", depth)
	}
	start := marker.offset
	e.removeMarker(idx)

	end := buf.Len()
	if start == end {
		return
	}
	for _, a := range e.itemAnnotations(list.variant, depth) {
		a.Start, a.End = start, end
		buf.Annotate(a)
	}
}

// itemAnnotations computes the margins for a list item at the given depth.
// Nested bullets and leading margins accumulate in the renderer, so deeper
// levels subtract what the enclosing levels already contribute.
func (e *TagEngine) itemAnnotations(variant listVariant, depth int) []styled.Annotation {
	if variant == orderedList {
		margin := e.itemIndent * (depth - 1)
		if depth > 2 {
			margin -= (depth - 2) * e.itemIndent
		}
		return []styled.Annotation{{Kind: styled.LeadingMargin, Margin: margin}}
	}

	bullet := e.indent
	if depth > 1 {
		bullet = e.indent - e.bulletMargin
		if depth > 2 {
			bullet -= (depth - 2) * e.itemIndent
		}
	}
	return []styled.Annotation{
		{Kind: styled.LeadingMargin, Margin: e.itemIndent * (depth - 1)},
		{Kind: styled.Bullet, Margin: bullet},
	}
}

func (e *TagEngine) closeStyle(kind tagKind, buf *styled.Buffer) {
	idx := e.lastMarker(kind)
	if idx < 0 {
		e.logger.Debug("ignoring close without open tag", "tag", kind.String())
		return
	}
	start := e.markers[idx].offset
	e.removeMarker(idx)

	end := buf.Len()
	if start == end {
		return
	}

	var ann styled.Annotation
	switch kind {
	case tagCode:
		ann.Kind = styled.Monospace
	case tagStrike:
		ann.Kind = styled.Strikethrough
	case tagCenter:
		// Paragraph styles only apply to whole lines, terminator included.
		ensureNewline(buf)
		end = buf.Len()
		ann.Kind = styled.CenterAlign
	default:
		panic(fmt.Sprintf("pipeline: closeStyle called for %s", kind))
	}
	ann.Start, ann.End = start, end
	buf.Annotate(ann)
}

func (e *TagEngine) mark(kind tagKind, offset int, list *listContext) {
	e.markers = append(e.markers, openMarker{kind: kind, offset: offset, list: list})
}

// lastMarker returns the index of the most recently placed open marker of
// the given kind, or -1.
func (e *TagEngine) lastMarker(kind tagKind) int {
	for i := len(e.markers) - 1; i >= 0; i-- {
		if e.markers[i].kind == kind {
			return i
		}
	}
	return -1
}

func (e *TagEngine) removeMarker(idx int) {
	e.markers = append(e.markers[:idx], e.markers[idx+1:]...)
}

// ensureNewline terminates the current line unless the buffer is empty or
// already ends with one.
func ensureNewline(buf *styled.Buffer) {
	if last, ok := buf.LastByte(); ok && last != '\n' {
		buf.WriteString("\n")
	}
}
