// Package md2span converts Markdown into plain text plus style spans, the
// form consumed by native text widgets that cannot render HTML.
//
// # Quick Start
//
// Create a converter and render Markdown:
//
//	conv, err := md2span.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	st, err := conv.RenderTrimmed(ctx, "* one\n* two")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, sp := range st.Spans {
//	    fmt.Println(sp.Kind, st.Excerpt(sp))
//	}
//
// A Converter holds only configuration and may be shared between
// goroutines. ConverterPool bounds how many conversions run at once.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line endings, Unicode NFC, blank lines)
//  2. Markdown to HTML via Goldmark (GFM, footnotes, hard wraps)
//  3. Markup preprocessing: pre blocks become paragraphs, list and strike
//     tags are renamed for the tag engine, and code runs are split at line
//     breaks so each line gets its own monospace span
//  4. HTML walking: headings, emphasis, links, quotes and images become
//     spans directly; list, code, center and strike tags go to the tag
//     engine, which computes list margins and bullets
//  5. Trimming (RenderTrimmed only): surrounding whitespace is removed and
//     spans are rebased onto the trimmed text
//
// # Spans
//
// Span offsets are byte offsets into StyledText.Text, start inclusive and
// end exclusive. Use StyledText.UTF16 for widgets that index text in UTF-16
// code units. Spans of a list item appear when the item closes, so inner
// items of a nested list precede their parent.
//
// Nested list margins are relative: a widget stacks the leading margins of
// every enclosing item, so deeper bullets carry negative gap widths that
// cancel what outer levels already contribute.
//
// # Error Handling
//
// The package defines sentinel errors for errors.Is checks:
//
//	st, err := conv.Render(ctx, markdown)
//	if errors.Is(err, md2span.ErrSourceConversion) {
//	    // Markdown parser failed; no partial result
//	}
//
// Unknown tags and close tags without a matching open are not errors. They
// are skipped and reported at debug level to the logger set with WithLogger.
package md2span
