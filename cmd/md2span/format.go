package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	md2span "github.com/alnah/go-md2span"
	"github.com/alnah/go-md2span/internal/config"
	"github.com/alnah/go-md2span/internal/yamlutil"
)

// ErrInvalidFormat indicates an unknown dump format.
var ErrInvalidFormat = errors.New("invalid output format")

// availableFormats lists the accepted --format values.
var availableFormats = []string{config.FormatText, config.FormatYAML}

// Column widths of the text dump, in terminal cells.
const (
	kindColumn    = 14 // "leading-margin"
	rangeColumn   = 11
	payloadColumn = 28
	excerptColumn = 40
)

const ellipsis = "…"

// validateFormat checks that format is one of availableFormats.
func validateFormat(format string) error {
	for _, f := range availableFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}

// dumpExtension returns the file suffix for a dump format.
func dumpExtension(format string) string {
	if format == config.FormatYAML {
		return ".spans.yaml"
	}
	return ".spans.txt"
}

// writeDump writes st to w in the given format.
func writeDump(w io.Writer, format string, st *md2span.StyledText) error {
	if format == config.FormatYAML {
		return yamlutil.Encode(w, st)
	}
	return writeText(w, st)
}

// writeText writes the text followed by one aligned row per span:
// kind, byte range, payload and a one-line excerpt of the covered text.
func writeText(w io.Writer, st *md2span.StyledText) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, st.Text)
	fmt.Fprintln(bw, strings.Repeat("-", kindColumn+rangeColumn+payloadColumn+excerptColumn+3))
	for _, sp := range st.Spans {
		row := cell(string(sp.Kind), kindColumn) + " " +
			cell(fmt.Sprintf("[%d,%d)", sp.Start, sp.End), rangeColumn) + " " +
			cell(spanPayload(sp), payloadColumn) + " " +
			runewidth.Truncate(oneLine(st.Excerpt(sp)), excerptColumn, ellipsis)
		fmt.Fprintln(bw, strings.TrimRight(row, " "))
	}
	return bw.Flush()
}

// cell truncates s to width cells and pads it on the right.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}

// spanPayload formats the kind-specific field of a span.
func spanPayload(sp md2span.Span) string {
	switch sp.Kind {
	case md2span.LeadingMargin, md2span.Bullet:
		return "margin=" + strconv.Itoa(sp.Margin)
	case md2span.Link, md2span.Image:
		return "url=" + sp.URL
	case md2span.RelativeSize:
		return "scale=" + strconv.FormatFloat(sp.Scale, 'g', -1, 64)
	default:
		return ""
	}
}

// oneLine makes line breaks visible so an excerpt fits in one row.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
