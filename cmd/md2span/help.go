package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2span [flags] [file|dir ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown to text with style spans.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file|dir   Markdown file or directory; \"-\" or none reads stdin")
	fmt.Fprintln(w, "             (config input.defaultDir is used when set)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default: stdout for stdin)")
	fmt.Fprintln(w, "  -f, --format <s>          Dump format: text, yaml")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "      --indent <n>          List indent unit in pixels (default: 10)")
	fmt.Fprintln(w, "      --bullet-radius <n>   Bullet glyph radius in pixels (default: 3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --no-trim             Keep surrounding whitespace")
	fmt.Fprintln(w, "      --no-hard-wraps       Treat newlines in paragraphs as spaces")
	fmt.Fprintln(w, "      --no-raw-html         Omit inline HTML such as <center>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log pipeline diagnostics")
	fmt.Fprintln(w, "      --version             Show version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 general, 2 usage/config, 3 I/O")
}
