package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// bulletRadiusSentinel detects if --bullet-radius was explicitly set.
// Since 0 is a valid radius (no glyph), we use an out-of-range sentinel.
const bulletRadiusSentinel = -1

// commonFlags holds flags that control diagnostics.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// layoutFlags holds list layout flags. Zero or sentinel values mean
// "keep the config value".
type layoutFlags struct {
	indent       int
	bulletRadius int
}

// renderFlags holds pipeline toggles.
type renderFlags struct {
	noTrim      bool
	noHardWraps bool
	noRawHTML   bool
}

// cliFlags holds all flags for md2span.
type cliFlags struct {
	common  commonFlags
	output  string
	format  string
	workers int
	layout  layoutFlags
	render  renderFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline diagnostics")
	fs.BoolVar(&f.version, "version", false, "show version and exit")
}

// addLayoutFlags adds list layout flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.IntVar(&f.indent, "indent", 0, "list indent unit in pixels (default: 10)")
	fs.IntVar(&f.bulletRadius, "bullet-radius", bulletRadiusSentinel, "bullet glyph radius in pixels (default: 3)")
}

// addRenderFlags adds pipeline toggles to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.noTrim, "no-trim", false, "keep surrounding whitespace")
	fs.BoolVar(&f.noHardWraps, "no-hard-wraps", false, "treat newlines in paragraphs as spaces")
	fs.BoolVar(&f.noRawHTML, "no-raw-html", false, "omit inline HTML such as <center>")
}

// parseFlags parses command line flags and returns positional args.
// Usage goes to w on -h and on parse errors.
func parseFlags(args []string, w io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2span", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &cliFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "dump format: text, yaml")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
