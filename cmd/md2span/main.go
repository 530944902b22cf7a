package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	md2span "github.com/alnah/go-md2span"
	"github.com/alnah/go-md2span/internal/config"
	"github.com/alnah/go-md2span/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain parses flags, runs the conversion and returns the exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if flags.common.version {
		fmt.Fprintf(env.Stdout, "md2span %s\n", Version)
		return ExitSuccess
	}

	env.Logger = newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)

	// Configure GOMAXPROCS before the pool is sized.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(printfLogger(env.Logger)))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Searched)
	case errors.Is(err, md2span.ErrInvalidLayout):
		return hints.ForLayout()
	case errors.Is(err, ErrInvalidFormat):
		return hints.ForFormat(availableFormats)
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
