package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2span/internal/config"
)

// stdinArg selects standard input as the Markdown source.
const stdinArg = "-"

// stdinBaseName names the dump written for stdin into a directory.
const stdinBaseName = "stdin"

// ErrStdinWithFiles indicates "-" was combined with file arguments.
var ErrStdinWithFiles = errors.New(`"-" cannot be combined with other inputs`)

// run orchestrates one invocation: config, pool, then stdin or batch mode.
func run(ctx context.Context, args []string, flags *cliFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := env.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if flags.common.config != "" {
		var err error
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	if err := validateFormat(cfg.Output.Format); err != nil {
		return err
	}

	pool, err := newConverterPool(flags.workers, cfg, env.Logger)
	if err != nil {
		return fmt.Errorf("creating converters: %w", err)
	}
	defer func() { _ = pool.Close() }()
	env.Logger.Debug("converter pool ready", "size", pool.Size())

	return runWithPool(ctx, args, flags, cfg, pool, env)
}

// runWithPool renders every input with converters from pool.
func runWithPool(ctx context.Context, args []string, flags *cliFlags, cfg *config.Config, pool Pool, env *Environment) error {
	params := &renderParams{
		format: cfg.Output.Format,
		trim:   cfg.Render.Trim,
	}

	inputs, useStdin, err := resolveInputs(args, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	if useStdin {
		if len(args) == 0 && isTerminal(env.Stdin) {
			return ErrNoInput
		}
		outPath, err := streamOutputPath(outputDir, params.format)
		if err != nil {
			return err
		}
		return convertStream(ctx, pool, env.Stdin, env.Stdout, outPath, params)
	}

	// Discover files to convert
	var files []FileToConvert
	for _, input := range inputs {
		found, err := discoverFiles(input, outputDir, params.format)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}
	env.Logger.Debug("discovered files", "count", len(files), "workers", min(pool.Size(), len(files)))

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}

	// Layout flags
	if flags.layout.indent != 0 {
		cfg.Layout.Indent = flags.layout.indent
	}
	if flags.layout.bulletRadius != bulletRadiusSentinel {
		cfg.Layout.BulletRadius = flags.layout.bulletRadius
	}

	// Render toggles only switch features off
	if flags.render.noTrim {
		cfg.Render.Trim = false
	}
	if flags.render.noHardWraps {
		cfg.Render.HardWraps = false
	}
	if flags.render.noRawHTML {
		cfg.Render.RawHTML = false
	}
}

// resolveInputs returns the input paths, or reports that stdin is the
// source. Priority: arguments > config input.defaultDir > stdin.
func resolveInputs(args []string, cfg *config.Config) ([]string, bool, error) {
	for _, a := range args {
		if a == stdinArg {
			if len(args) > 1 {
				return nil, false, ErrStdinWithFiles
			}
			return nil, true, nil
		}
	}
	if len(args) > 0 {
		return args, false, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, false, nil
	}
	return nil, true, nil
}

// resolveOutputDir picks the output location: flag > config > none.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// streamOutputPath resolves where a stdin dump goes. An empty output
// means stdout; an existing directory receives "stdin" plus the extension.
func streamOutputPath(output, format string) (string, error) {
	if output == "" {
		return "", nil
	}
	info, err := os.Stat(output)
	if err == nil && info.IsDir() {
		return filepath.Join(output, stdinBaseName+dumpExtension(format)), nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	return output, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
