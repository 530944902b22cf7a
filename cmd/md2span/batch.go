package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2span "github.com/alnah/go-md2span"
	"github.com/alnah/go-md2span/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadMarkdown    = errors.New("failed to read markdown")
	ErrWriteOutput     = errors.New("failed to write span dump")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrAcquire         = errors.New("failed to acquire converter")
)

// renderParams groups settings shared by every file of a batch.
type renderParams struct {
	format string
	trim   bool
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Spans      int
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *renderParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire(ctx)
			if err != nil {
				// No converter for this worker, fail the jobs it would take
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %w", ErrAcquire, err),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile renders a single file and writes its dump atomically.
func convertFile(ctx context.Context, conv Renderer, f FileToConvert, params *renderParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		return result
	}

	st, err := render(ctx, conv, string(content), params.trim)
	if err != nil {
		result.Err = err
		return result
	}
	result.Spans = len(st.Spans)

	var dump bytes.Buffer
	if err := writeDump(&dump, params.format, st); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
		return result
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, dump.Bytes(), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		return result
	}

	return result
}

// convertStream renders Markdown read from r. The dump goes to
// outputPath when set, otherwise to w.
func convertStream(ctx context.Context, pool Pool, r io.Reader, w io.Writer, outputPath string, params *renderParams) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	conv, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}
	defer pool.Release(conv)

	st, err := render(ctx, conv, string(content), params.trim)
	if err != nil {
		return err
	}

	if outputPath == "" {
		if err := writeDump(w, params.format, st); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	var dump bytes.Buffer
	if err := writeDump(&dump, params.format, st); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, dump.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

func render(ctx context.Context, conv Renderer, markdown string, trim bool) (*md2span.StyledText, error) {
	if trim {
		return conv.RenderTrimmed(ctx, markdown)
	}
	return conv.Render(ctx, markdown)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d spans, %v)\n", r.InputPath, r.OutputPath, r.Spans, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
