package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md2span "github.com/alnah/go-md2span"
)

// ---------------------------------------------------------------------------
// TestConvertBatch - Concurrent file conversion
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("empty file list", func(t *testing.T) {
		t.Parallel()

		if got := convertBatch(context.Background(), &mockPool{}, nil, &renderParams{}); got != nil {
			t.Errorf("results = %v, want nil", got)
		}
	})

	t.Run("writes every dump and keeps order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var files []FileToConvert
		for i := range 5 {
			name := fmt.Sprintf("doc%d", i)
			files = append(files, FileToConvert{
				InputPath:  writeFile(t, dir, name+".md", "content "+name),
				OutputPath: filepath.Join(dir, "out", name+".spans.txt"),
			})
		}

		pool := &mockPool{renderer: &mockRenderer{}, size: 3}
		results := convertBatch(context.Background(), pool, files, &renderParams{format: "text", trim: true})

		if len(results) != len(files) {
			t.Fatalf("got %d results, want %d", len(results), len(files))
		}
		for i, r := range results {
			if r.Err != nil {
				t.Fatalf("result %d: unexpected error: %v", i, r.Err)
			}
			if r.InputPath != files[i].InputPath {
				t.Errorf("result %d input = %q, want %q", i, r.InputPath, files[i].InputPath)
			}
			got := readFile(t, r.OutputPath)
			if !strings.HasPrefix(got, fmt.Sprintf("content doc%d\n", i)) {
				t.Errorf("dump %d = %q", i, got)
			}
		}
		if pool.acquired != pool.released {
			t.Errorf("acquired %d, released %d", pool.acquired, pool.released)
		}
		if pool.acquired > 3 {
			t.Errorf("acquired %d converters, want at most pool size 3", pool.acquired)
		}
	})

	t.Run("acquire failure fails every file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := []FileToConvert{
			{InputPath: writeFile(t, dir, "a.md", "a"), OutputPath: filepath.Join(dir, "a.spans.txt")},
			{InputPath: writeFile(t, dir, "b.md", "b"), OutputPath: filepath.Join(dir, "b.spans.txt")},
		}
		pool := &mockPool{acquireErr: md2span.ErrPoolClosed, size: 2}

		for _, r := range convertBatch(context.Background(), pool, files, &renderParams{format: "text"}) {
			if !errors.Is(r.Err, ErrAcquire) || !errors.Is(r.Err, md2span.ErrPoolClosed) {
				t.Errorf("%s: error = %v, want ErrAcquire wrapping ErrPoolClosed", r.InputPath, r.Err)
			}
		}
	})

	t.Run("cancelled context skips files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		files := []FileToConvert{
			{InputPath: writeFile(t, dir, "a.md", "a"), OutputPath: filepath.Join(dir, "a.spans.txt")},
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := convertBatch(ctx, &mockPool{renderer: &mockRenderer{}}, files, &renderParams{format: "text"})
		if !errors.Is(results[0].Err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", results[0].Err)
		}
		if _, err := os.Stat(files[0].OutputPath); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("output written despite cancellation: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertFile - Single file conversion
// ---------------------------------------------------------------------------

func TestConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("trim selects RenderTrimmed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		f := FileToConvert{InputPath: writeFile(t, dir, "a.md", "a"), OutputPath: filepath.Join(dir, "a.spans.txt")}

		for _, trim := range []bool{true, false} {
			r := &mockRenderer{}
			if res := convertFile(context.Background(), r, f, &renderParams{format: "text", trim: trim}); res.Err != nil {
				t.Fatalf("unexpected error: %v", res.Err)
			}
			if len(r.trimmed) != 1 || r.trimmed[0] != trim {
				t.Errorf("trim=%v: calls = %v", trim, r.trimmed)
			}
		}
	})

	t.Run("records span count", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		f := FileToConvert{InputPath: writeFile(t, dir, "a.md", "a"), OutputPath: filepath.Join(dir, "a.spans.yaml")}
		r := &mockRenderer{result: &md2span.StyledText{
			Text:  "ab",
			Spans: []md2span.Span{{Kind: md2span.Bold, Start: 0, End: 1}, {Kind: md2span.Italic, Start: 1, End: 2}},
		}}

		res := convertFile(context.Background(), r, f, &renderParams{format: "yaml"})
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		if res.Spans != 2 {
			t.Errorf("Spans = %d, want 2", res.Spans)
		}
		if !strings.Contains(readFile(t, f.OutputPath), "kind: italic") {
			t.Error("yaml dump missing italic span")
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		f := FileToConvert{InputPath: filepath.Join(dir, "gone.md"), OutputPath: filepath.Join(dir, "gone.spans.txt")}

		res := convertFile(context.Background(), &mockRenderer{}, f, &renderParams{format: "text"})
		if !errors.Is(res.Err, ErrReadMarkdown) || !errors.Is(res.Err, os.ErrNotExist) {
			t.Errorf("error = %v, want ErrReadMarkdown wrapping os.ErrNotExist", res.Err)
		}
	})

	t.Run("render error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		f := FileToConvert{InputPath: writeFile(t, dir, "a.md", "a"), OutputPath: filepath.Join(dir, "a.spans.txt")}
		r := &mockRenderer{err: md2span.ErrSourceConversion}

		res := convertFile(context.Background(), r, f, &renderParams{format: "text"})
		if !errors.Is(res.Err, md2span.ErrSourceConversion) {
			t.Errorf("error = %v, want ErrSourceConversion", res.Err)
		}
		if _, err := os.Stat(f.OutputPath); !errors.Is(err, os.ErrNotExist) {
			t.Error("output written for failed render")
		}
	})

	t.Run("output directory blocked by file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := writeFile(t, dir, "out", "not a directory")
		f := FileToConvert{InputPath: writeFile(t, dir, "a.md", "a"), OutputPath: filepath.Join(blocker, "a.spans.txt")}

		res := convertFile(context.Background(), &mockRenderer{}, f, &renderParams{format: "text"})
		if !errors.Is(res.Err, ErrCreateOutputDir) {
			t.Errorf("error = %v, want ErrCreateOutputDir", res.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertStream - Stdin conversion
// ---------------------------------------------------------------------------

func TestConvertStream(t *testing.T) {
	t.Parallel()

	t.Run("to writer", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		pool := &mockPool{renderer: &mockRenderer{}}
		err := convertStream(context.Background(), pool, strings.NewReader("piped"), &out, "", &renderParams{format: "text"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(out.String(), "piped\n") {
			t.Errorf("output = %q", out.String())
		}
		if pool.released != 1 {
			t.Errorf("released = %d, want 1", pool.released)
		}
	})

	t.Run("to file", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		path := filepath.Join(t.TempDir(), "nested", "stdin.spans.yaml")
		pool := &mockPool{renderer: &mockRenderer{}}
		err := convertStream(context.Background(), pool, strings.NewReader("piped"), &out, path, &renderParams{format: "yaml"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("writer received %q, want nothing", out.String())
		}
		if !strings.Contains(readFile(t, path), "text: piped") {
			t.Error("yaml dump missing text")
		}
	})

	t.Run("acquire error", func(t *testing.T) {
		t.Parallel()

		pool := &mockPool{acquireErr: context.DeadlineExceeded}
		err := convertStream(context.Background(), pool, strings.NewReader("x"), &strings.Builder{}, "", &renderParams{format: "text"})
		if !errors.Is(err, ErrAcquire) || !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want ErrAcquire wrapping DeadlineExceeded", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults - Result reporting
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.spans.txt", Spans: 3},
		{InputPath: "b.md", Err: ErrReadMarkdown},
	}

	tests := []struct {
		name        string
		quiet       bool
		verbose     bool
		wantStdout  []string
		avoidStdout []string
	}{
		{
			name:       "default",
			wantStdout: []string{"Created a.spans.txt", "1 succeeded, 1 failed"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{"a.md -> a.spans.txt (3 spans"},
		},
		{
			name:        "quiet",
			quiet:       true,
			avoidStdout: []string{"Created", "succeeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv("")
			if failed := printResults(results, tt.quiet, tt.verbose, env); failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			if !strings.Contains(stderr.String(), "FAILED b.md") {
				t.Errorf("stderr = %q, want failure line", stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q, got %q", want, stdout.String())
				}
			}
			for _, avoid := range tt.avoidStdout {
				if strings.Contains(stdout.String(), avoid) {
					t.Errorf("stdout should not contain %q, got %q", avoid, stdout.String())
				}
			}
		})
	}
}
