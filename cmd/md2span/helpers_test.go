package main

// Notes:
// - This file contains mocks and helpers shared by the CLI tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	md2span "github.com/alnah/go-md2span"
	"github.com/alnah/go-md2span/internal/config"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockRenderer returns a fixed result and records which method was called.
type mockRenderer struct {
	mu      sync.Mutex
	result  *md2span.StyledText
	err     error
	inputs  []string
	trimmed []bool
}

func (m *mockRenderer) Render(_ context.Context, markdown string) (*md2span.StyledText, error) {
	return m.record(markdown, false)
}

func (m *mockRenderer) RenderTrimmed(_ context.Context, markdown string) (*md2span.StyledText, error) {
	return m.record(markdown, true)
}

func (m *mockRenderer) record(markdown string, trim bool) (*md2span.StyledText, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, markdown)
	m.trimmed = append(m.trimmed, trim)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &md2span.StyledText{Text: markdown}, nil
}

// mockPool hands out one shared renderer.
type mockPool struct {
	mu         sync.Mutex
	renderer   Renderer
	acquireErr error
	size       int
	acquired   int
	released   int
}

func (p *mockPool) Acquire(context.Context) (Renderer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.renderer, nil
}

func (p *mockPool) Release(Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *mockPool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// testEnv returns an environment writing to buffers.
func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
		Logger: slog.New(slog.DiscardHandler),
		Config: config.DefaultConfig(),
	}
	return env, &stdout, &stderr
}

// writeFile creates dir/name with content, making parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// defaultFlags returns flags as parsed from an empty command line.
func defaultFlags(t *testing.T) *cliFlags {
	t.Helper()
	f, _, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	return f
}
