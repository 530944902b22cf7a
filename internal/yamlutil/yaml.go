// Package yamlutil wraps goccy/go-yaml for config loading and span dumps.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// DumpIndent is the indent width used by Encode.
const DumpIndent = 2

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNilWriter      = errors.New("yamlutil: nil writer")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode writes v to w as a YAML document. Sequences are indented under
// their key and multiline strings use the literal block style.
func Encode(w io.Writer, v any) error {
	if w == nil {
		return ErrNilWriter
	}
	enc := yaml.NewEncoder(w,
		yaml.Indent(DumpIndent),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
