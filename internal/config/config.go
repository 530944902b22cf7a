package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2span/internal/fileutil"
	"github.com/alnah/go-md2span/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName is the directory under the user config dir searched for configs.
const AppName = "go-md2span"

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Field limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxFormatLength = 10   // "text", "yaml"
	MaxIndent       = 200  // pixels
	MaxBulletRadius = 50   // pixels
)

// Layout defaults, in pixels.
const (
	DefaultIndent       = 10
	DefaultBulletRadius = 3
)

// Config holds all configuration for rendering.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Layout LayoutConfig `yaml:"layout"`
	Render RenderConfig `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Format     string `yaml:"format"`     // "text" or "yaml" (default: "text")
}

// LayoutConfig defines list indentation in the widget's pixel unit.
type LayoutConfig struct {
	Indent       int `yaml:"indent"`       // base indent (default: 10)
	BulletRadius int `yaml:"bulletRadius"` // bullet glyph radius (default: 3)
}

// RenderConfig toggles pipeline behavior.
type RenderConfig struct {
	Trim      bool `yaml:"trim"`      // strip surrounding whitespace (default: true)
	HardWraps bool `yaml:"hardWraps"` // newline in a paragraph is a line break (default: true)
	RawHTML   bool `yaml:"rawHTML"`   // pass inline HTML such as <center> (default: true)
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.format", c.Output.Format, MaxFormatLength); err != nil {
		return err
	}
	switch strings.ToLower(c.Output.Format) {
	case "", FormatText, FormatYAML:
		// valid
	default:
		return fmt.Errorf("%w: output.format %q (must be %s or %s)", ErrInvalidValue, c.Output.Format, FormatText, FormatYAML)
	}

	if c.Layout.Indent < 1 || c.Layout.Indent > MaxIndent {
		return fmt.Errorf("%w: layout.indent must be between 1 and %d, got %d", ErrInvalidValue, MaxIndent, c.Layout.Indent)
	}
	if c.Layout.BulletRadius < 0 || c.Layout.BulletRadius > MaxBulletRadius {
		return fmt.Errorf("%w: layout.bulletRadius must be between 0 and %d, got %d", ErrInvalidValue, MaxBulletRadius, c.Layout.BulletRadius)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the stock configuration: default layout, trimming,
// hard wraps and raw HTML on, text output next to the source.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: "", Format: FormatText},
		Layout: LayoutConfig{Indent: DefaultIndent, BulletRadius: DefaultBulletRadius},
		Render: RenderConfig{Trim: true, HardWraps: true, RawHTML: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NotFoundError lists the locations searched for a config file.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 1 {
		return fmt.Sprintf("%v: %s", ErrConfigNotFound, e.Searched[0])
	}
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// userConfigDir is replaced in tests.
var userConfigDir = os.UserConfigDir

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-md2span/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	dir, err := userConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(dir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Searched: triedPaths}
}
