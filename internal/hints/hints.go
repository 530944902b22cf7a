// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// configDirName is the per-user config directory searched by name lookups.
const configDirName = "go-md2span"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/"+configDirName+"/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForLayout returns hints for rejected list layouts.
func ForLayout() string {
	return format("--indent takes 1-200 pixels and --bullet-radius 0-50")
}

// ForFormat returns hints for unknown output formats.
func ForFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForNoInput returns hints when no Markdown source was given.
func ForNoInput() string {
	return format("pass a file or directory, or pipe Markdown on stdin")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
