package md2span

import (
	"errors"

	"github.com/alnah/go-md2span/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrSourceConversion is returned when the Markdown parser fails.
	// No partial result is produced.
	ErrSourceConversion = pipeline.ErrSourceConversion

	// ErrMarkupParse is returned when the intermediate HTML cannot be read.
	ErrMarkupParse = pipeline.ErrMarkupParse

	// Layout validation errors.
	ErrInvalidLayout = errors.New("invalid layout")

	// Pool errors.
	ErrPoolClosed = errors.New("converter pool is closed")
)
