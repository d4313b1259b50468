package processor

import (
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// PathNormalization converts file paths to forward slashes so output is
// identical on every OS.
type PathNormalization struct{}

// NewPathNormalization creates a new path normalization processor.
func NewPathNormalization() *PathNormalization {
	return &PathNormalization{}
}

// Name returns the processor's identifier.
func (p *PathNormalization) Name() string {
	return "path-normalization"
}

// Process normalizes all file paths to use forward slashes.
func (p *PathNormalization) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		v.File = strings.ReplaceAll(v.File, "\\", "/")
		return v
	})
}
