package processor

import (
	"path/filepath"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// Deduplication removes duplicate findings.
//
// Two findings are duplicates when file, line, code and message all match.
// The checker reports one finding per unused name, so messages are part of
// the identity.
type Deduplication struct{}

// NewDeduplication creates a new deduplication processor.
func NewDeduplication() *Deduplication {
	return &Deduplication{}
}

// Name returns the processor's identifier.
func (p *Deduplication) Name() string {
	return "deduplication"
}

// Process keeps the first occurrence of each finding.
func (p *Deduplication) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	type key struct {
		file, code, message string
		line                int
	}
	seen := make(map[key]bool)
	return filterViolations(violations, func(v rules.Violation) bool {
		k := key{file: filepath.ToSlash(v.File), code: v.Code, message: v.Message, line: v.Line}
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
}
