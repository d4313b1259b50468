package processor

import (
	"github.com/wharflab/cheetah-lint/internal/rules"
)

// PathExclusionFilter removes findings matched by [[rules.per-file-ignores]].
type PathExclusionFilter struct{}

// NewPathExclusionFilter creates a new path exclusion filter processor.
func NewPathExclusionFilter() *PathExclusionFilter {
	return &PathExclusionFilter{}
}

// Name returns the processor's identifier.
func (p *PathExclusionFilter) Name() string {
	return "path-exclusion-filter"
}

// Process filters out findings for files that match exclusion patterns.
func (p *PathExclusionFilter) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return filterViolations(violations, func(v rules.Violation) bool {
		cfg := ctx.ConfigForFile(v.File)
		if cfg == nil {
			return true
		}
		return !cfg.Rules.IsIgnoredForFile(v.Code, v.File)
	})
}
