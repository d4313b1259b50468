package processor

import (
	"github.com/wharflab/cheetah-lint/internal/rules"
)

// EnableFilter removes findings whose severity is "off" or whose code is
// not selected by [rules] select/ignore.
type EnableFilter struct{}

// NewEnableFilter creates a new enable filter processor.
func NewEnableFilter() *EnableFilter {
	return &EnableFilter{}
}

// Name returns the processor's identifier.
func (p *EnableFilter) Name() string {
	return "enable-filter"
}

// Process filters out findings for disabled codes.
func (p *EnableFilter) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return filterViolations(violations, func(v rules.Violation) bool {
		// SeverityOverride runs before this processor
		if v.Severity == rules.SeverityOff {
			return false
		}
		cfg := ctx.ConfigForFile(v.File)
		if cfg == nil {
			return true
		}
		return cfg.Rules.IsEnabled(v.Code)
	})
}
