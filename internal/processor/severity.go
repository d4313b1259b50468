package processor

import (
	"github.com/wharflab/cheetah-lint/internal/rules"
)

// SeverityOverride applies [rules.severity] overrides from configuration.
type SeverityOverride struct{}

// NewSeverityOverride creates a new severity override processor.
func NewSeverityOverride() *SeverityOverride {
	return &SeverityOverride{}
}

// Name returns the processor's identifier.
func (p *SeverityOverride) Name() string {
	return "severity-override"
}

// Process applies severity overrides from config.
func (p *SeverityOverride) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		cfg := ctx.ConfigForFile(v.File)
		if cfg == nil {
			return v
		}
		override := cfg.Rules.GetSeverity(v.Code)
		if override == "" {
			return v
		}
		sev, err := rules.ParseSeverity(override)
		if err != nil {
			// Invalid severity in config - keep original
			return v
		}
		v.Severity = sev
		return v
	})
}
