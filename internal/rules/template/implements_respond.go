package template

import (
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// ImplementsRespondCode flags a redundant "#implements respond".
const ImplementsRespondCode = "T001"

// ImplementsRespondRule reports "#implements respond" in a template that does
// not extend anything; respond is what the compiler generates by default.
type ImplementsRespondRule struct{}

// NewImplementsRespondRule creates the rule.
func NewImplementsRespondRule() *ImplementsRespondRule {
	return &ImplementsRespondRule{}
}

// Metadata returns the rule metadata.
func (r *ImplementsRespondRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:            ImplementsRespondCode,
		Name:            "Redundant implements respond",
		Description:     "'#implements respond' is assumed without '#extends'",
		DefaultSeverity: rules.SeverityStyle,
		Target:          rules.TargetTemplate,
	}
}

// Check only looks at the last #implements directive; any #extends disables
// the rule.
func (r *ImplementsRespondRule) Check(input rules.LintInput) []rules.Violation {
	implementsLine := 0
	for n := 1; n <= input.Lines.Count(); n++ {
		line := input.Lines.Line(n)
		switch {
		case strings.HasPrefix(line, "#extends"):
			return nil
		case strings.HasPrefix(line, "#implements"):
			implementsLine = n
		}
	}
	if implementsLine == 0 || strings.TrimSpace(input.Lines.Line(implementsLine)) != "#implements respond" {
		return nil
	}
	return []rules.Violation{
		rules.NewViolation(input.File, implementsLine, ImplementsRespondCode, r.Metadata().Description),
	}
}

func init() {
	rules.Register(NewImplementsRespondRule())
}
