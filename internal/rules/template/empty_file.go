package template

import (
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// EmptyFileCode flags a template with no content.
const EmptyFileCode = "T005"

// EmptyFileRule reports templates that are empty or whitespace only.
type EmptyFileRule struct{}

// NewEmptyFileRule creates the rule.
func NewEmptyFileRule() *EmptyFileRule {
	return &EmptyFileRule{}
}

// Metadata returns the rule metadata.
func (r *EmptyFileRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:            EmptyFileCode,
		Name:            "Empty file",
		Description:     "File is empty",
		DefaultSeverity: rules.SeverityStyle,
		Target:          rules.TargetTemplate,
	}
}

// Check runs the rule. The finding is always on line 1.
func (r *EmptyFileRule) Check(input rules.LintInput) []rules.Violation {
	if strings.TrimSpace(input.Lines.Join()) != "" {
		return nil
	}
	return []rules.Violation{
		rules.NewViolation(input.File, 1, EmptyFileCode, r.Metadata().Description),
	}
}

func init() {
	rules.Register(NewEmptyFileRule())
}
