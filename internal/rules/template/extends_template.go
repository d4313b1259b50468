package template

import (
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// ExtendsTemplateCode flags a redundant "#extends Cheetah.Template".
const ExtendsTemplateCode = "T002"

// ExtendsTemplateRule reports the first "#extends Cheetah.Template".
type ExtendsTemplateRule struct{}

// NewExtendsTemplateRule creates the rule.
func NewExtendsTemplateRule() *ExtendsTemplateRule {
	return &ExtendsTemplateRule{}
}

// Metadata returns the rule metadata.
func (r *ExtendsTemplateRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:            ExtendsTemplateCode,
		Name:            "Redundant extends Cheetah.Template",
		Description:     "'#extends Cheetah.Template' is assumed without '#extends'",
		DefaultSeverity: rules.SeverityStyle,
		Target:          rules.TargetTemplate,
	}
}

// Check runs the rule.
func (r *ExtendsTemplateRule) Check(input rules.LintInput) []rules.Violation {
	for n := 1; n <= input.Lines.Count(); n++ {
		if strings.TrimSpace(input.Lines.Line(n)) == "#extends Cheetah.Template" {
			return []rules.Violation{
				rules.NewViolation(input.File, n, ExtendsTemplateCode, r.Metadata().Description),
			}
		}
	}
	return nil
}

func init() {
	rules.Register(NewExtendsTemplateRule())
}
