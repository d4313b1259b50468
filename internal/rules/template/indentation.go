package template

import (
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

const (
	// IndentTabsCode flags indentation containing a tab.
	IndentTabsCode = "T003"
	// IndentWidthCode flags indentation that is not a multiple of four spaces.
	IndentWidthCode = "T004"
)

const indentWidth = 4

// IndentationRule checks the leading whitespace of every line.
//
// The rule is registered under T003 and also reports T004. A line
// reports at most one of the two; tabs win.
type IndentationRule struct{}

// NewIndentationRule creates the rule.
func NewIndentationRule() *IndentationRule {
	return &IndentationRule{}
}

// Metadata returns the rule metadata.
func (r *IndentationRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:            IndentTabsCode,
		Name:            "Tab indentation",
		Description:     "Indentation contains tabs",
		DefaultSeverity: rules.SeverityStyle,
		Target:          rules.TargetTemplate,
	}
}

// Check runs the rule.
func (r *IndentationRule) Check(input rules.LintInput) []rules.Violation {
	var violations []rules.Violation
	for n := 1; n <= input.Lines.Count(); n++ {
		ws := sourcemap.LeadingWhitespace(input.Lines.Line(n))
		switch {
		case strings.ContainsRune(ws, '\t'):
			violations = append(violations,
				rules.NewViolation(input.File, n, IndentTabsCode, "Indentation contains tabs"))
		case len(ws)%indentWidth != 0:
			violations = append(violations,
				rules.NewViolation(input.File, n, IndentWidthCode, "Indentation is not a multiple of 4"))
		}
	}
	return violations
}

func init() {
	rules.Register(NewIndentationRule())
}
