package rules

import "github.com/wharflab/cheetah-lint/internal/sourcemap"

// Target selects the line space a rule runs against.
type Target int

const (
	// TargetTemplate rules read the raw template and report template lines.
	TargetTemplate Target = iota
	// TargetGenerated rules read the compiled Python and report generated
	// lines, which the linter reconciles back to template lines.
	TargetGenerated
)

func (t Target) String() string {
	if t == TargetGenerated {
		return "generated"
	}
	return "template"
}

// LintInput contains the lines a rule checks.
//
// LintInput is read-only. Rules must not mutate Lines.
type LintInput struct {
	// File is the path to the template being linted.
	File string

	// Lines are the template lines for TargetTemplate rules and the
	// generated lines for TargetGenerated rules.
	Lines sourcemap.Lines
}

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the unique identifier (e.g., "T001").
	Code string

	// Name is the human-readable rule name.
	Name string

	// Description explains what the rule checks.
	Description string

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity

	// Target is the line space the rule runs against.
	Target Target
}

// Rule is the interface that all linting rules must implement.
type Rule interface {
	// Metadata returns static information about the rule.
	Metadata() RuleMetadata

	// Check runs the rule against the given input and returns any violations.
	Check(input LintInput) []Violation
}
