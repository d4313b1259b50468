package rules

import (
	"cmp"
	"strings"
)

// Violation is a single finding reported against a template.
//
// Line is a 1-based template line number. Findings produced against the
// generated Python code carry generated line numbers until they have been
// reconciled; after reconciliation 0 means the template line could not be
// determined.
type Violation struct {
	// File is the path of the template.
	File string `json:"file"`

	// Line is the 1-based line number (0 = unknown).
	Line int `json:"line"`

	// Code is the diagnostic code (e.g., "F401", "T003").
	Code string `json:"code"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// Severity indicates how critical this violation is.
	Severity Severity `json:"severity"`

	// SourceCode is the template line where the violation occurred (optional).
	// Populated by post-processing; rules don't need to set this.
	SourceCode string `json:"sourceCode,omitempty"`
}

// NewViolation creates a violation whose severity is derived from its code.
func NewViolation(file string, line int, code, message string) Violation {
	return Violation{
		File:     file,
		Line:     line,
		Code:     code,
		Message:  message,
		Severity: SeverityForCode(code),
	}
}

// WithSourceCode adds source code snippet to the violation.
func (v Violation) WithSourceCode(code string) Violation {
	v.SourceCode = code
	return v
}

// WithLine returns a copy of the violation at another line.
func (v Violation) WithLine(line int) Violation {
	v.Line = line
	return v
}

// HasKnownLine reports whether the violation points at a real template line.
func (v Violation) HasKnownLine() bool {
	return v.Line > 0
}

// Compare orders violations by file, line, code and message.
// Within a single file this is the natural ordering of the
// (line, code, message) triple.
func Compare(a, b Violation) int {
	if c := strings.Compare(a.File, b.File); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}
	if c := strings.Compare(a.Code, b.Code); c != 0 {
		return c
	}
	return strings.Compare(a.Message, b.Message)
}
