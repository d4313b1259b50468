// Package rules provides the finding model and the rule system for the
// Cheetah template linter.
package rules

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity represents the severity level of a rule violation.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type Severity int

const (
	// SeverityError indicates a definite defect (undefined behavior, syntax errors).
	SeverityError Severity = iota
	// SeverityWarning indicates a likely mistake.
	SeverityWarning
	// SeverityInfo indicates a suggestion or best practice recommendation.
	SeverityInfo
	// SeverityStyle indicates a style/formatting preference.
	SeverityStyle

	// SeverityOff disables the rule completely.
	// Placed after other severities to avoid zero-value confusion.
	SeverityOff
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityStyle:
		return "style"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity parses a severity string into a Severity value.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "off":
		return SeverityOff, nil
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "style":
		return SeverityStyle, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity: %q", s)
	}
}

// IsAtLeast returns true if s is at least as severe as threshold.
func (s Severity) IsAtLeast(threshold Severity) bool {
	return s <= threshold
}

// SeverityForCode returns the default severity for a diagnostic code.
//
//	F*, E9*  error    (pyflakes findings, syntax errors)
//	E*, W*   warning  (pycodestyle comparisons, deprecations)
//	P*       info     (generated-code checks)
//	T*       style    (template layout checks)
func SeverityForCode(code string) Severity {
	switch {
	case strings.HasPrefix(code, "F"), strings.HasPrefix(code, "E9"):
		return SeverityError
	case strings.HasPrefix(code, "E"), strings.HasPrefix(code, "W"):
		return SeverityWarning
	case strings.HasPrefix(code, "P"):
		return SeverityInfo
	case strings.HasPrefix(code, "T"):
		return SeverityStyle
	default:
		return SeverityWarning
	}
}
