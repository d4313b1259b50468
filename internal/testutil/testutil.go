// Package testutil provides test helpers for the template linter.
package testutil

import (
	"strings"
	"testing"

	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// MakeLintInput creates a LintInput from raw text.
//
// For template rules content is the template; for generated-code rules it is
// the compiled Python.
func MakeLintInput(tb testing.TB, file, content string) rules.LintInput {
	tb.Helper()
	return rules.LintInput{
		File:  file,
		Lines: sourcemap.Split(content),
	}
}

// RuleTestCase defines a test case for table-driven rule tests.
type RuleTestCase struct {
	// Name is the subtest name.
	Name string

	// Content is the text handed to the rule.
	Content string

	// WantViolations is the expected violation count (-1 to skip the check).
	WantViolations int

	// WantCodes are the expected codes, in order.
	WantCodes []string

	// WantLines are the expected line numbers, in order.
	WantLines []int

	// WantMessages are substrings expected in the messages, in order.
	WantMessages []string
}

// RunRuleTests runs table-driven tests for a rule.
func RunRuleTests(t *testing.T, rule rules.Rule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			input := MakeLintInput(t, "test.tmpl", tc.Content)
			violations := rule.Check(input)

			if tc.WantViolations >= 0 && len(violations) != tc.WantViolations {
				t.Errorf("got %d violations, want %d", len(violations), tc.WantViolations)
				for i, v := range violations {
					t.Logf("  [%d] %d %s: %s", i, v.Line, v.Code, v.Message)
				}
			}

			if len(tc.WantCodes) > 0 {
				if len(violations) != len(tc.WantCodes) {
					t.Errorf("got %d violations, want %d", len(violations), len(tc.WantCodes))
				} else {
					for i, code := range tc.WantCodes {
						if violations[i].Code != code {
							t.Errorf("violation[%d].Code = %q, want %q", i, violations[i].Code, code)
						}
					}
				}
			}

			if len(tc.WantLines) > 0 {
				if len(violations) != len(tc.WantLines) {
					t.Errorf("got %d violations, want %d", len(violations), len(tc.WantLines))
				} else {
					for i, line := range tc.WantLines {
						if violations[i].Line != line {
							t.Errorf("violation[%d].Line = %d, want %d", i, violations[i].Line, line)
						}
					}
				}
			}

			for i, msg := range tc.WantMessages {
				if i >= len(violations) {
					t.Errorf(
						"expected violation[%d] with message containing %q, but only got %d violations",
						i,
						msg,
						len(violations),
					)
					continue
				}
				if !strings.Contains(violations[i].Message, msg) {
					t.Errorf("violation[%d].Message = %q, want substring %q", i, violations[i].Message, msg)
				}
			}
		})
	}
}

// AssertNoViolations fails the test if there are any violations.
func AssertNoViolations(tb testing.TB, violations []rules.Violation) {
	tb.Helper()
	if len(violations) > 0 {
		tb.Errorf("expected no violations, got %d:", len(violations))
		for _, v := range violations {
			tb.Logf("  - %s at line %d: %s", v.Code, v.Line, v.Message)
		}
	}
}

// AssertViolationCount fails the test if the violation count doesn't match.
func AssertViolationCount(tb testing.TB, violations []rules.Violation, want int) {
	tb.Helper()
	if len(violations) != want {
		tb.Errorf("got %d violations, want %d:", len(violations), want)
		for _, v := range violations {
			tb.Logf("  - %s at line %d: %s", v.Code, v.Line, v.Message)
		}
	}
}
