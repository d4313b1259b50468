package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// RulesConfig contains code selection and per-code overrides.
//
// Selection uses code prefixes like flake8: "F" selects every F code and
// "F8" every F8xx code. When a code matches both lists the longer prefix
// wins, and a tie goes to ignore.
//
// Example TOML:
//
//	[rules]
//	select = ["F", "E", "W", "T", "P"]
//	ignore = ["T004"]
//
//	[rules.severity]
//	P001 = "warning"
//
//	[[rules.per-file-ignores]]
//	paths = ["legacy/**"]
//	codes = ["T003", "T004"]
type RulesConfig struct {
	// Select enables codes by prefix. Empty selects everything.
	Select []string `json:"select,omitempty" koanf:"select"`

	// Ignore disables codes by prefix.
	Ignore []string `json:"ignore,omitempty" koanf:"ignore"`

	// Severity overrides a code's default severity ("off" disables it).
	Severity map[string]string `json:"severity,omitempty" koanf:"severity"`

	// PerFileIgnores disables codes for matching paths.
	PerFileIgnores []PerFileIgnore `json:"per-file-ignores,omitempty" koanf:"per-file-ignores"`
}

// PerFileIgnore disables code prefixes for files matching any of Paths.
//
// Globs are kept in a list rather than as table keys because keys are split
// on dots.
type PerFileIgnore struct {
	Paths []string `json:"paths" koanf:"paths"`
	Codes []string `json:"codes" koanf:"codes"`
}

// IsEnabled reports whether code is selected.
func (rc *RulesConfig) IsEnabled(code string) bool {
	if rc == nil {
		return true
	}
	if rc.GetSeverity(code) == "off" {
		return false
	}
	sel := longestPrefix(code, rc.Select)
	if len(rc.Select) > 0 && sel < 0 {
		return false
	}
	ign := longestPrefix(code, rc.Ignore)
	return ign < 0 || sel > ign
}

// IsIgnoredForFile reports whether a per-file ignore disables code for path.
// path should use forward slashes.
func (rc *RulesConfig) IsIgnoredForFile(code, path string) bool {
	if rc == nil {
		return false
	}
	for _, pfi := range rc.PerFileIgnores {
		if longestPrefix(code, pfi.Codes) < 0 {
			continue
		}
		for _, pattern := range pfi.Paths {
			if matched, err := doublestar.Match(pattern, path); err == nil && matched {
				return true
			}
		}
	}
	return false
}

// GetSeverity returns the severity override for a code.
// Returns empty string if no override is configured.
func (rc *RulesConfig) GetSeverity(code string) string {
	if rc == nil {
		return ""
	}
	return strings.ToLower(rc.Severity[code])
}

// longestPrefix returns the length of the longest prefix of code in
// prefixes, or -1.
func longestPrefix(code string, prefixes []string) int {
	best := -1
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) && len(p) > best {
			best = len(p)
		}
	}
	return best
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	for code, sev := range c.Rules.Severity {
		if _, err := rules.ParseSeverity(sev); err != nil {
			return fmt.Errorf("rules.severity.%s: %w", code, err)
		}
	}
	for _, pfi := range c.Rules.PerFileIgnores {
		for _, pattern := range pfi.Paths {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("rules.per-file-ignores: invalid pattern %q", pattern)
			}
		}
	}
	if c.Output.FailLevel != "" && c.Output.FailLevel != "none" {
		if _, err := rules.ParseSeverity(c.Output.FailLevel); err != nil {
			return fmt.Errorf("output.fail-level: %w", err)
		}
	}
	switch c.Output.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("output.color: unknown value %q", c.Output.Color)
	}
	if _, err := c.Compiler.TimeoutDuration(); err != nil {
		return fmt.Errorf("compiler.timeout: %w", err)
	}
	if _, err := c.Checker.TimeoutDuration(); err != nil {
		return fmt.Errorf("checker.timeout: %w", err)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs: must not be negative, got %d", c.Jobs)
	}
	return nil
}
