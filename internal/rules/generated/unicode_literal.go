package generated

import (
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// UnicodeLiteralCode flags u"" string prefixes in generated code.
const UnicodeLiteralCode = "P001"

// UnicodeLiteralRule reports string literals with a u or U prefix. Template
// literals are unicode already, so the prefix is noise.
type UnicodeLiteralRule struct{}

// NewUnicodeLiteralRule creates the rule.
func NewUnicodeLiteralRule() *UnicodeLiteralRule {
	return &UnicodeLiteralRule{}
}

// Metadata returns the rule metadata.
func (r *UnicodeLiteralRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:            UnicodeLiteralCode,
		Name:            "Unicode literal prefix",
		Description:     "unicode literal prefix is unnecessary (assumed) in cheetah templates",
		DefaultSeverity: rules.SeverityInfo,
		Target:          rules.TargetGenerated,
	}
}

// Check runs the rule.
func (r *UnicodeLiteralRule) Check(input rules.LintInput) []rules.Violation {
	var violations []rules.Violation
	for _, tok := range ScanStrings(input.Lines.Join()) {
		if tok.Text[0] != 'u' && tok.Text[0] != 'U' {
			continue
		}
		violations = append(violations, rules.NewViolation(
			input.File,
			tok.Line,
			UnicodeLiteralCode,
			r.Metadata().Description+": "+tok.Text,
		))
	}
	return violations
}

func init() {
	rules.Register(NewUnicodeLiteralRule())
}

// StringToken is a Python string literal found by ScanStrings.
type StringToken struct {
	// Line is the 1-based line the literal starts on.
	Line int
	// Text is the literal including prefix and quotes.
	Text string
}

// ScanStrings finds the string literals in Python source, skipping comments.
// Prefixes are any combination of up to two of the letters b, r, u and f.
// Unterminated literals end at the end of their line (or of the source for
// triple-quoted ones).
func ScanStrings(src string) []StringToken {
	var tokens []StringToken
	line := 1
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '"' || c == '\'':
			end := stringEnd(src, i)
			tokens = append(tokens, StringToken{Line: line, Text: src[i:end]})
			line += strings.Count(src[i:end], "\n")
			i = end
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			if i < len(src) && (src[i] == '"' || src[i] == '\'') && isStringPrefix(src[start:i]) {
				end := stringEnd(src, i)
				tokens = append(tokens, StringToken{Line: line, Text: src[start:end]})
				line += strings.Count(src[i:end], "\n")
				i = end
			}
		default:
			i++
		}
	}
	return tokens
}

// stringEnd returns the index just past the literal whose opening quote is
// at src[i].
func stringEnd(src string, i int) int {
	q := src[i]
	triple := strings.Repeat(string(q), 3)
	if strings.HasPrefix(src[i:], triple) {
		j := i + 3
		for j < len(src) {
			if src[j] == '\\' {
				j += 2
				continue
			}
			if strings.HasPrefix(src[j:], triple) {
				return j + 3
			}
			j++
		}
		return len(src)
	}
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case q:
			return j + 1
		case '\n':
			return j
		}
		j++
	}
	return min(j, len(src))
}

func isStringPrefix(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for i := range len(s) {
		switch s[i] {
		case 'b', 'B', 'r', 'R', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
