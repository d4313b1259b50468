// Package sourcemap provides line-indexed access to template source and to
// the Python code generated from it.
//
// Both coordinate systems used by the linter (template lines and generated
// lines) are represented by [Lines]. Index 0 is an empty sentinel so that
// slice indices equal human-readable 1-based line numbers.
package sourcemap

import "strings"

// Lines is a sentinel-prefixed slice of source lines.
// Each line keeps its line terminator, like Python's str.splitlines(True).
type Lines []string

// Split breaks text into Lines. Lines are split after each "\n";
// a trailing partial line (no terminator) is kept as the last line.
// Empty text yields only the sentinel.
func Split(text string) Lines {
	lines := Lines{""}
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}

// Count returns the number of real lines (the sentinel is not counted).
func (l Lines) Count() int {
	if len(l) == 0 {
		return 0
	}
	return len(l) - 1
}

// Line returns the text of the 1-based line n including its terminator.
// Returns empty string if n is out of range.
func (l Lines) Line(n int) string {
	if n < 1 || n >= len(l) {
		return ""
	}
	return l[n]
}

// Text returns the line without its terminator.
func (l Lines) Text(n int) string {
	return TrimEOL(l.Line(n))
}

// InRange reports whether n addresses a real line.
func (l Lines) InRange(n int) bool {
	return n >= 1 && n < len(l)
}

// Join reassembles the original text.
func (l Lines) Join() string {
	if len(l) <= 1 {
		return ""
	}
	return strings.Join(l[1:], "")
}

// Snippet returns lines start..end (1-based, inclusive) without terminators,
// joined by "\n". The range is clamped to the available lines.
func (l Lines) Snippet(start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > l.Count() {
		end = l.Count()
	}
	if start > end {
		return ""
	}
	parts := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		parts = append(parts, l.Text(i))
	}
	return strings.Join(parts, "\n")
}

// TrimEOL strips a trailing "\n" or "\r\n".
func TrimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// LeadingWhitespace returns the run of spaces and tabs at the start of s.
func LeadingWhitespace(s string) string {
	end := 0
	for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	return s[:end]
}
