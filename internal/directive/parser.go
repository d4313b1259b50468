package directive

import (
	"regexp"
	"strings"

	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// ## cheetah-lint [global] ignore=CODE1,CODE2 [reason=...]
var pattern = regexp.MustCompile(
	`(?i)^\s*##\s*cheetah-lint\s+(global\s+)?ignore\s*=\s*([A-Za-z0-9_,]+)(?:\s+reason\s*=\s*(.*\S))?`,
)

// Parse extracts every directive from the template lines.
func Parse(lines sourcemap.Lines) []Directive {
	var directives []Directive
	for n := 1; n <= lines.Count(); n++ {
		text := lines.Text(n)
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		codes := parseCodeList(m[2])
		if len(codes) == 0 {
			continue
		}

		d := Directive{
			Codes:   codes,
			Line:    n,
			Reason:  m[3],
			RawText: strings.TrimSpace(text),
		}
		if strings.TrimSpace(m[1]) != "" {
			d.Type = TypeGlobal
			d.AppliesTo = GlobalRange()
		} else {
			d.Type = TypeNextLine
			d.AppliesTo = nextCodeLine(lines, n)
		}
		directives = append(directives, d)
	}
	return directives
}

func parseCodeList(s string) []string {
	var codes []string
	for part := range strings.SplitSeq(s, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// nextCodeLine returns the range of the first line after n that is
// neither blank nor a "##" comment.
func nextCodeLine(lines sourcemap.Lines, n int) LineRange {
	for i := n + 1; i <= lines.Count(); i++ {
		text := strings.TrimSpace(lines.Text(i))
		if text == "" || strings.HasPrefix(text, "##") {
			continue
		}
		return LineRange{Start: i, End: i}
	}
	return noLines
}
