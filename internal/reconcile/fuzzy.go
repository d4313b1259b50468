package reconcile

import (
	"regexp"
	"strings"

	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

var (
	// pyDefRe captures "def name(", the parameters after self, and "):".
	pyDefRe   = regexp.MustCompile(`^\s+(def [A-Za-z0-9_]+\()self(?:, )?(.*?)(\):)$`)
	symbolsRe = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// Fuzz strips everything but identifier characters from s.
func Fuzz(s string) string {
	return symbolsRe.ReplaceAllString(s, "")
}

// FuzzGenerated normalizes a generated line. Method definitions lose the
// self parameter the compiler adds, so they look like the template's #def.
func FuzzGenerated(s string) string {
	return Fuzz(pyDefRe.ReplaceAllString(sourcemap.TrimEOL(s), "$1$2$3"))
}

// FuzzSource normalizes a template line. #block compiles to a method just
// like #def.
func FuzzSource(s string) string {
	return Fuzz(strings.ReplaceAll(s, "#block ", "#def "))
}

// FuzzyMatch returns the first template line in [lower, upper) whose
// normalized text contains the normalized generated line, or 0.
//
// preferFirst scans the window top-down, otherwise bottom-up.
func FuzzyMatch(generatedLine string, source sourcemap.Lines, lower, upper int, preferFirst bool) int {
	needle := FuzzGenerated(generatedLine)
	lower = max(lower, 0)
	upper = min(upper, len(source))
	if lower >= upper {
		return 0
	}

	matches := func(n int) bool {
		return strings.Contains(FuzzSource(source[n]), needle)
	}
	if preferFirst {
		for n := lower; n < upper; n++ {
			if matches(n) {
				return n
			}
		}
		return 0
	}
	for n := upper - 1; n >= lower; n-- {
		if matches(n) {
			return n
		}
	}
	return 0
}
