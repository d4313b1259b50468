package reconcile

import (
	"regexp"
	"strconv"

	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// provenanceRe matches both "# generated from line N, col M" and
// "# <expr> on line N, col M".
var provenanceRe = regexp.MustCompile(`^.+#.+line (\d+), col \d+`)

// ScanProvenance returns the template line named by a provenance comment on
// line, or 0 when there is none.
func ScanProvenance(line string) int {
	m := provenanceRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// FindBounds returns the half-open window [lower, upper) of template lines
// that generated line target may have come from.
//
// lower is the provenance of the nearest annotated line at or above target
// (0 if none). upper is one past the provenance of the nearest annotated line
// at or below target, or len(source) if none. With no annotations at all the
// window covers every template line.
func FindBounds(target int, generated, source sourcemap.Lines) (lower, upper int) {
	last := len(generated) - 1
	target = max(0, min(target, last))

	for n := target; n >= 1; n-- {
		if lower = ScanProvenance(generated[n]); lower != 0 {
			break
		}
	}

	upper = len(source)
	for n := max(target, 1); n <= last; n++ {
		if p := ScanProvenance(generated[n]); p != 0 {
			upper = p + 1
			break
		}
	}
	return lower, upper
}
