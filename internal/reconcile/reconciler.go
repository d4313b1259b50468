package reconcile

import (
	"regexp"
	"strconv"

	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// Hint steers fuzzy matching when a snippet occurs more than once in its
// window.
type Hint int

const (
	// HintNone scans bottom-up.
	HintNone Hint = iota
	// HintFirstImport scans top-down. Used for the line a message refers
	// to, which is the earlier definition.
	HintFirstImport
	// HintLastImport scans bottom-up. Used for the finding's own line.
	HintLastImport
)

func (h Hint) String() string {
	switch h {
	case HintFirstImport:
		return "first-import"
	case HintLastImport:
		return "last-import"
	default:
		return "none"
	}
}

// DefaultReferenceCodes are the checker codes whose message embeds a
// "from line N" reference to another generated line.
var DefaultReferenceCodes = []string{"F402", "F811", "F812"}

var fromLineRe = regexp.MustCompile(`^(.+from line )(\d+)`)

// Reconciler resolves generated line numbers of one compiled template.
type Reconciler struct {
	Generated sourcemap.Lines
	Source    sourcemap.Lines

	referenceCodes map[string]bool
}

// New creates a Reconciler. referenceCodes lists the codes whose messages are
// rewritten by RewriteMessage; nil means DefaultReferenceCodes.
func New(generated, source sourcemap.Lines, referenceCodes []string) *Reconciler {
	if referenceCodes == nil {
		referenceCodes = DefaultReferenceCodes
	}
	codes := make(map[string]bool, len(referenceCodes))
	for _, c := range referenceCodes {
		codes[c] = true
	}
	return &Reconciler{Generated: generated, Source: source, referenceCodes: codes}
}

// Resolve maps generated line target to a template line, or 0 when it
// cannot be determined.
//
// A provenance comment on the target line wins. Otherwise the target is
// matched fuzzily inside the window from FindBounds.
func (r *Reconciler) Resolve(target int, hint Hint) int {
	if !r.Generated.InRange(target) {
		return 0
	}
	line := r.Generated[target]
	if n := ScanProvenance(line); n != 0 {
		return n
	}
	lower, upper := FindBounds(target, r.Generated, r.Source)
	return FuzzyMatch(line, r.Source, lower, upper, hint == HintFirstImport)
}

// RewriteMessage replaces the generated line number in a "from line N"
// message with the template line, for the configured reference codes.
// Other messages are returned unchanged.
func (r *Reconciler) RewriteMessage(code, msg string) string {
	if !r.referenceCodes[code] {
		return msg
	}
	m := fromLineRe.FindStringSubmatchIndex(msg)
	if m == nil {
		return msg
	}
	n, err := strconv.Atoi(msg[m[4]:m[5]])
	if err != nil {
		return msg
	}
	resolved := r.Resolve(n, HintFirstImport)
	return msg[:m[3]] + strconv.Itoa(resolved) + msg[m[5]:]
}

// Normalize rewrites the message of v and then maps its line.
// The message reference prefers the first match in its window, while the
// finding's own line prefers the last.
func (r *Reconciler) Normalize(v rules.Violation) rules.Violation {
	v.Message = r.RewriteMessage(v.Code, v.Message)
	v.Line = r.Resolve(v.Line, HintLastImport)
	return v
}

// NormalizeAll applies Normalize to every violation.
func (r *Reconciler) NormalizeAll(vs []rules.Violation) []rules.Violation {
	out := make([]rules.Violation, len(vs))
	for i, v := range vs {
		out[i] = r.Normalize(v)
	}
	return out
}
