package directive

import "github.com/wharflab/cheetah-lint/internal/rules"

// Filter returns the violations no directive covers.
func Filter(violations []rules.Violation, directives []Directive) []rules.Violation {
	kept := make([]rules.Violation, 0, len(violations))
	for _, v := range violations {
		if !suppressed(v, directives) {
			kept = append(kept, v)
		}
	}
	return kept
}

func suppressed(v rules.Violation, directives []Directive) bool {
	for i := range directives {
		if directives[i].SuppressesLine(v.Line) && directives[i].SuppressesCode(v.Code) {
			return true
		}
	}
	return false
}
