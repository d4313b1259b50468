package checker

import (
	"context"
	"slices"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// Static is a Checker that returns fixed findings, filtered by the selected
// codes like a real checker would.
type Static struct {
	Violations []rules.Violation
	Err        error
}

// Check returns the fixed findings whose code is selected.
func (s Static) Check(_ context.Context, _ string, codes []string) ([]rules.Violation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []rules.Violation
	for _, v := range s.Violations {
		if len(codes) == 0 || slices.Contains(codes, v.Code) {
			out = append(out, v)
		}
	}
	return out, nil
}
