package processor

import (
	"slices"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// Sorting orders findings by file, line, code and message.
type Sorting struct{}

// NewSorting creates a new sorting processor.
func NewSorting() *Sorting {
	return &Sorting{}
}

// Name returns the processor's identifier.
func (p *Sorting) Name() string {
	return "sorting"
}

// Process returns a sorted copy of violations.
func (p *Sorting) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	sorted := slices.Clone(violations)
	slices.SortStableFunc(sorted, rules.Compare)
	return sorted
}
