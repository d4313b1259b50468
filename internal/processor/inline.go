package processor

import (
	"github.com/wharflab/cheetah-lint/internal/directive"
	"github.com/wharflab/cheetah-lint/internal/rules"
)

// InlineDirectiveFilter removes findings suppressed by
// "## cheetah-lint ignore=..." comments in the template.
type InlineDirectiveFilter struct{}

// NewInlineDirectiveFilter creates a new inline directive filter.
func NewInlineDirectiveFilter() *InlineDirectiveFilter {
	return &InlineDirectiveFilter{}
}

// Name returns the processor's identifier.
func (p *InlineDirectiveFilter) Name() string {
	return "inline-directive-filter"
}

// Process groups findings by file and filters each group against the
// directives parsed from that file's source.
func (p *InlineDirectiveFilter) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	byFile := make(map[string][]rules.Violation)
	var order []string
	for _, v := range violations {
		if _, seen := byFile[v.File]; !seen {
			order = append(order, v.File)
		}
		byFile[v.File] = append(byFile[v.File], v)
	}

	result := make([]rules.Violation, 0, len(violations))
	for _, file := range order {
		group := byFile[file]
		lines := ctx.Lines(file)
		if lines == nil {
			result = append(result, group...)
			continue
		}
		directives := directive.Parse(lines)
		if len(directives) == 0 {
			result = append(result, group...)
			continue
		}
		result = append(result, directive.Filter(group, directives)...)
	}
	return result
}
