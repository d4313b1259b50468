package processor

import (
	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// SnippetAttachment populates the SourceCode field with the template line a
// finding points at.
type SnippetAttachment struct{}

// NewSnippetAttachment creates a new snippet attachment processor.
func NewSnippetAttachment() *SnippetAttachment {
	return &SnippetAttachment{}
}

// Name returns the processor's identifier.
func (p *SnippetAttachment) Name() string {
	return "snippet-attachment"
}

// Process attaches source snippets. Findings that already carry one, have
// no known line, or whose file is not in FileSources are left alone.
func (p *SnippetAttachment) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		if v.SourceCode != "" || !v.HasKnownLine() {
			return v
		}
		lines := ctx.Lines(v.File)
		if !lines.InRange(v.Line) {
			return v
		}
		return v.WithSourceCode(sourcemap.TrimEOL(lines.Line(v.Line)))
	})
}
