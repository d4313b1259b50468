// Package processor provides a composable finding processing pipeline.
//
// Findings flow through a sequence of processors, each transforming the
// slice (filtering, modifying, or augmenting).
//
// Standard pipeline order:
//  1. PathNormalization - Cross-platform path consistency
//  2. SeverityOverride - Apply config severity overrides
//  3. EnableFilter - Remove findings for disabled codes
//  4. PathExclusionFilter - Remove per-file ignored codes
//  5. InlineDirectiveFilter - Honor "## cheetah-lint ignore=" comments
//  6. Deduplication - Remove duplicate findings
//  7. Sorting - Stable output ordering
//  8. SnippetAttachment - Populate SourceCode field
package processor

import (
	"path/filepath"

	"github.com/wharflab/cheetah-lint/internal/config"
	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// Processor transforms a slice of violations.
type Processor interface {
	// Name returns the processor's identifier (for debugging/logging).
	Name() string

	// Process applies the processor's logic to violations.
	// Must not modify the input slice; return a new slice if filtering.
	Process(violations []rules.Violation, ctx *Context) []rules.Violation
}

// Context provides shared state for processors.
type Context struct {
	// Config is the fallback configuration.
	Config *config.Config

	// FileConfigs maps file paths to the configuration discovered for them.
	FileConfigs map[string]*config.Config

	// FileSources maps file paths to template text, for snippets.
	FileSources map[string]string

	lines map[string]sourcemap.Lines
}

// NewContext creates a new processor context.
func NewContext(fileConfigs map[string]*config.Config, cfg *config.Config, fileSources map[string]string) *Context {
	normalized := make(map[string]*config.Config, len(fileConfigs))
	for path, c := range fileConfigs {
		normalized[filepath.ToSlash(path)] = c
	}
	return &Context{
		Config:      cfg,
		FileConfigs: normalized,
		FileSources: fileSources,
		lines:       make(map[string]sourcemap.Lines),
	}
}

// ConfigForFile returns the configuration that applies to file.
func (ctx *Context) ConfigForFile(file string) *config.Config {
	if c, ok := ctx.FileConfigs[filepath.ToSlash(file)]; ok && c != nil {
		return c
	}
	return ctx.Config
}

// Lines returns the split source of file, or nil when it is unknown.
func (ctx *Context) Lines(file string) sourcemap.Lines {
	if l, ok := ctx.lines[file]; ok {
		return l
	}
	source, ok := ctx.FileSources[file]
	if !ok {
		source, ok = ctx.FileSources[filepath.FromSlash(file)]
	}
	if !ok {
		return nil
	}
	l := sourcemap.Split(source)
	ctx.lines[file] = l
	return l
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Process runs all processors in sequence.
func (c *Chain) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	for _, p := range c.processors {
		violations = p.Process(violations, ctx)
	}
	return violations
}

// CLIProcessors returns the standard chain used by the flake command.
func CLIProcessors() *Chain {
	return NewChain(
		NewPathNormalization(),
		NewSeverityOverride(), // must run before EnableFilter
		NewEnableFilter(),
		NewPathExclusionFilter(),
		NewInlineDirectiveFilter(),
		NewDeduplication(),
		NewSorting(),
		NewSnippetAttachment(),
	)
}

func filterViolations(violations []rules.Violation, keep func(v rules.Violation) bool) []rules.Violation {
	result := make([]rules.Violation, 0, len(violations))
	for _, v := range violations {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

func transformViolations(
	violations []rules.Violation,
	transform func(v rules.Violation) rules.Violation,
) []rules.Violation {
	result := make([]rules.Violation, len(violations))
	for i, v := range violations {
		result[i] = transform(v)
	}
	return result
}
