// Package flake runs the diagnostic pipeline for one template.
//
// The pipeline: compile → checker and generated-code rules → line
// reconciliation → benign-finding filter → template rules → sort.
// Callers apply their own processor chain to the result.
package flake

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/wharflab/cheetah-lint/internal/checker"
	"github.com/wharflab/cheetah-lint/internal/compiler"
	"github.com/wharflab/cheetah-lint/internal/config"
	"github.com/wharflab/cheetah-lint/internal/reconcile"
	"github.com/wharflab/cheetah-lint/internal/rules"
	_ "github.com/wharflab/cheetah-lint/internal/rules/all" // Register all rules.
	"github.com/wharflab/cheetah-lint/internal/sourcemap"
)

// SyntaxErrorCode is reported when the template does not compile.
const SyntaxErrorCode = "E999"

// Linter produces findings for templates.
type Linter struct {
	Compiler compiler.Compiler
	Checker  checker.Checker
	Config   *config.Config

	// Registry supplies the built-in rules. Nil means the default registry.
	Registry *rules.Registry

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// New creates a Linter. A nil config means config.Default().
func New(c compiler.Compiler, ch checker.Checker, cfg *config.Config) *Linter {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Linter{Compiler: c, Checker: ch, Config: cfg}
}

// Findings lints source (the text of file) and returns its findings in
// template line space, sorted by line, code and message.
//
// A template that fails to compile yields a single E999 finding and no
// other checks run. Checker and I/O failures are returned as
// errors.
func (l *Linter) Findings(ctx context.Context, file, source string) ([]rules.Violation, error) {
	log := l.logger().With(slog.String("file", file))
	sourceLines := sourcemap.Split(source)

	generated, err := l.Compiler.Compile(ctx, source)
	if ce, isCompileErr := compiler.AsCompileError(err); isCompileErr {
		log.Debug("template does not compile", slog.Int("line", ce.Line), slog.String("error", ce.Message))
		return []rules.Violation{
			rules.NewViolation(file, max(ce.Line, 0), SyntaxErrorCode, "SyntaxError: "+ce.Message),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	findings, err := l.generatedFindings(ctx, file, generated, sourceLines)
	if err != nil {
		return nil, err
	}
	findings = append(findings, l.runRules(rules.TargetTemplate, file, sourceLines)...)
	for i := range findings {
		findings[i].File = file
	}
	slices.SortStableFunc(findings, rules.Compare)
	log.Debug("linted", slog.Int("findings", len(findings)))
	return findings, nil
}

func (l *Linter) generatedFindings(
	ctx context.Context,
	file, generated string,
	sourceLines sourcemap.Lines,
) ([]rules.Violation, error) {
	generatedLines := sourcemap.Split(generated)

	found, err := l.Checker.Check(ctx, generated, l.Config.Checker.Select)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", file, err)
	}
	found = append(found, l.runRules(rules.TargetGenerated, file, generatedLines)...)

	r := reconcile.New(generatedLines, sourceLines, l.Config.Flake.ReferenceCodes)
	return FilterBenign(r.NormalizeAll(found), l.Config.Flake.Benign), nil
}

func (l *Linter) runRules(target rules.Target, file string, lines sourcemap.Lines) []rules.Violation {
	input := rules.LintInput{File: file, Lines: lines}
	var out []rules.Violation
	for _, rule := range l.registry().ByTarget(target) {
		out = append(out, rule.Check(input)...)
	}
	return out
}

func (l *Linter) registry() *rules.Registry {
	if l.Registry != nil {
		return l.Registry
	}
	return rules.DefaultRegistry()
}

func (l *Linter) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.New(slog.DiscardHandler)
}
