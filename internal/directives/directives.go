// Package directives locates the top-level directives the import rewrite
// cares about: the header (compiler settings, #extends, #implements) and
// the #import / #from statements.
package directives

import (
	"github.com/wharflab/cheetah-lint/internal/doctree"
	"github.com/wharflab/cheetah-lint/internal/imports"
)

// ImportDirective ties a parsed import to the tree node it came from.
type ImportDirective struct {
	Node   int
	Import imports.Import
}

// CompilerSettings returns the single top-level #compiler-settings block.
// It reports false when there is none or more than one.
func CompilerSettings(t *doctree.Tree) (int, bool) {
	return one(t, func(n *doctree.Node) bool {
		return n.Kind == doctree.KindCompilerSettings
	})
}

// Extends returns the single top-level #extends directive.
func Extends(t *doctree.Tree) (int, bool) {
	return one(t, named("extends"))
}

// Implements returns the single top-level #implements directive.
func Implements(t *doctree.Tree) (int, bool) {
	return one(t, named("implements"))
}

// Header returns the header directives that are present, in header order.
func Header(t *doctree.Tree) []int {
	var header []int
	for _, find := range []func(*doctree.Tree) (int, bool){CompilerSettings, Extends, Implements} {
		if idx, ok := find(t); ok {
			header = append(header, idx)
		}
	}
	return header
}

// ImportImports returns top-level "#import x" directives in document order.
func ImportImports(t *doctree.Tree) []ImportDirective {
	return collect(t, imports.KindImport)
}

// FromImports returns top-level "#from x import y" directives in document
// order.
func FromImports(t *doctree.Tree) []ImportDirective {
	return collect(t, imports.KindFrom)
}

// AllImports returns the "#import" directives followed by the "#from"
// directives.
func AllImports(t *doctree.Tree) []ImportDirective {
	return append(ImportImports(t), FromImports(t)...)
}

// IsHeaderOrImport reports whether a top-level node belongs to the block
// the rewrite manages.
func IsHeaderOrImport(n *doctree.Node) bool {
	if n.Kind == doctree.KindCompilerSettings {
		return true
	}
	if n.Kind != doctree.KindDirective {
		return false
	}
	switch n.Name {
	case "extends", "implements":
		return true
	case "import", "from":
		_, err := imports.Parse(n.Text)
		return err == nil
	}
	return false
}

func collect(t *doctree.Tree, kind imports.Kind) []ImportDirective {
	var out []ImportDirective
	for _, idx := range t.Select(doctree.Root, named(kind.String())) {
		imp, err := imports.Parse(t.Node(idx).Text)
		if err != nil {
			continue
		}
		out = append(out, ImportDirective{Node: idx, Import: imp})
	}
	return out
}

func named(name string) func(*doctree.Node) bool {
	return func(n *doctree.Node) bool {
		return n.Kind == doctree.KindDirective && n.Name == name
	}
}

func one(t *doctree.Tree, match func(*doctree.Node) bool) (int, bool) {
	idx, err := t.SelectOne(doctree.Root, match)
	return idx, err == nil
}
