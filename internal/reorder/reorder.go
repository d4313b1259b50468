// Package reorder rewrites the import block of a Cheetah template: one name
// per directive, no duplicates, PEP 8 groups below the header, and a single
// blank line before the body.
package reorder

import (
	"strings"

	"github.com/wharflab/cheetah-lint/internal/directives"
	"github.com/wharflab/cheetah-lint/internal/doctree"
	"github.com/wharflab/cheetah-lint/internal/imports"
)

// Step transforms a freshly parsed tree and returns the new document text.
type Step struct {
	Name  string
	Apply func(*doctree.Tree) string
}

// Steps returns the rewrite pipeline in execution order.
func Steps(sorter imports.Sorter) []Step {
	return []Step{
		{Name: "split-combined-imports", Apply: SplitCombinedImports},
		{Name: "remove-duplicate-imports", Apply: RemoveDuplicateImports},
		{Name: "apply-import-ordering", Apply: func(t *doctree.Tree) string {
			return ApplyImportOrdering(t, sorter)
		}},
		{Name: "fix-whitespace-after-imports", Apply: FixWhitespaceAfterImports},
	}
}

// PerformStep parses text and applies a single step to it.
func PerformStep(text string, step Step) string {
	return step.Apply(doctree.Parse(text))
}

// Run applies every step once. The result is a fixed point: running it
// again yields the same text.
func Run(text string, sorter imports.Sorter) string {
	for _, step := range Steps(sorter) {
		text = PerformStep(text, step)
	}
	return text
}

// SplitCombinedImports replaces "#import a, b" with one directive per name.
func SplitCombinedImports(t *doctree.Tree) string {
	for _, d := range directives.AllImports(t) {
		if !d.Import.IsMultiple() {
			continue
		}
		t.Replace(d.Node, doctree.Node{
			Kind: doctree.KindImports,
			Text: imports.Combine(d.Import.Split()),
		})
	}
	return t.String()
}

// RemoveDuplicateImports drops every import that repeats an earlier one.
func RemoveDuplicateImports(t *doctree.Tree) string {
	seen := make(map[imports.Key]struct{})
	for _, d := range directives.AllImports(t) {
		key := d.Import.Key()
		if _, dup := seen[key]; dup {
			t.Remove(d.Node)
			continue
		}
		seen[key] = struct{}{}
	}
	return t.String()
}

// ApplyImportOrdering moves all top-level imports to the top of the
// document in sorted groups, below the header directives when present.
func ApplyImportOrdering(t *doctree.Tree, sorter imports.Sorter) string {
	header := directives.Header(t)

	found := directives.AllImports(t)
	all := make([]imports.Import, 0, len(found))
	for _, d := range found {
		t.Remove(d.Node)
		all = append(all, d.Import)
	}

	groups := sorter.Sort(all)
	blocks := make([]string, 0, len(groups))
	for _, g := range groups {
		blocks = append(blocks, imports.Combine(g))
	}
	t.Insert(doctree.Root, 0, doctree.Node{
		Kind: doctree.KindImports,
		Text: strings.Join(blocks, "\n"),
	})

	if len(header) > 0 {
		t.Insert(doctree.Root, 0, doctree.Node{Kind: doctree.KindWhitespace, Text: "\n"})
		for i := len(header) - 1; i >= 0; i-- {
			t.Move(header[i], doctree.Root, 0)
		}
	}
	return t.String()
}

// FixWhitespaceAfterImports leaves exactly one blank line between the last
// header or import directive and whatever follows it, and ends the document
// with a single newline. Documents without such a directive, or with
// nothing after it, are returned unchanged.
func FixWhitespaceAfterImports(t *doctree.Tree) string {
	managed := t.Select(doctree.Root, directives.IsHeaderOrImport)
	if len(managed) == 0 {
		return t.String()
	}
	next, ok := t.NextSibling(managed[len(managed)-1])
	if !ok {
		return t.String()
	}
	leaf, ok := t.FirstLeaf(next)
	if !ok {
		return t.String()
	}
	// The directive already ends its own line.
	t.SetText(leaf, "\n"+strings.TrimLeft(t.Node(leaf).Text, "\n"))
	return strings.TrimRight(t.String(), "\n") + "\n"
}
