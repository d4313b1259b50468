// Package doctree parses a Cheetah template into a tree of directives and
// text, just deep enough to rewrite its top-level import block.
//
// Nodes live in an arena and refer to each other by index. Serializing an
// unmodified tree reproduces the parsed text exactly.
package doctree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrExactlyOne is returned by SelectOne when zero or several nodes match.
var ErrExactlyOne = errors.New("expected exactly one match")

// Root is the index of the document node.
const Root = 0

const detached = -1

// Tree is a parsed template.
type Tree struct {
	nodes []Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{nodes: []Node{{Kind: KindRoot, Parent: detached}}}
}

// Node returns the node at i. The pointer is invalidated by Insert.
func (t *Tree) Node(i int) *Node {
	return &t.nodes[i]
}

// Children returns the child indices of i in document order.
func (t *Tree) Children(i int) []int {
	return slices.Clone(t.nodes[i].Children)
}

// Select returns the children of parent for which match is true.
func (t *Tree) Select(parent int, match func(*Node) bool) []int {
	var out []int
	for _, c := range t.nodes[parent].Children {
		if match(&t.nodes[c]) {
			out = append(out, c)
		}
	}
	return out
}

// SelectOne returns the single child of parent matching match.
func (t *Tree) SelectOne(parent int, match func(*Node) bool) (int, error) {
	found := t.Select(parent, match)
	if len(found) != 1 {
		return detached, fmt.Errorf("%w: got %d", ErrExactlyOne, len(found))
	}
	return found[0], nil
}

// Insert adds n as a child of parent at position pos (clamped) and returns
// its index.
func (t *Tree) Insert(parent, pos int, n Node) int {
	n.Children = nil
	t.nodes = append(t.nodes, n)
	idx := len(t.nodes) - 1
	t.attach(parent, pos, idx)
	return idx
}

// Move detaches i and reattaches it under parent at pos.
func (t *Tree) Move(i, parent, pos int) {
	t.Remove(i)
	t.attach(parent, pos, i)
}

// Remove detaches i (and its subtree) from the document.
func (t *Tree) Remove(i int) {
	p := t.nodes[i].Parent
	if p == detached {
		return
	}
	siblings := t.nodes[p].Children
	if at := slices.Index(siblings, i); at >= 0 {
		t.nodes[p].Children = slices.Delete(siblings, at, at+1)
	}
	t.nodes[i].Parent = detached
}

// Replace swaps node i for a new leaf in the same position and returns the
// new node's index.
func (t *Tree) Replace(i int, n Node) int {
	p := t.nodes[i].Parent
	if p == detached {
		return detached
	}
	pos := slices.Index(t.nodes[p].Children, i)
	t.Remove(i)
	return t.Insert(p, pos, n)
}

// NextSibling returns the node after i under the same parent.
func (t *Tree) NextSibling(i int) (int, bool) {
	p := t.nodes[i].Parent
	if p == detached {
		return detached, false
	}
	siblings := t.nodes[p].Children
	at := slices.Index(siblings, i)
	if at < 0 || at+1 >= len(siblings) {
		return detached, false
	}
	return siblings[at+1], true
}

// FirstLeaf returns the first text-bearing node in the subtree of i.
func (t *Tree) FirstLeaf(i int) (int, bool) {
	n := &t.nodes[i]
	if n.IsLeaf() {
		return i, true
	}
	for _, c := range n.Children {
		if leaf, ok := t.FirstLeaf(c); ok {
			return leaf, true
		}
	}
	return detached, false
}

// SetText replaces the text of leaf i.
func (t *Tree) SetText(i int, text string) {
	t.nodes[i].Text = text
}

// Text serializes the subtree rooted at i.
func (t *Tree) Text(i int) string {
	var b strings.Builder
	t.write(&b, i)
	return b.String()
}

// String serializes the document.
func (t *Tree) String() string {
	return t.Text(Root)
}

func (t *Tree) write(b *strings.Builder, i int) {
	n := &t.nodes[i]
	if n.IsLeaf() {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		t.write(b, c)
	}
}

func (t *Tree) attach(parent, pos, i int) {
	children := t.nodes[parent].Children
	pos = max(0, min(pos, len(children)))
	t.nodes[parent].Children = slices.Insert(children, pos, i)
	t.nodes[i].Parent = parent
}
