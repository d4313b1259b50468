package doctree

// Kind classifies a node.
type Kind int

const (
	// KindRoot is the document node; it has no text of its own.
	KindRoot Kind = iota
	// KindText is template content that is not a directive.
	KindText
	// KindWhitespace is a run of blank lines or indentation.
	KindWhitespace
	// KindDirective is a single-line directive, terminator included.
	KindDirective
	// KindCompilerSettings is a whole #compiler-settings block.
	KindCompilerSettings
	// KindBlock groups a block directive, its body and its #end line.
	KindBlock
	// KindImports is a run of import directives inserted by a rewrite.
	KindImports
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindText:
		return "text"
	case KindWhitespace:
		return "whitespace"
	case KindDirective:
		return "directive"
	case KindCompilerSettings:
		return "compiler-settings"
	case KindBlock:
		return "block"
	case KindImports:
		return "imports"
	default:
		return "unknown"
	}
}

// Node is an entry in the tree arena.
//
// Leaves carry Text; KindRoot and KindBlock carry Children instead.
type Node struct {
	Kind Kind
	// Name is the directive keyword ("import", "extends", "def"); empty for
	// non-directives.
	Name string
	Text string
	// Line is the 1-based line the node starts on in the parsed text (0 for
	// inserted nodes).
	Line     int
	Parent   int
	Children []int
}

// IsLeaf reports whether the node holds text directly.
func (n *Node) IsLeaf() bool {
	return n.Kind != KindRoot && n.Kind != KindBlock
}
