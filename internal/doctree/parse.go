package doctree

import (
	"strings"
)

// blockDirectives open a scope closed by a matching #end line.
var blockDirectives = map[string]bool{
	"block":   true,
	"cache":   true,
	"call":    true,
	"capture": true,
	"closure": true,
	"def":     true,
	"filter":  true,
	"for":     true,
	"if":      true,
	"raw":     true,
	"repeat":  true,
	"try":     true,
	"unless":  true,
	"while":   true,
	"with":    true,
}

const compilerSettings = "compiler-settings"

type parser struct {
	tree    *Tree
	stack   []int
	pending strings.Builder
	pendAt  int

	settings   int
	inRaw      bool
	inComment  bool
	lineNumber int
}

// Parse builds a tree from template text. It never fails: anything that is
// not recognized as a directive is kept as text.
func Parse(text string) *Tree {
	p := &parser{tree: New(), stack: []int{Root}, settings: detached}
	for _, line := range splitLines(text) {
		p.lineNumber++
		p.line(line)
	}
	p.flush()
	return p.tree
}

func (p *parser) parent() int {
	return p.stack[len(p.stack)-1]
}

func (p *parser) line(line string) {
	switch {
	case p.settings != detached:
		n := p.tree.Node(p.settings)
		n.Text += line
		if strings.Contains(line, "#end "+compilerSettings) {
			p.settings = detached
		}
		return
	case p.inComment:
		p.text(line)
		if strings.Contains(line, "*#") {
			p.inComment = false
		}
		return
	}

	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	name := directiveName(body)

	if p.inRaw && name != "end" {
		p.text(line)
		return
	}

	if name == "" {
		if strings.HasPrefix(body, "#*") && !strings.Contains(body[2:], "*#") {
			p.inComment = true
		}
		p.text(line)
		return
	}

	p.text(indent)
	p.flush()

	switch {
	case name == compilerSettings:
		idx := p.tree.Insert(p.parent(), len(p.tree.nodes[p.parent()].Children), Node{
			Kind: KindCompilerSettings,
			Name: name,
			Text: body,
			Line: p.lineNumber,
		})
		if !strings.Contains(body[1:], "#end "+compilerSettings) {
			p.settings = idx
		}
	case name == "end":
		p.leaf(KindDirective, name, body)
		if len(p.stack) > 1 {
			p.stack = p.stack[:len(p.stack)-1]
		}
		p.inRaw = false
	case blockDirectives[name] && !isOneLiner(body, name):
		block := p.tree.Insert(p.parent(), len(p.tree.nodes[p.parent()].Children), Node{
			Kind: KindBlock,
			Name: name,
			Line: p.lineNumber,
		})
		p.stack = append(p.stack, block)
		p.leaf(KindDirective, name, body)
		p.inRaw = name == "raw"
	default:
		p.leaf(KindDirective, name, body)
	}
}

func (p *parser) leaf(kind Kind, name, text string) {
	parent := p.parent()
	p.tree.Insert(parent, len(p.tree.nodes[parent].Children), Node{
		Kind: kind,
		Name: name,
		Text: text,
		Line: p.lineNumber,
	})
}

func (p *parser) text(s string) {
	if s == "" {
		return
	}
	if p.pending.Len() == 0 {
		p.pendAt = p.lineNumber
	}
	p.pending.WriteString(s)
}

func (p *parser) flush() {
	if p.pending.Len() == 0 {
		return
	}
	text := p.pending.String()
	p.pending.Reset()
	kind := KindText
	if strings.TrimSpace(text) == "" {
		kind = KindWhitespace
	}
	parent := p.parent()
	p.tree.Insert(parent, len(p.tree.nodes[parent].Children), Node{
		Kind: kind,
		Text: text,
		Line: p.pendAt,
	})
}

// directiveName returns the keyword of a directive line, or "" when the line
// is not a directive. Comments ("##", "#*") are not directives.
func directiveName(body string) string {
	if len(body) < 2 || body[0] != '#' {
		return ""
	}
	rest := body[1:]
	end := 0
	for end < len(rest) {
		c := rest[end]
		switch {
		case isLetter(c), c == '_':
		case end > 0 && isDigit(c):
		case end > 0 && c == '-' && end+1 < len(rest) && isLetter(rest[end+1]):
		default:
			return rest[:end]
		}
		end++
	}
	return rest[:end]
}

// isOneLiner reports whether a block directive is closed on its own line,
// either by an inline #end or by the "#if cond: body" form.
func isOneLiner(body, name string) bool {
	if strings.Contains(body[1:], "#end "+name) {
		return true
	}
	expr := strings.TrimRight(body[1+len(name):], "\r\n")
	colon := topLevelColon(expr)
	if colon < 0 {
		return false
	}
	rest := strings.TrimSpace(expr[colon+1:])
	rest = strings.TrimSuffix(rest, "#")
	return strings.TrimSpace(rest) != ""
}

// topLevelColon finds the first ':' outside brackets and string literals.
func topLevelColon(expr string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
