// Package imports parses the Python import statements carried by Cheetah
// #import and #from directives, and sorts them into PEP 8 groups.
package imports

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotImport is returned when an expression is not an import statement.
var ErrNotImport = errors.New("not an import statement")

// Kind distinguishes "import a" from "from a import b".
type Kind int

const (
	KindImport Kind = iota
	KindFrom
)

func (k Kind) String() string {
	if k == KindFrom {
		return "from"
	}
	return "import"
}

// Alias is one imported name with its optional "as" binding.
type Alias struct {
	Name   string
	AsName string
}

func (a Alias) String() string {
	if a.AsName == "" {
		return a.Name
	}
	return a.Name + " as " + a.AsName
}

// Import is a parsed import statement.
type Import struct {
	Kind Kind
	// Module is the source module of a from-import; empty for KindImport.
	Module string
	Names  []Alias
}

// Key identifies an import structurally; two imports with equal keys bind
// the same names from the same place.
type Key struct {
	Kind   Kind
	Module string
	Names  string
}

// Parse reads an import statement such as "import a.b as c, d" or
// "from x import (y as z, w)". A leading '#', a trailing directive closer
// and a "##" comment are ignored.
func Parse(expr string) (Import, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(expr), "#"))
	if i := strings.Index(s, "##"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "#"))

	keyword, rest, _ := strings.Cut(s, " ")
	rest = strings.TrimSpace(rest)
	switch keyword {
	case "import":
		names, err := parseAliases(rest)
		if err != nil {
			return Import{}, fmt.Errorf("%w: %q: %w", ErrNotImport, expr, err)
		}
		return Import{Kind: KindImport, Names: names}, nil
	case "from":
		module, list, ok := cutWord(rest, "import")
		if !ok || module == "" || strings.ContainsAny(module, " \t,") {
			return Import{}, fmt.Errorf("%w: %q", ErrNotImport, expr)
		}
		list = strings.TrimSpace(list)
		if strings.HasPrefix(list, "(") {
			list = strings.TrimSuffix(strings.TrimPrefix(list, "("), ")")
		}
		names, err := parseAliases(list)
		if err != nil {
			return Import{}, fmt.Errorf("%w: %q: %w", ErrNotImport, expr, err)
		}
		return Import{Kind: KindFrom, Module: module, Names: names}, nil
	default:
		return Import{}, fmt.Errorf("%w: %q", ErrNotImport, expr)
	}
}

// cutWord splits s around the first standalone occurrence of word.
func cutWord(s, word string) (before, after string, found bool) {
	fields := strings.Fields(s)
	for i, f := range fields {
		if f == word {
			return strings.Join(fields[:i], " "), strings.Join(fields[i+1:], " "), true
		}
	}
	return "", "", false
}

func parseAliases(list string) ([]Alias, error) {
	var names []Alias
	for part := range strings.SplitSeq(list, ",") {
		fields := strings.Fields(part)
		switch {
		case len(fields) == 0:
			// A trailing comma inside parentheses is legal.
			continue
		case len(fields) == 1:
			names = append(names, Alias{Name: fields[0]})
		case len(fields) == 3 && fields[1] == "as":
			names = append(names, Alias{Name: fields[0], AsName: fields[2]})
		default:
			return nil, fmt.Errorf("malformed name %q", strings.TrimSpace(part))
		}
	}
	if len(names) == 0 {
		return nil, errors.New("no names imported")
	}
	return names, nil
}

// IsMultiple reports whether the statement binds more than one name.
func (imp Import) IsMultiple() bool {
	return len(imp.Names) > 1
}

// Split returns one single-name import per bound name, in order.
func (imp Import) Split() []Import {
	out := make([]Import, 0, len(imp.Names))
	for _, name := range imp.Names {
		out = append(out, Import{Kind: imp.Kind, Module: imp.Module, Names: []Alias{name}})
	}
	return out
}

// Text renders the canonical statement with a trailing newline.
func (imp Import) Text() string {
	names := make([]string, len(imp.Names))
	for i, n := range imp.Names {
		names[i] = n.String()
	}
	joined := strings.Join(names, ", ")
	if imp.Kind == KindFrom {
		return "from " + imp.Module + " import " + joined + "\n"
	}
	return "import " + joined + "\n"
}

// Key returns the structural identity of the statement.
func (imp Import) Key() Key {
	return Key{Kind: imp.Kind, Module: imp.Module, Names: strings.TrimSuffix(imp.Text(), "\n")}
}

// TopModule is the module the statement loads: the from-module, or the
// first imported name.
func (imp Import) TopModule() string {
	if imp.Kind == KindFrom || len(imp.Names) == 0 {
		return imp.Module
	}
	return imp.Names[0].Name
}

// Combine renders imports as consecutive directives.
func Combine(imps []Import) string {
	var b strings.Builder
	for _, imp := range imps {
		b.WriteString("#")
		b.WriteString(imp.Text())
	}
	return b.String()
}
