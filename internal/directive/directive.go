// Package directive implements inline suppression comments for templates.
//
// A directive is a Cheetah line comment:
//
//	## cheetah-lint ignore=T003,F401
//	## cheetah-lint global ignore=P001 reason=legacy template
//
// A plain directive covers the next line that is neither blank nor a
// "##" comment. A global directive covers the whole template.
package directive

import (
	"math"
	"strings"
)

// Type indicates the scope of a directive.
type Type int

const (
	// TypeNextLine affects only the next code line.
	TypeNextLine Type = iota
	// TypeGlobal affects the entire template.
	TypeGlobal
)

func (t Type) String() string {
	switch t {
	case TypeNextLine:
		return "next-line"
	case TypeGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// LineRange is an inclusive range of 1-based template lines.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether line is within the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// GlobalRange covers every line, including line 0 (unknown).
func GlobalRange() LineRange {
	return LineRange{Start: 0, End: math.MaxInt}
}

// noLines matches nothing.
var noLines = LineRange{Start: -1, End: -1}

// Directive is a parsed suppression comment.
type Directive struct {
	Type Type

	// Codes are code prefixes; "all" suppresses everything.
	Codes []string

	// Line is the 1-based line of the comment.
	Line int

	AppliesTo LineRange

	// Reason is the optional text after reason=.
	Reason string

	RawText string
}

// SuppressesCode reports whether the directive covers code. Codes match
// by prefix, so "F" covers every F code.
func (d *Directive) SuppressesCode(code string) bool {
	for _, c := range d.Codes {
		if strings.EqualFold(c, "all") || strings.HasPrefix(code, c) {
			return true
		}
	}
	return false
}

// SuppressesLine reports whether the directive covers the 1-based line.
func (d *Directive) SuppressesLine(line int) bool {
	return d.AppliesTo.Contains(line)
}
