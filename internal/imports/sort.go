package imports

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Group is a PEP 8 import section.
type Group int

const (
	GroupFuture Group = iota
	GroupStdlib
	GroupThirdParty
	GroupApplication
	groupCount
)

func (g Group) String() string {
	switch g {
	case GroupFuture:
		return "future"
	case GroupStdlib:
		return "stdlib"
	case GroupThirdParty:
		return "third-party"
	case GroupApplication:
		return "application"
	default:
		return "unknown"
	}
}

// Sorter groups and orders imports.
//
// Application code is recognized either by name (ApplicationModules) or by
// a package or module of that name existing under one of
// ApplicationDirectories.
type Sorter struct {
	ApplicationModules     []string
	ApplicationDirectories []string
}

// Classify returns the group a module belongs to.
func (s Sorter) Classify(module string) Group {
	if strings.HasPrefix(module, ".") {
		return GroupApplication
	}
	top, _, _ := strings.Cut(module, ".")
	switch {
	case top == "__future__":
		return GroupFuture
	case slices.Contains(s.ApplicationModules, top):
		return GroupApplication
	case s.inApplicationDirectory(top):
		return GroupApplication
	case IsStdlib(top):
		return GroupStdlib
	default:
		return GroupThirdParty
	}
}

func (s Sorter) inApplicationDirectory(top string) bool {
	for _, dir := range s.ApplicationDirectories {
		if info, err := os.Stat(filepath.Join(dir, top)); err == nil && info.IsDir() {
			return true
		}
		if info, err := os.Stat(filepath.Join(dir, top+".py")); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// Sort partitions imports into non-empty groups in section order. Within a
// group "import" statements come before "from" statements, then modules and
// names are compared case-insensitively.
func (s Sorter) Sort(imps []Import) [][]Import {
	var groups [groupCount][]Import
	for _, imp := range imps {
		g := s.Classify(imp.TopModule())
		groups[g] = append(groups[g], imp)
	}

	var out [][]Import
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		slices.SortStableFunc(group, compareImports)
		out = append(out, group)
	}
	return out
}

func compareImports(a, b Import) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(strings.ToLower(a.TopModule()), strings.ToLower(b.TopModule())); c != 0 {
		return c
	}
	at, bt := a.Text(), b.Text()
	if c := cmp.Compare(strings.ToLower(at), strings.ToLower(bt)); c != 0 {
		return c
	}
	return cmp.Compare(at, bt)
}
