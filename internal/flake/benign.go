package flake

import (
	"github.com/wharflab/cheetah-lint/internal/config"
	"github.com/wharflab/cheetah-lint/internal/rules"
)

const (
	unusedAssignmentCode = "F841"
	unusedImportCode     = "F401"
)

// FilterBenign drops findings the compiler causes on valid templates: the
// helper locals it assigns in every method and the imports it adds to
// every module.
func FilterBenign(findings []rules.Violation, benign config.BenignConfig) []rules.Violation {
	drop := make(map[[2]string]struct{}, len(benign.UnusedAssignments)+len(benign.UnusedImports))
	for _, name := range benign.UnusedAssignments {
		drop[[2]string{unusedAssignmentCode, "local variable '" + name + "' is assigned to but never used"}] = struct{}{}
	}
	for _, name := range benign.UnusedImports {
		drop[[2]string{unusedImportCode, "'" + name + "' imported but unused"}] = struct{}{}
	}

	out := findings[:0:0]
	for _, f := range findings {
		if _, ok := drop[[2]string{f.Code, f.Message}]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}
