package reporter

import (
	"io"
	"path/filepath"
	"slices"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// Default SARIF tool information.
const (
	defaultToolName = "cheetah-lint"
	defaultToolURI  = "https://github.com/wharflab/cheetah-lint"
)

// SARIFReporter formats violations as SARIF 2.1.0.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer      io.Writer
	toolName    string
	toolVersion string
	toolURI     string
	registry    *rules.Registry
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{
		writer:      w,
		toolName:    toolName,
		toolVersion: toolVersion,
		toolURI:     toolURI,
		registry:    rules.DefaultRegistry(),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(violations []rules.Violation, _ map[string]string, _ ReportMetadata) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	ruleSet := make(map[string]struct{})
	fileSet := make(map[string]struct{})
	for _, v := range violations {
		ruleSet[v.Code] = struct{}{}
		fileSet[filepath.ToSlash(v.File)] = struct{}{}
	}

	ruleCodes := make([]string, 0, len(ruleSet))
	for code := range ruleSet {
		ruleCodes = append(ruleCodes, code)
	}
	slices.Sort(ruleCodes)
	for _, code := range ruleCodes {
		rule := run.AddRule(code)
		// Checker codes have no registered rule; only built-ins get a description.
		if builtin := r.registry.Get(code); builtin != nil {
			rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(builtin.Metadata().Description))
		}
	}

	files := make([]string, 0, len(fileSet))
	for file := range fileSet {
		files = append(files, file)
	}
	slices.Sort(files)
	for _, file := range files {
		run.AddDistinctArtifact(file)
	}

	for _, v := range SortViolations(violations) {
		filePath := filepath.ToSlash(v.File)

		result := sarif.NewRuleResult(v.Code).
			WithMessage(sarif.NewTextMessage(v.Message)).
			WithLevel(severityToSARIFLevel(v.Severity))

		physicalLocation := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath))
		if v.HasKnownLine() {
			region := sarif.NewRegion().WithStartLine(v.Line)
			if v.SourceCode != "" {
				region.WithSnippet(sarif.NewArtifactContent().WithText(v.SourceCode))
			}
			physicalLocation.WithRegion(region)
		}
		result.WithLocations([]*sarif.Location{
			sarif.NewLocationWithPhysicalLocation(physicalLocation),
		})

		run.AddResult(result)
	}

	report.AddRun(run)
	return report.PrettyWrite(r.writer)
}

// SARIF severity levels.
const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

// severityToSARIFLevel maps our Severity to SARIF levels.
func severityToSARIFLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return sarifLevelError
	case rules.SeverityWarning:
		return sarifLevelWarning
	case rules.SeverityInfo, rules.SeverityStyle, rules.SeverityOff:
		return sarifLevelNote
	default:
		return sarifLevelWarning
	}
}
