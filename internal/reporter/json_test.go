package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

func TestJSONReporter(t *testing.T) {
	violations := []rules.Violation{
		{File: "foo.tmpl", Line: 5, Code: "F401", Message: "'os' imported but unused", Severity: rules.SeverityWarning},
		{File: "foo.tmpl", Line: 2, Code: "E999", Message: "SyntaxError: bad", Severity: rules.SeverityError},
	}

	var buf bytes.Buffer
	reporter := NewJSONReporter(&buf)

	if err := reporter.Report(violations, nil, ReportMetadata{FilesScanned: 3, RulesEnabled: 7}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var output JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if len(output.Files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(output.Files))
	}
	if output.Files[0].File != "foo.tmpl" {
		t.Errorf("Expected file 'foo.tmpl', got %q", output.Files[0].File)
	}
	got := output.Files[0].Violations
	if len(got) != 2 {
		t.Fatalf("Expected 2 violations, got %d", len(got))
	}
	if got[0].Line != 2 || got[1].Line != 5 {
		t.Errorf("Expected violations in line order, got %d then %d", got[0].Line, got[1].Line)
	}

	if output.Summary.Total != 2 {
		t.Errorf("Expected total 2, got %d", output.Summary.Total)
	}
	if output.Summary.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", output.Summary.Errors)
	}
	if output.Summary.Warnings != 1 {
		t.Errorf("Expected 1 warning, got %d", output.Summary.Warnings)
	}
	if output.FilesScanned != 3 || output.RulesEnabled != 7 {
		t.Errorf("Unexpected metadata: files=%d rules=%d", output.FilesScanned, output.RulesEnabled)
	}
}

func TestJSONReporterMultipleFiles(t *testing.T) {
	violations := []rules.Violation{
		rules.NewViolation("b.tmpl", 1, "T001", "Cheetah directive T001"),
		rules.NewViolation("a.tmpl", 1, "T005", "empty template"),
		rules.NewViolation("a.tmpl", 4, "T003", "Indentation in a directive"),
	}

	var buf bytes.Buffer
	if err := NewJSONReporter(&buf).Report(violations, nil, ReportMetadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var output JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if len(output.Files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(output.Files))
	}
	if output.Files[0].File != "a.tmpl" || output.Files[1].File != "b.tmpl" {
		t.Errorf("Unexpected file order: %q, %q", output.Files[0].File, output.Files[1].File)
	}
	if len(output.Files[0].Violations) != 2 {
		t.Errorf("Expected 2 violations in a.tmpl, got %d", len(output.Files[0].Violations))
	}
	if output.Summary.Files != 2 {
		t.Errorf("Expected summary files 2, got %d", output.Summary.Files)
	}
}

func TestJSONReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf).Report(nil, nil, ReportMetadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var output JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if output.Files == nil {
		t.Error("Expected empty files array, got null")
	}
	if output.Summary.Total != 0 {
		t.Errorf("Expected total 0, got %d", output.Summary.Total)
	}
}
