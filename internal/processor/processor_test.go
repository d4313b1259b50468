package processor

import (
	"testing"

	"github.com/wharflab/cheetah-lint/internal/config"
	"github.com/wharflab/cheetah-lint/internal/rules"
)

type mockProcessor struct {
	name   string
	filter func(rules.Violation) bool
}

func (m *mockProcessor) Name() string { return m.name }

func (m *mockProcessor) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	return filterViolations(violations, m.filter)
}

func TestChain(t *testing.T) {
	t.Parallel()
	violations := []rules.Violation{
		rules.NewViolation("a.tmpl", 1, "F401", "message1"),
		rules.NewViolation("b.tmpl", 2, "T003", "message2"),
	}

	chain := NewChain(&mockProcessor{name: "filter-all", filter: func(rules.Violation) bool { return false }})
	ctx := NewContext(nil, config.Default(), nil)

	result := chain.Process(violations, ctx)
	if len(result) != 0 {
		t.Errorf("expected 0 violations, got %d", len(result))
	}
}

func TestPathNormalization(t *testing.T) {
	t.Parallel()
	violations := []rules.Violation{
		rules.NewViolation("path\\to\\file.tmpl", 1, "F401", "msg"),
	}

	result := NewPathNormalization().Process(violations, NewContext(nil, config.Default(), nil))
	if len(result) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(result))
	}
	if result[0].File != "path/to/file.tmpl" {
		t.Errorf("expected path/to/file.tmpl, got %s", result[0].File)
	}
}

func TestDeduplication(t *testing.T) {
	t.Parallel()
	violations := []rules.Violation{
		rules.NewViolation("file.tmpl", 1, "F401", "'a' imported but unused"),
		// duplicate
		rules.NewViolation("file.tmpl", 1, "F401", "'a' imported but unused"),
		// same line and code, different name
		rules.NewViolation("file.tmpl", 1, "F401", "'b' imported but unused"),
		// different line
		rules.NewViolation("file.tmpl", 2, "F401", "'a' imported but unused"),
	}

	result := NewDeduplication().Process(violations, NewContext(nil, config.Default(), nil))
	if len(result) != 3 {
		t.Errorf("expected 3 violations after dedup, got %d", len(result))
	}
}

func TestSorting(t *testing.T) {
	t.Parallel()
	violations := []rules.Violation{
		rules.NewViolation("b.tmpl", 1, "F401", "x"),
		rules.NewViolation("a.tmpl", 10, "F401", "x"),
		rules.NewViolation("a.tmpl", 2, "T003", "x"),
		rules.NewViolation("a.tmpl", 2, "F841", "x"),
		rules.NewViolation("a.tmpl", 0, "E999", "x"),
	}

	result := NewSorting().Process(violations, NewContext(nil, config.Default(), nil))

	want := []struct {
		file string
		line int
		code string
	}{
		{"a.tmpl", 0, "E999"},
		{"a.tmpl", 2, "F841"},
		{"a.tmpl", 2, "T003"},
		{"a.tmpl", 10, "F401"},
		{"b.tmpl", 1, "F401"},
	}
	for i, w := range want {
		got := result[i]
		if got.File != w.file || got.Line != w.line || got.Code != w.code {
			t.Errorf("position %d: got %s:%d %s, want %s:%d %s", i, got.File, got.Line, got.Code, w.file, w.line, w.code)
		}
	}
	if violations[0].File != "b.tmpl" {
		t.Error("input slice was modified")
	}
}

func TestEnableFilter(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Rules.Ignore = []string{"T"}
	cfg.Rules.Select = []string{"F", "T001"}

	violations := []rules.Violation{
		rules.NewViolation("file.tmpl", 1, "F401", "msg"),
		rules.NewViolation("file.tmpl", 1, "T003", "msg"),
		rules.NewViolation("file.tmpl", 1, "T001", "msg"),
		rules.NewViolation("file.tmpl", 1, "P001", "msg"),
		{File: "file.tmpl", Line: 1, Code: "F841", Severity: rules.SeverityOff},
	}

	result := NewEnableFilter().Process(violations, NewContext(nil, cfg, nil))
	var codes []string
	for _, v := range result {
		codes = append(codes, v.Code)
	}
	if len(codes) != 2 || codes[0] != "F401" || codes[1] != "T001" {
		t.Errorf("expected [F401 T001], got %v", codes)
	}
}

func TestSeverityOverride(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Rules.Severity = map[string]string{"T003": "ERROR", "P001": "off", "F401": "bogus"}

	violations := []rules.Violation{
		rules.NewViolation("file.tmpl", 1, "T003", "msg"),
		rules.NewViolation("file.tmpl", 1, "P001", "msg"),
		rules.NewViolation("file.tmpl", 1, "F401", "msg"),
	}

	result := NewSeverityOverride().Process(violations, NewContext(nil, cfg, nil))
	if result[0].Severity != rules.SeverityError {
		t.Errorf("T003: expected error, got %s", result[0].Severity)
	}
	if result[1].Severity != rules.SeverityOff {
		t.Errorf("P001: expected off, got %s", result[1].Severity)
	}
	if result[2].Severity != rules.SeverityError {
		t.Errorf("F401: invalid override should keep error, got %s", result[2].Severity)
	}
}

func TestSeverityOverride_PerFileConfig(t *testing.T) {
	t.Parallel()
	strict := config.Default()
	strict.Rules.Severity = map[string]string{"T003": "error"}

	ctx := NewContext(map[string]*config.Config{"strict/a.tmpl": strict}, config.Default(), nil)
	result := NewSeverityOverride().Process([]rules.Violation{
		rules.NewViolation("strict/a.tmpl", 1, "T003", "msg"),
		rules.NewViolation("lax/b.tmpl", 1, "T003", "msg"),
	}, ctx)

	if result[0].Severity != rules.SeverityError {
		t.Errorf("strict file: expected error, got %s", result[0].Severity)
	}
	if result[1].Severity != rules.SeverityForCode("T003") {
		t.Errorf("lax file: expected default severity, got %s", result[1].Severity)
	}
}

func TestPathExclusionFilter(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Rules.PerFileIgnores = []config.PerFileIgnore{
		{Paths: []string{"legacy/**"}, Codes: []string{"T00"}},
	}

	violations := []rules.Violation{
		rules.NewViolation("legacy/old.tmpl", 1, "T003", "msg"),
		rules.NewViolation("legacy/old.tmpl", 1, "F401", "msg"),
		rules.NewViolation("new/page.tmpl", 1, "T003", "msg"),
	}

	result := NewPathExclusionFilter().Process(violations, NewContext(nil, cfg, nil))
	if len(result) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(result))
	}
	if result[0].Code != "F401" || result[1].File != "new/page.tmpl" {
		t.Errorf("unexpected survivors: %+v", result)
	}
}

func TestCLIProcessors(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	ctx := NewContext(nil, cfg, map[string]string{"dir/a.tmpl": "#import os\n\tbody\n"})

	result := CLIProcessors().Process([]rules.Violation{
		rules.NewViolation("dir\\a.tmpl", 2, "T003", "Indentation contains tabs"),
		rules.NewViolation("dir\\a.tmpl", 1, "F401", "'os' imported but unused"),
		rules.NewViolation("dir\\a.tmpl", 1, "F401", "'os' imported but unused"),
	}, ctx)

	if len(result) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(result))
	}
	if result[0].Code != "F401" || result[0].SourceCode != "#import os" {
		t.Errorf("unexpected first violation: %+v", result[0])
	}
	if result[1].Code != "T003" || result[1].SourceCode != "\tbody" {
		t.Errorf("unexpected second violation: %+v", result[1])
	}
}

func TestCLIProcessors_KeepsFindingsBesideSyntaxError(t *testing.T) {
	t.Parallel()
	ctx := NewContext(nil, config.Default(), nil)

	result := CLIProcessors().Process([]rules.Violation{
		rules.NewViolation("a.tmpl", 3, "F401", "'os' imported but unused"),
		rules.NewViolation("a.tmpl", 3, "E999", "SyntaxError: invalid syntax"),
	}, ctx)

	if len(result) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(result), result)
	}
	if result[0].Code != "E999" || result[1].Code != "F401" {
		t.Errorf("expected E999 then F401, got %s then %s", result[0].Code, result[1].Code)
	}
}
