package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

func TestMakeLintInput(t *testing.T) {
	t.Parallel()
	content := "#import foo\n$foo\n"
	input := MakeLintInput(t, "test/a.tmpl", content)

	if input.File != "test/a.tmpl" {
		t.Errorf("File = %q, want %q", input.File, "test/a.tmpl")
	}
	if input.Lines.Count() != 2 {
		t.Errorf("Count() = %d, want 2", input.Lines.Count())
	}
	if input.Lines.Join() != content {
		t.Errorf("Join() = %q, want %q", input.Lines.Join(), content)
	}
}

func TestAssertNoViolations(t *testing.T) {
	t.Parallel()
	AssertNoViolations(t, nil)
	AssertNoViolations(t, []rules.Violation{})
}

func TestAssertViolationCount(t *testing.T) {
	t.Parallel()
	v := []rules.Violation{
		rules.NewViolation("a.tmpl", 1, "T005", "File is empty"),
	}

	AssertViolationCount(t, v, 1)
	AssertViolationCount(t, nil, 0)
	AssertViolationCount(t, []rules.Violation{}, 0)
}

func TestMatchGolden(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "golden.tmpl")
	if err := os.WriteFile(path, []byte("#import os\n\tbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	MatchGolden(t, path, "#import os\n\tbody\n")
}
