package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// MatchGolden compares content against the golden file at path, byte for byte.
//
// Templates are whitespace sensitive, so the comparison never normalizes
// tabs or line endings. Set UPDATE_GOLDEN=true to rewrite the file.
func MatchGolden(tb testing.TB, path, content string) {
	tb.Helper()

	if os.Getenv("UPDATE_GOLDEN") == "true" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			tb.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // test-only golden file
			tb.Fatalf("write golden: %v", err)
		}
		return
	}

	prev, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("golden file not found: %s\nRun with UPDATE_GOLDEN=true to create", path)
	}
	if string(prev) != content {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(prev), content, true)
		diffs = dmp.DiffCleanupSemanticLossless(diffs)
		patches := dmp.PatchMake(string(prev), diffs)
		tb.Errorf("golden mismatch: %s\n%s", path, dmp.PatchToText(patches))
	}
}
