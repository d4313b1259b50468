package reporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"text", FormatText, false},
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"sarif", FormatSARIF, false},
		{"github-actions", FormatGitHubActions, false},
		{"github", FormatGitHubActions, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"unknown", "", true},
		{"TEXT", "", true}, // Case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && format != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, format, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"sarif", FormatSARIF, false},
		{"github-actions", FormatGitHubActions, false},
		{"markdown", FormatMarkdown, false},
		{"unknown", Format("unknown"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := New(Options{Format: tt.format, Writer: &buf})
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && rep == nil {
				t.Error("New() returned nil reporter")
			}
		})
	}
}

func TestNewTextReport(t *testing.T) {
	noColor := false
	var buf bytes.Buffer
	rep, err := New(Options{Format: FormatText, Writer: &buf, Color: &noColor})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	violations := []rules.Violation{
		rules.NewViolation("foo.tmpl", 3, "T003", "Indentation in a directive"),
	}
	if err := rep.Report(violations, nil, ReportMetadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if buf.String() != "foo.tmpl:3 T003 Indentation in a directive\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestGetWriter(t *testing.T) {
	for _, path := range []string{"", "stdout", "stderr"} {
		w, closeFn, err := GetWriter(path)
		if err != nil {
			t.Fatalf("GetWriter(%q) error = %v", path, err)
		}
		want := os.Stdout
		if path == "stderr" {
			want = os.Stderr
		}
		if w != want {
			t.Errorf("GetWriter(%q) returned unexpected writer", path)
		}
		if err := closeFn(); err != nil {
			t.Errorf("close for %q returned %v", path, err)
		}
	}
}

func TestGetWriterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	w, closeFn, err := GetWriter(path)
	if err != nil {
		t.Fatalf("GetWriter() error = %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("Expected 'hello', got %q", content)
	}
}

func TestGetWriterInvalidPath(t *testing.T) {
	if _, _, err := GetWriter(filepath.Join(t.TempDir(), "missing", "out.txt")); err == nil {
		t.Error("Expected error for invalid path")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Format != FormatText {
		t.Errorf("Expected format text, got %v", opts.Format)
	}
	if opts.ToolName != "cheetah-lint" {
		t.Errorf("Expected tool name cheetah-lint, got %q", opts.ToolName)
	}
}
