package reporter

import (
	"cmp"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// MarkdownReporter formats violations as concise markdown tables, suitable
// for pull request comments.
type MarkdownReporter struct {
	writer io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{writer: w}
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(violations []rules.Violation, _ map[string]string, _ ReportMetadata) error {
	if len(violations) == 0 {
		_, err := fmt.Fprintln(r.writer, "**No issues found**")
		return err
	}

	sorted := SortViolationsBySeverity(violations)
	fileSet := make(map[string]struct{})
	for i := range sorted {
		sorted[i].File = filepath.ToSlash(sorted[i].File)
		fileSet[sorted[i].File] = struct{}{}
	}

	if len(fileSet) == 1 {
		return r.writeSingleFileTable(sorted, sorted[0].File)
	}
	return r.writeMultiFileTable(sorted, len(fileSet))
}

func (r *MarkdownReporter) writeSingleFileTable(sorted []rules.Violation, filename string) error {
	if _, err := fmt.Fprintf(r.writer, "**%d %s** in `%s`\n\n",
		len(sorted), pluralize(len(sorted), "issue", "issues"), filename); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, "| Line | Code | Issue |\n|------|------|-------|"); err != nil {
		return err
	}
	for _, v := range sorted {
		if _, err := fmt.Fprintf(r.writer, "| %s | %s | %s %s |\n",
			formatLineNumber(v), v.Code, severityEmoji(v.Severity), escapeMarkdown(v.Message)); err != nil {
			return err
		}
	}
	return nil
}

func (r *MarkdownReporter) writeMultiFileTable(sorted []rules.Violation, fileCount int) error {
	if _, err := fmt.Fprintf(r.writer, "**%d %s** across %d files\n\n",
		len(sorted), pluralize(len(sorted), "issue", "issues"), fileCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.writer, "| File | Line | Code | Issue |\n|------|------|------|-------|"); err != nil {
		return err
	}
	for _, v := range sorted {
		if _, err := fmt.Fprintf(r.writer, "| %s | %s | %s | %s %s |\n",
			v.File, formatLineNumber(v), v.Code, severityEmoji(v.Severity), escapeMarkdown(v.Message)); err != nil {
			return err
		}
	}
	return nil
}

func formatLineNumber(v rules.Violation) string {
	if v.HasKnownLine() {
		return strconv.Itoa(v.Line)
	}
	return "-"
}

// SortViolationsBySeverity sorts violations by severity (errors first),
// then in the canonical order.
func SortViolationsBySeverity(violations []rules.Violation) []rules.Violation {
	sorted := slices.Clone(violations)
	slices.SortStableFunc(sorted, func(a, b rules.Violation) int {
		if c := cmp.Compare(severityPriority(a.Severity), severityPriority(b.Severity)); c != 0 {
			return c
		}
		return rules.Compare(a, b)
	})
	return sorted
}

// severityPriority returns a numeric priority for sorting (lower = more severe).
func severityPriority(s rules.Severity) int {
	switch s {
	case rules.SeverityError:
		return 0
	case rules.SeverityWarning:
		return 1
	case rules.SeverityInfo:
		return 2
	case rules.SeverityStyle:
		return 3
	case rules.SeverityOff:
		return 5
	default:
		return 4
	}
}

func severityEmoji(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "❌"
	case rules.SeverityInfo:
		return "ℹ️"
	case rules.SeverityStyle:
		return "💅"
	default:
		return "⚠️"
	}
}

// escapeMarkdown keeps a message inside one table cell.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
