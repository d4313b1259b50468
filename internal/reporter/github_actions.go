package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wharflab/cheetah-lint/internal/rules"
)

// GitHubActionsReporter formats violations as GitHub Actions workflow commands.
//
// Format: ::{level} file={file},line={line},title={code}::{message}
//
// See: https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions#setting-an-error-message
type GitHubActionsReporter struct {
	writer io.Writer
}

// NewGitHubActionsReporter creates a new GitHub Actions reporter.
func NewGitHubActionsReporter(w io.Writer) *GitHubActionsReporter {
	return &GitHubActionsReporter{writer: w}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(violations []rules.Violation, _ map[string]string, _ ReportMetadata) error {
	for _, v := range SortViolations(violations) {
		parts := []string{"file=" + escapeGitHubProperty(filepath.ToSlash(v.File))}
		if v.HasKnownLine() {
			parts = append(parts, fmt.Sprintf("line=%d", v.Line))
		}
		parts = append(parts, "title="+escapeGitHubProperty(v.Code))

		if _, err := fmt.Fprintf(r.writer, "::%s %s::%s\n",
			severityToGitHubLevel(v.Severity),
			strings.Join(parts, ","),
			escapeGitHubMessage(v.Message),
		); err != nil {
			return err
		}
	}
	return nil
}

// GitHub Actions annotation levels.
const (
	ghLevelError   = "error"
	ghLevelWarning = "warning"
	ghLevelNotice  = "notice"
)

func severityToGitHubLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return ghLevelError
	case rules.SeverityInfo, rules.SeverityStyle:
		return ghLevelNotice
	default:
		return ghLevelWarning
	}
}

// escapeGitHubMessage escapes "%", "\r" and "\n" in command messages.
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeGitHubProperty additionally escapes ":" and "," in properties.
func escapeGitHubProperty(s string) string {
	s = escapeGitHubMessage(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
