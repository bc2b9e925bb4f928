package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

// GitHubActionsReporter formats diagnostics as GitHub Actions workflow
// commands, grounded verbatim on the teacher's reporter/github_actions.go.
type GitHubActionsReporter struct {
	w io.Writer
}

// NewGitHubActionsReporter creates a reporter writing to w.
func NewGitHubActionsReporter(w io.Writer) *GitHubActionsReporter {
	return &GitHubActionsReporter{w: w}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(ds []diagnostic.Diagnostic, _ map[string][]byte, _ Metadata) error {
	for _, d := range SortDiagnostics(ds) {
		level := severityToGitHubLevel(d.Severity)
		filePath := filepath.ToSlash(d.Location.File)

		parts := []string{
			"file=" + escapeGitHubProperty(filePath),
			fmt.Sprintf("line=%d", d.Location.Line+1),
			fmt.Sprintf("col=%d", d.Location.Column+1),
			"title=" + escapeGitHubProperty(d.RuleID),
		}

		message := escapeGitHubMessage(fmt.Sprintf("%s (%s)", d.Message, d.RuleID))

		if _, err := fmt.Fprintf(r.w, "::%s %s::%s\n", level, strings.Join(parts, ","), message); err != nil {
			return err
		}
	}
	return nil
}

const (
	ghLevelError   = "error"
	ghLevelWarning = "warning"
	ghLevelNotice  = "notice"
)

func severityToGitHubLevel(s diagnostic.Severity) string {
	switch s {
	case diagnostic.Error:
		return ghLevelError
	case diagnostic.Warning:
		return ghLevelWarning
	case diagnostic.Info, diagnostic.Hint:
		return ghLevelNotice
	default:
		return ghLevelWarning
	}
}

func escapeGitHubMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

func escapeGitHubProperty(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
