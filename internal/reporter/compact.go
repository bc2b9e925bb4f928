package reporter

import (
	"fmt"
	"io"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

// CompactReporter formats one diagnostic per line, for CI log greppability.
// Styled on the teacher's github_actions.go (also one-line-per-diagnostic)
// rather than copied from a single-line formatter the teacher doesn't have.
type CompactReporter struct {
	w io.Writer
}

// NewCompactReporter creates a compact reporter writing to w.
func NewCompactReporter(w io.Writer) *CompactReporter {
	return &CompactReporter{w: w}
}

// Report implements Reporter.
func (r *CompactReporter) Report(ds []diagnostic.Diagnostic, _ map[string][]byte, _ Metadata) error {
	for _, d := range SortDiagnostics(ds) {
		_, err := fmt.Fprintf(r.w, "%s:%d:%d: %s: %s [%s]\n",
			d.Location.File, d.Location.Line+1, d.Location.Column+1,
			d.Severity.String(), d.Message, d.RuleID)
		if err != nil {
			return err
		}
	}
	return nil
}
