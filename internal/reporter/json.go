package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

// JSONOutput is the top-level envelope for --format json, matching the
// Diagnostic JSON envelope defined in spec.md §6.
type JSONOutput struct {
	FilesChecked int         `json:"files_checked"`
	Issues       []JSONIssue `json:"issues"`
	Summary      JSONSummary `json:"summary"`
}

// JSONIssue is one diagnostic in the JSON envelope.
type JSONIssue struct {
	RuleID      string           `json:"rule_id"`
	Severity    string           `json:"severity"`
	Message     string           `json:"message"`
	Location    JSONLocation     `json:"location"`
	Suggestions []JSONSuggestion `json:"suggestions,omitempty"`
}

// JSONLocation is a diagnostic's location in the JSON envelope, 1-based
// line/column per spec.md §6.
type JSONLocation struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	EndColumn   int    `json:"end_column,omitempty"`
	CodeSnippet string `json:"code_snippet,omitempty"`
}

// JSONSuggestion is one autofix candidate in the JSON envelope.
type JSONSuggestion struct {
	Message     string       `json:"message"`
	Replacement string       `json:"replacement"`
	Location    JSONLocation `json:"location"`
	IsSafe      bool         `json:"is_safe"`
}

// JSONSummary is the aggregate counts block in the JSON envelope.
type JSONSummary struct {
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Info         int `json:"info"`
	Hints        int `json:"hints"`
	Total        int `json:"total"`
	FixesApplied int `json:"fixes_applied"`
}

// JSONReporter formats diagnostics as the JSON envelope.
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a JSON reporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ds []diagnostic.Diagnostic, sources map[string][]byte, metadata Metadata) error {
	sorted := SortDiagnostics(ds)

	issues := make([]JSONIssue, 0, len(sorted))
	for _, d := range sorted {
		issues = append(issues, toJSONIssue(d, sources))
	}

	out := JSONOutput{
		FilesChecked: metadata.FilesChecked,
		Issues:       issues,
		Summary:      summarize(sorted, metadata.FixesApplied),
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONIssue(d diagnostic.Diagnostic, sources map[string][]byte) JSONIssue {
	issue := JSONIssue{
		RuleID:   d.RuleID,
		Severity: d.Severity.String(),
		Message:  d.Message,
		Location: toJSONLocation(d.Location, sources),
	}
	for _, s := range d.Suggestions {
		issue.Suggestions = append(issue.Suggestions, JSONSuggestion{
			Message:     s.Description,
			Replacement: s.NewText,
			Location:    toJSONLocation(s.Location, nil),
			IsSafe:      s.Safety == diagnostic.Safe,
		})
	}
	return issue
}

func toJSONLocation(loc diagnostic.Location, sources map[string][]byte) JSONLocation {
	out := JSONLocation{
		File:      filepath.ToSlash(loc.File),
		Line:      loc.Line + 1,
		Column:    loc.Column + 1,
		EndColumn: loc.EndColumn + 1,
	}
	if sources != nil {
		if src, ok := sources[loc.File]; ok {
			out.CodeSnippet = snippetLine(src, loc.Line)
		}
	}
	return out
}

func snippetLine(source []byte, line int) string {
	start := 0
	current := 0
	for i, b := range source {
		if current == line {
			start = i
			break
		}
		if b == '\n' {
			current++
		}
	}
	if current != line {
		return ""
	}
	end := start
	for end < len(source) && source[end] != '\n' {
		end++
	}
	return string(source[start:end])
}

func summarize(ds []diagnostic.Diagnostic, fixesApplied int) JSONSummary {
	counts := diagnostic.CountBySeverity(ds)
	return JSONSummary{
		Errors:       counts[diagnostic.Error],
		Warnings:     counts[diagnostic.Warning],
		Info:         counts[diagnostic.Info],
		Hints:        counts[diagnostic.Hint],
		Total:        len(ds),
		FixesApplied: fixesApplied,
	}
}
