package reporter

import (
	"io"
	"path/filepath"
	"sort"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

const (
	defaultToolName = "fshlint"
	defaultToolURI  = "https://github.com/octofhir/fsh-lint"
)

// SARIFReporter formats diagnostics as SARIF 2.1.0, grounded verbatim on
// the teacher's reporter/sarif.go (same owenrumney/go-sarif/v3 API).
type SARIFReporter struct {
	w           io.Writer
	toolName    string
	toolVersion string
	toolURI     string
}

// NewSARIFReporter creates a SARIF reporter writing to w.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{w: w, toolName: toolName, toolVersion: toolVersion, toolURI: toolURI}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(ds []diagnostic.Diagnostic, _ map[string][]byte, _ Metadata) error {
	report := sarif.NewReport()
	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	ruleSet := make(map[string]struct{})
	fileSet := make(map[string]struct{})
	for _, d := range ds {
		ruleSet[d.RuleID] = struct{}{}
		fileSet[filepath.ToSlash(d.Location.File)] = struct{}{}
	}

	ruleCodes := make([]string, 0, len(ruleSet))
	for code := range ruleSet {
		ruleCodes = append(ruleCodes, code)
	}
	sort.Strings(ruleCodes)
	for _, code := range ruleCodes {
		run.AddRule(code)
	}

	files := make([]string, 0, len(fileSet))
	for f := range fileSet {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		run.AddDistinctArtifact(f)
	}

	for _, d := range SortDiagnostics(ds) {
		filePath := filepath.ToSlash(d.Location.File)

		result := sarif.NewRuleResult(d.RuleID).
			WithMessage(sarif.NewTextMessage(d.Message)).
			WithLevel(severityToSARIFLevel(d.Severity))

		region := sarif.NewRegion().
			WithStartLine(d.Location.Line + 1).
			WithStartColumn(d.Location.Column + 1)
		if d.Location.EndLine > d.Location.Line || d.Location.EndColumn > d.Location.Column {
			region.WithEndLine(d.Location.EndLine + 1).WithEndColumn(d.Location.EndColumn + 1)
		}
		if d.Snippet != "" {
			region.WithSnippet(sarif.NewArtifactContent().WithText(d.Snippet))
		}

		physicalLocation := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath)).
			WithRegion(region)

		result.WithLocations([]*sarif.Location{
			sarif.NewLocationWithPhysicalLocation(physicalLocation),
		})

		if fixes := toSARIFFixes(d, filePath); len(fixes) > 0 {
			result.WithFixes(fixes)
		}

		run.AddResult(result)
	}

	report.AddRun(run)
	return report.PrettyWrite(r.w)
}

func toSARIFFixes(d diagnostic.Diagnostic, filePath string) []*sarif.Fix {
	var fixes []*sarif.Fix
	for _, s := range d.Suggestions {
		if s.NewText == "" && s.Location.Length == 0 {
			continue
		}
		replacement := sarif.NewReplacement(
			sarif.NewRegion().
				WithStartLine(s.Location.Line+1).
				WithStartColumn(s.Location.Column+1).
				WithEndLine(s.Location.EndLine+1).
				WithEndColumn(s.Location.EndColumn+1),
		).WithInsertedContent(sarif.NewArtifactContent().WithText(s.NewText))

		change := sarif.NewArtifactChange(sarif.NewSimpleArtifactLocation(filePath)).
			WithReplacements([]*sarif.Replacement{replacement})

		fixes = append(fixes, sarif.NewFix().
			WithDescription(sarif.NewMultiformatMessageString().WithText(s.Description)).
			WithArtifactChanges([]*sarif.ArtifactChange{change}))
	}
	return fixes
}

const (
	sarifLevelError   = "error"
	sarifLevelWarning = "warning"
	sarifLevelNote    = "note"
)

func severityToSARIFLevel(s diagnostic.Severity) string {
	switch s {
	case diagnostic.Error:
		return sarifLevelError
	case diagnostic.Warning:
		return sarifLevelWarning
	case diagnostic.Info, diagnostic.Hint:
		return sarifLevelNote
	default:
		return sarifLevelWarning
	}
}
