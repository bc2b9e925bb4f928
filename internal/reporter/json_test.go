package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

func TestJSONReporterReport(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		{
			RuleID:   "style/naming-convention",
			Severity: diagnostic.Warning,
			Message:  "profile names should be PascalCase",
			Location: diagnostic.Location{File: "input.fsh", Offset: 0, Line: 1, Column: 0, EndColumn: 10},
			Suggestions: []diagnostic.Suggestion{
				{
					Description: "rename to MyProfile",
					Safety:      diagnostic.Safe,
					NewText:     "MyProfile",
					Location:    diagnostic.Location{File: "input.fsh", Line: 1, Column: 0, EndColumn: 10},
				},
			},
		},
	}

	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	if err := r.Report(ds, nil, Metadata{FilesChecked: 1, RulesEnabled: 4}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if out.FilesChecked != 1 {
		t.Errorf("FilesChecked = %d, want 1", out.FilesChecked)
	}
	if len(out.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(out.Issues))
	}
	issue := out.Issues[0]
	if issue.RuleID != "style/naming-convention" {
		t.Errorf("RuleID = %q", issue.RuleID)
	}
	if issue.Location.Line != 2 {
		t.Errorf("Location.Line = %d, want 2 (1-based)", issue.Location.Line)
	}
	if issue.Location.Column != 1 {
		t.Errorf("Location.Column = %d, want 1 (1-based)", issue.Location.Column)
	}
	if len(issue.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(issue.Suggestions))
	}
	if !issue.Suggestions[0].IsSafe {
		t.Errorf("expected suggestion to be marked safe")
	}
	if out.Summary.Warnings != 1 {
		t.Errorf("Summary.Warnings = %d, want 1", out.Summary.Warnings)
	}
	if out.Summary.Total != 1 {
		t.Errorf("Summary.Total = %d, want 1", out.Summary.Total)
	}
}

func TestJSONReporterIncludesSourceSnippetWhenAvailable(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		{
			RuleID:   "r",
			Severity: diagnostic.Error,
			Location: diagnostic.Location{File: "input.fsh", Line: 1},
		},
	}
	sources := map[string][]byte{
		"input.fsh": []byte("Profile: Foo\nParent: Patient\n"),
	}

	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	if err := r.Report(ds, sources, Metadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Issues[0].Location.CodeSnippet != "Parent: Patient" {
		t.Errorf("CodeSnippet = %q, want %q", out.Issues[0].Location.CodeSnippet, "Parent: Patient")
	}
}

func TestJSONReporterEmptyDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	if err := r.Report(nil, nil, Metadata{FilesChecked: 3}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Issues) != 0 {
		t.Errorf("expected no issues, got %d", len(out.Issues))
	}
	if out.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0", out.Summary.Total)
	}
}
