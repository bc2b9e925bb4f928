package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

func TestSARIFReporterReportProducesValidJSON(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		{
			RuleID:   "style/naming-convention",
			Severity: diagnostic.Warning,
			Message:  "profile names should be PascalCase",
			Location: diagnostic.Location{File: "input.fsh", Offset: 0, Line: 1, Column: 0, EndLine: 1, EndColumn: 10},
		},
		{
			RuleID:   "correctness/duplicate-resource-id",
			Severity: diagnostic.Error,
			Message:  "duplicate id",
			Location: diagnostic.Location{File: "input.fsh", Offset: 50, Line: 5, Column: 0},
		},
	}

	var buf bytes.Buffer
	r := NewSARIFReporter(&buf, "fshlint", "1.2.3", "")
	if err := r.Report(ds, nil, Metadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if doc["version"] != "2.1.0" {
		t.Errorf("version = %v, want 2.1.0", doc["version"])
	}
	runs, ok := doc["runs"].([]any)
	if !ok || len(runs) != 1 {
		t.Fatalf("expected exactly one run, got %v", doc["runs"])
	}
	run := runs[0].(map[string]any)
	results, ok := run["results"].([]any)
	if !ok || len(results) != 2 {
		t.Fatalf("expected 2 results, got %v", run["results"])
	}
}

func TestSARIFReporterDefaultsToolIdentity(t *testing.T) {
	var buf bytes.Buffer
	r := NewSARIFReporter(&buf, "", "", "")
	if r.toolName != defaultToolName {
		t.Errorf("toolName = %q, want %q", r.toolName, defaultToolName)
	}
	if r.toolURI != defaultToolURI {
		t.Errorf("toolURI = %q, want %q", r.toolURI, defaultToolURI)
	}
}

func TestSeverityToSARIFLevel(t *testing.T) {
	tests := []struct {
		severity diagnostic.Severity
		want     string
	}{
		{diagnostic.Error, "error"},
		{diagnostic.Warning, "warning"},
		{diagnostic.Info, "note"},
		{diagnostic.Hint, "note"},
	}

	for _, tt := range tests {
		if got := severityToSARIFLevel(tt.severity); got != tt.want {
			t.Errorf("severityToSARIFLevel(%v) = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestSARIFReporterEmptyDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	r := NewSARIFReporter(&buf, "", "", "")
	if err := r.Report(nil, nil, Metadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	runs := doc["runs"].([]any)
	run := runs[0].(map[string]any)
	if results, ok := run["results"].([]any); ok && len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
