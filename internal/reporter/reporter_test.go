package reporter

import (
	"bytes"
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"compact", FormatCompact, false},
		{"json", FormatJSON, false},
		{"sarif", FormatSARIF, false},
		{"github-actions", FormatGitHubActions, false},
		{"github", FormatGitHubActions, false},
		{"bogus", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewDispatchesByFormat(t *testing.T) {
	tests := []struct {
		format Format
		want   any
	}{
		{FormatText, &TextReporter{}},
		{FormatCompact, &CompactReporter{}},
		{FormatJSON, &JSONReporter{}},
		{FormatSARIF, &SARIFReporter{}},
		{FormatGitHubActions, &GitHubActionsReporter{}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		r, err := New(Options{Format: tt.format, Writer: &buf})
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.format, err)
		}
		switch tt.want.(type) {
		case *TextReporter:
			if _, ok := r.(*TextReporter); !ok {
				t.Errorf("New(%q) = %T, want *TextReporter", tt.format, r)
			}
		case *CompactReporter:
			if _, ok := r.(*CompactReporter); !ok {
				t.Errorf("New(%q) = %T, want *CompactReporter", tt.format, r)
			}
		case *JSONReporter:
			if _, ok := r.(*JSONReporter); !ok {
				t.Errorf("New(%q) = %T, want *JSONReporter", tt.format, r)
			}
		case *SARIFReporter:
			if _, ok := r.(*SARIFReporter); !ok {
				t.Errorf("New(%q) = %T, want *SARIFReporter", tt.format, r)
			}
		case *GitHubActionsReporter:
			if _, ok := r.(*GitHubActionsReporter); !ok {
				t.Errorf("New(%q) = %T, want *GitHubActionsReporter", tt.format, r)
			}
		}
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New(Options{Format: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewDefaultsWriterToStdout(t *testing.T) {
	r, err := New(Options{Format: FormatJSON})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r == nil {
		t.Fatal("expected non-nil reporter")
	}
}

func TestSortDiagnosticsOrdersByFileThenOffset(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		{RuleID: "b", Location: diagnostic.Location{File: "b.fsh", Offset: 0}},
		{RuleID: "a", Location: diagnostic.Location{File: "a.fsh", Offset: 10}},
		{RuleID: "c", Location: diagnostic.Location{File: "a.fsh", Offset: 0}},
	}

	sorted := SortDiagnostics(ds)
	if len(sorted) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(sorted))
	}
	if sorted[0].RuleID != "c" || sorted[1].RuleID != "a" || sorted[2].RuleID != "b" {
		t.Errorf("unexpected order: %v, %v, %v", sorted[0].RuleID, sorted[1].RuleID, sorted[2].RuleID)
	}

	// original slice must be untouched
	if ds[0].RuleID != "b" {
		t.Errorf("SortDiagnostics mutated its input")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Format != FormatText {
		t.Errorf("DefaultOptions().Format = %q, want text", opts.Format)
	}
	if opts.ToolName != "fshlint" {
		t.Errorf("DefaultOptions().ToolName = %q, want fshlint", opts.ToolName)
	}
}
