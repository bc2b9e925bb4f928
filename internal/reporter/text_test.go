package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

func noColor() *bool {
	b := false
	return &b
}

func TestTextReporterReportPlain(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		{
			RuleID:   "style/naming-convention",
			Severity: diagnostic.Warning,
			Message:  "profile names should be PascalCase",
			Location: diagnostic.Location{File: "input.fsh", Offset: 0, Line: 0, Column: 9},
			Suggestions: []diagnostic.Suggestion{
				{Description: "rename to MyProfile"},
			},
		},
	}
	sources := map[string][]byte{
		"input.fsh": []byte("Profile: my_bad_profile\nParent: Patient\n"),
	}

	var buf bytes.Buffer
	r := NewTextReporter(&buf, TextOptions{Color: noColor(), ShowSource: true})
	if err := r.Report(ds, sources, Metadata{FilesChecked: 1, RulesEnabled: 4}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "input.fsh:1:10: WARNING: style/naming-convention") {
		t.Errorf("missing header, got:\n%s", out)
	}
	if !strings.Contains(out, "profile names should be PascalCase") {
		t.Errorf("missing message, got:\n%s", out)
	}
	if !strings.Contains(out, "Profile: my_bad_profile") {
		t.Errorf("missing source snippet, got:\n%s", out)
	}
	if !strings.Contains(out, "suggestion: rename to MyProfile") {
		t.Errorf("missing suggestion line, got:\n%s", out)
	}
	if !strings.Contains(out, "1 problem(s) (0 error(s), 1 warning(s))") {
		t.Errorf("missing summary line, got:\n%s", out)
	}
}

func TestTextReporterColorEnabledRespectsExplicitOption(t *testing.T) {
	r := NewTextReporter(&bytes.Buffer{}, TextOptions{Color: noColor()})
	if r.colorEnabled() {
		t.Error("expected color disabled when Color option is explicit false")
	}

	on := true
	r2 := NewTextReporter(&bytes.Buffer{}, TextOptions{Color: &on})
	if !r2.colorEnabled() {
		t.Error("expected color enabled when Color option is explicit true")
	}
}

func TestTextReporterColorEnabledFalseForNonTerminalWriter(t *testing.T) {
	r := NewTextReporter(&bytes.Buffer{}, TextOptions{})
	if r.colorEnabled() {
		t.Error("expected color disabled for a non-*os.File writer with no explicit option")
	}
}

func TestCaretSpanSingleColumnForMultilineSpan(t *testing.T) {
	if got := caretSpan(2, 5, 0, 1); got != "^" {
		t.Errorf("caretSpan across lines = %q, want single caret", got)
	}
}

func TestCaretSpanWidthMatchesColumnRange(t *testing.T) {
	if got := caretSpan(2, 5, 0, 0); got != "^^^" {
		t.Errorf("caretSpan same-line = %q, want 3 carets", got)
	}
}

func TestStyleForDoesNotPanicForAnySeverity(t *testing.T) {
	for _, s := range []diagnostic.Severity{diagnostic.Error, diagnostic.Warning, diagnostic.Info, diagnostic.Hint} {
		_ = styleFor(s).Styled("x")
	}
}
