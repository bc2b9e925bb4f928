package fix

import (
	"strings"
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

func suggestion(offset, length int, text string, safety diagnostic.Safety, priority int) diagnostic.Suggestion {
	return diagnostic.Suggestion{
		Description: "test fix",
		Safety:      safety,
		Priority:    priority,
		NewText:     text,
		Location:    diagnostic.Location{File: "input.fsh", Offset: offset, Length: length},
	}
}

func diagWithSuggestion(s diagnostic.Suggestion) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{
		RuleID:      "test/rule",
		Location:    s.Location,
		Suggestions: []diagnostic.Suggestion{s},
	}
}

// TestFixerSafeAutofixDryRun encodes spec's S4 scenario.
func TestFixerSafeAutofixDryRun(t *testing.T) {
	original := []byte("12345678rest-of-file")
	ds := []diagnostic.Diagnostic{
		diagWithSuggestion(suggestion(0, 8, "modified", diagnostic.Safe, 0)),
	}
	sources := map[string][]byte{"input.fsh": original}

	f := &Fixer{Config: Config{DryRun: true}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if result.TotalApplied() != 1 {
		t.Fatalf("TotalApplied() = %d, want 1", result.TotalApplied())
	}

	fc := result.Changes[normalizePath("input.fsh")]
	if !strings.HasPrefix(string(fc.ModifiedContent), "modified") {
		t.Errorf("ModifiedContent = %q, want prefix %q", fc.ModifiedContent, "modified")
	}
	// DryRun never writes to disk itself; OriginalContent must still be
	// the source that was passed in, for the caller to diff against.
	if string(fc.OriginalContent) != string(original) {
		t.Errorf("OriginalContent was mutated")
	}
}

// TestFixerUnsafeFiltering encodes spec's S5 scenario.
func TestFixerUnsafeFiltering(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		diagWithSuggestion(suggestion(0, 4, "safe", diagnostic.Safe, 0)),
		diagWithSuggestion(suggestion(10, 4, "unsf", diagnostic.Unsafe, 0)),
	}
	sources := map[string][]byte{"input.fsh": []byte("0000000000uuuu")}

	f := &Fixer{Config: Config{DryRun: true}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if result.TotalApplied() != 1 {
		t.Errorf("TotalApplied() with apply_unsafe=false = %d, want 1", result.TotalApplied())
	}

	f2 := &Fixer{Config: Config{DryRun: true, ApplyUnsafe: true}}
	result2, _, err := f2.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if result2.TotalApplied() != 2 {
		t.Errorf("TotalApplied() with apply_unsafe=true = %d, want 2", result2.TotalApplied())
	}
}

// TestFixerConflictResolution encodes spec's S6 scenario: A [0,10) priority
// 1, B [5,15) priority 2, C [20,25) priority 1 — expected survivors {B, C}.
func TestFixerConflictResolution(t *testing.T) {
	content := make([]byte, 30)
	for i := range content {
		content[i] = 'x'
	}

	a := suggestion(0, 10, "A", diagnostic.Safe, 1)
	b := suggestion(5, 10, "B", diagnostic.Safe, 2)
	c := suggestion(20, 5, "C", diagnostic.Safe, 1)

	ds := []diagnostic.Diagnostic{
		diagWithSuggestion(a),
		diagWithSuggestion(b),
		diagWithSuggestion(c),
	}
	sources := map[string][]byte{"input.fsh": content}

	f := &Fixer{Config: Config{DryRun: true}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	fc := result.Changes[normalizePath("input.fsh")]
	if len(fc.FixesApplied) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %+v", len(fc.FixesApplied), fc.FixesApplied)
	}

	survivedText := make(map[string]bool)
	for _, applied := range fc.FixesApplied {
		survivedText[applied.Suggestion.NewText] = true
	}
	if !survivedText["B"] || !survivedText["C"] {
		t.Errorf("expected survivors {B, C}, got %v", survivedText)
	}
	if survivedText["A"] {
		t.Errorf("A should have been dropped in favor of higher-priority B")
	}
}

func TestFixerRuleFilterSkipsNonMatchingRules(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		{RuleID: "a/rule", Location: diagnostic.Location{File: "input.fsh"}, Suggestions: []diagnostic.Suggestion{suggestion(0, 1, "x", diagnostic.Safe, 0)}},
		{RuleID: "b/rule", Location: diagnostic.Location{File: "input.fsh"}, Suggestions: []diagnostic.Suggestion{suggestion(5, 1, "y", diagnostic.Safe, 0)}},
	}
	sources := map[string][]byte{"input.fsh": []byte("0123456789")}

	f := &Fixer{Config: Config{DryRun: true, RuleFilter: []string{"a/rule"}}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if result.TotalApplied() != 1 {
		t.Errorf("TotalApplied() = %d, want 1", result.TotalApplied())
	}
	fc := result.Changes[normalizePath("input.fsh")]
	if len(fc.FixesApplied) != 1 || fc.FixesApplied[0].RuleID != "a/rule" {
		t.Errorf("expected only a/rule applied, got %+v", fc.FixesApplied)
	}
}

func TestFixerDropsEmptySuggestions(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		{RuleID: "r", Location: diagnostic.Location{File: "input.fsh"}, Suggestions: []diagnostic.Suggestion{
			{Location: diagnostic.Location{File: "input.fsh", Offset: 0, Length: 0}, NewText: ""},
		}},
	}
	sources := map[string][]byte{"input.fsh": []byte("content")}

	f := &Fixer{Config: Config{DryRun: true}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	fc := result.Changes[normalizePath("input.fsh")]
	if len(fc.FixesSkipped) != 1 || fc.FixesSkipped[0].Reason != SkipNoEdit {
		t.Errorf("expected one SkipNoEdit skip, got %+v", fc.FixesSkipped)
	}
}

func TestFixerRejectsUnbalancedResultWhenValidateSyntaxEnabled(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		diagWithSuggestion(suggestion(0, 1, "(", diagnostic.Safe, 0)),
	}
	sources := map[string][]byte{"input.fsh": []byte("x")}

	f := &Fixer{Config: Config{DryRun: true, ValidateSyntax: true}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	fc := result.Changes[normalizePath("input.fsh")]
	if len(fc.FixesApplied) != 0 {
		t.Errorf("expected fix to be rejected by validation, got %+v", fc.FixesApplied)
	}
	if string(fc.ModifiedContent) != string(fc.OriginalContent) {
		t.Errorf("expected content to be restored to original after validation failure")
	}
	if len(fc.FixesSkipped) != 1 || fc.FixesSkipped[0].Reason != SkipValidation {
		t.Errorf("expected SkipValidation skip, got %+v", fc.FixesSkipped)
	}
}

func TestFixerMaxFixesPerFile(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		diagWithSuggestion(suggestion(0, 1, "a", diagnostic.Safe, 2)),
		diagWithSuggestion(suggestion(2, 1, "b", diagnostic.Safe, 1)),
	}
	sources := map[string][]byte{"input.fsh": []byte("0123456789")}

	f := &Fixer{Config: Config{DryRun: true, MaxFixesPerFile: 1}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if result.TotalApplied() != 1 {
		t.Errorf("TotalApplied() = %d, want 1", result.TotalApplied())
	}
	if result.TotalSkipped() != 1 {
		t.Errorf("TotalSkipped() = %d, want 1", result.TotalSkipped())
	}
}

func TestResultFilesModified(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		diagWithSuggestion(suggestion(0, 1, "a", diagnostic.Safe, 0)),
	}
	sources := map[string][]byte{
		"changed.fsh":   []byte("0123456789"),
		"unchanged.fsh": []byte("0123456789"),
	}
	// Point the only suggestion at changed.fsh specifically.
	ds[0].Location.File = "changed.fsh"
	ds[0].Suggestions[0].Location.File = "changed.fsh"

	f := &Fixer{Config: Config{DryRun: true}}
	result, _, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if result.FilesModified() != 1 {
		t.Errorf("FilesModified() = %d, want 1", result.FilesModified())
	}
}
