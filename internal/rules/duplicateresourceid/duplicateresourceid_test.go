package duplicateresourceid

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/octofhir/fsh-lint/internal/rules"
	"github.com/octofhir/fsh-lint/internal/semantic"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

func TestRule_Metadata(t *testing.T) {
	t.Parallel()
	snaps.MatchStandaloneJSON(t, Rule{}.Metadata())
}

func TestBridgesDuplicateResourceIDIssue(t *testing.T) {
	src := "Profile: ProfileA\nId: shared-id\nParent: Patient\n\nProfile: ProfileB\nId: shared-id\nParent: Patient\n"
	result := syntax.Parse(src)
	model := semantic.NewModel(result, []byte(src), "test.fsh")

	diags := Rule{}.Check(rules.LintInput{File: "test.fsh", Model: model, Source: []byte(src)})
	if len(diags) != 2 {
		t.Fatalf("expected 2 bridged diagnostics (one per colliding definition), got %d: %+v", len(diags), diags)
	}
	if diags[0].RuleID != Code {
		t.Errorf("RuleID = %q, want %q", diags[0].RuleID, Code)
	}
}

func TestNoDuplicateIDProducesNoDiagnostics(t *testing.T) {
	src := "Profile: ProfileA\nId: a\nParent: Patient\n"
	result := syntax.Parse(src)
	model := semantic.NewModel(result, []byte(src), "test.fsh")

	diags := Rule{}.Check(rules.LintInput{File: "test.fsh", Model: model, Source: []byte(src)})
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}
