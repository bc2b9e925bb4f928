package namingconvention

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

func input(t *testing.T, src string) rules.LintInput {
	t.Helper()
	result := syntax.Parse(src)
	model := semantic.NewModel(result, []byte(src), "test.fsh")
	return rules.LintInput{File: "test.fsh", Model: model, Source: []byte(src)}
}

func TestGoodNamingProducesNoDiagnostics(t *testing.T) {
	src := "Profile: MyProfile\nId: my-profile\nParent: Patient\n"
	diags := Rule{}.Check(input(t, src))
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestBadProfileNameIsFlagged(t *testing.T) {
	src := "Profile: my_bad_profile\nParent: Patient\n"
	diags := Rule{}.Check(input(t, src))
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %+v", len(diags), diags)
	}
	if diags[0].RuleID != Code {
		t.Errorf("RuleID = %q, want %q", diags[0].RuleID, Code)
	}
}

func TestBadProfileIDIsFlagged(t *testing.T) {
	src := "Profile: MyProfile\nId: My_Bad_ID\nParent: Patient\n"
	diags := Rule{}.Check(input(t, src))
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic for bad id, got %d: %+v", len(diags), diags)
	}
}

func TestExtensionBadNameAndID(t *testing.T) {
	src := "Extension: bad_extension\nId: BadID\n"
	diags := Rule{}.Check(input(t, src))
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics (name + id), got %d: %+v", len(diags), diags)
	}
}

func TestPascalAndKebabConversions(t *testing.T) {
	if got := toPascalCase("my_bad_profile"); got != "MyBadProfile" {
		t.Errorf("toPascalCase = %q", got)
	}
	if got := toKebabCase("MyBadID"); got != "my-bad-id" {
		t.Errorf("toKebabCase = %q", got)
	}
}
