package formatter

import (
	"testing"

	"github.com/octofhir/fsh-lint/internal/syntax"
)

func mustParse(t *testing.T, src string) *syntax.ParseResult {
	t.Helper()
	return syntax.Parse(src)
}

func TestRoundTripCleanDocumentHasNoDifferences(t *testing.T) {
	src := "Profile: MyProfile\nParent: Patient\nId: my-profile\n* name 1..1 MS\n"
	res, err := RoundTrip(src, DefaultOptions())
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if !res.OK() {
		t.Errorf("expected no differences, got %+v", res.Differences)
	}
}

func TestRoundTripPreservesRuleCountAndKind(t *testing.T) {
	src := "Profile: MyProfile\nParent: Patient\n* name 1..1 MS\n* active 0..1\n"
	res, err := RoundTrip(src, DefaultOptions())
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	for _, d := range res.Differences {
		if d.Kind == "semantic" {
			t.Errorf("unexpected semantic difference: %s", d.Message)
		}
	}
}

func TestRoundTripDetectsDroppedComment(t *testing.T) {
	src := "Profile: MyProfile\nParent: Patient\n"
	res, err := RoundTrip(src, DefaultOptions())
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	// Formatting this clean document drops nothing, so compareTrivia directly
	// on a forged "formatted" string should surface the missing-comment case.
	diffs := compareTrivia("// keep me\nProfile: X\n", "Profile: X\n")
	if len(diffs) != 1 || diffs[0].Kind != "trivia" {
		t.Errorf("expected one trivia difference for a dropped comment, got %+v", diffs)
	}
	_ = res
}

func TestRoundTripReparsedTextMatchesFormatted(t *testing.T) {
	src := "Profile: MyProfile\nParent: Patient\n* name 1..1 MS\n"
	res, err := RoundTrip(src, DefaultOptions())
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if res.Reparsed != res.Formatted {
		t.Errorf("Reparsed = %q, want exact match with Formatted (lossless CST)", res.Reparsed)
	}
}

func TestCompareSemanticsFlagsDefinitionCountChange(t *testing.T) {
	a := "Profile: A\nParent: Patient\n"
	b := "Profile: A\nParent: Patient\n\nProfile: B\nParent: Patient\n"

	prA := mustParse(t, a)
	prB := mustParse(t, b)

	diffs := compareSemantics(prA.Root, prB.Root)
	if len(diffs) == 0 {
		t.Error("expected a semantic difference for differing definition counts")
	}
}
