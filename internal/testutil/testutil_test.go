package testutil

import (
	"strings"
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/rules"
)

func TestMakeLintInput(t *testing.T) {
	content := "Profile: MyProfile\nParent: Patient\n"
	input := MakeLintInput(t, "test/profile.fsh", content)

	if input.File != "test/profile.fsh" {
		t.Errorf("File = %q, want %q", input.File, "test/profile.fsh")
	}
	if input.Model == nil {
		t.Fatal("Model is nil")
	}
	if string(input.Source) != content {
		t.Errorf("Source = %q, want %q", string(input.Source), content)
	}
	if input.Config != nil {
		t.Error("Config should be nil")
	}
	if len(input.Model.DocumentAST.Profiles()) != 1 {
		t.Errorf("Profiles = %d, want 1", len(input.Model.DocumentAST.Profiles()))
	}
}

func TestMakeLintInputWithConfig(t *testing.T) {
	content := "Profile: MyProfile\nParent: Patient\n"
	config := struct{ Max int }{Max: 100}

	input := MakeLintInputWithConfig(t, "profile.fsh", content, config)

	if input.Config == nil {
		t.Fatal("Config is nil")
	}
	cfg, ok := input.Config.(struct{ Max int })
	if !ok {
		t.Fatalf("Config type = %T, want struct{Max int}", input.Config)
	}
	if cfg.Max != 100 {
		t.Errorf("Config.Max = %d, want 100", cfg.Max)
	}
}

func TestAssertNoDiagnostics(t *testing.T) {
	AssertNoDiagnostics(t, nil)
	AssertNoDiagnostics(t, []diagnostic.Diagnostic{})
}

func TestAssertDiagnosticCount(t *testing.T) {
	d := []diagnostic.Diagnostic{
		{RuleID: "test-rule", Message: "msg", Location: diagnostic.Location{File: "test.fsh", Line: 0}},
	}

	AssertDiagnosticCount(t, d, 1)
	AssertDiagnosticCount(t, nil, 0)
	AssertDiagnosticCount(t, []diagnostic.Diagnostic{}, 0)
}

func TestAssertDiagnosticAt(t *testing.T) {
	d := []diagnostic.Diagnostic{
		{RuleID: "test-rule", Message: "msg", Location: diagnostic.Location{File: "test.fsh", Line: 2}},
	}
	AssertDiagnosticAt(t, d, 2, "test-rule")
}

func TestRunRuleTests(t *testing.T) {
	rule := fakeRule{}
	RunRuleTests(t, rule, []RuleTestCase{
		{Name: "flags bad profile", Content: "Profile: bad_name\nParent: Patient\n", WantDiagnostics: 1, WantRuleIDs: []string{"fake-rule"}, WantMessages: []string{"bad_name"}},
		{Name: "good profile passes", Content: "Profile: GoodName\nParent: Patient\n", WantDiagnostics: 0},
	})
}

// fakeRule flags any Profile whose name contains an underscore, just to
// exercise RunRuleTests end-to-end.
type fakeRule struct{}

func (fakeRule) Metadata() rules.Metadata {
	return rules.Metadata{Code: "fake-rule", Name: "Fake Rule", DefaultSeverity: diagnostic.Error}
}

func (fakeRule) Check(input rules.LintInput) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, p := range input.Model.DocumentAST.Profiles() {
		if strings.Contains(p.Name(), "_") {
			out = append(out, diagnostic.Diagnostic{
				RuleID:  "fake-rule",
				Message: "profile name contains an underscore: " + p.Name(),
				Location: diagnostic.Location{File: input.File},
			})
		}
	}
	return out
}
