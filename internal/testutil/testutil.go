// Package testutil provides test helpers for the FSH linter.
package testutil

import (
	"strings"
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/rules"
	"github.com/octofhir/fsh-lint/internal/semantic"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// MakeLintInput parses content and builds a semantic model for it, then
// constructs the LintInput struct a rule's Check expects. Parse errors
// (if any) are not treated as fatal here — rules are expected to tolerate
// a partially-recovered tree, matching the parser's error-recovery
// contract.
func MakeLintInput(tb testing.TB, file, content string) rules.LintInput {
	tb.Helper()

	result := syntax.Parse(content)
	model := semantic.NewModel(result, []byte(content), file)

	return rules.LintInput{
		File:   file,
		Model:  model,
		Source: []byte(content),
	}
}

// MakeLintInputWithConfig creates a LintInput with rule configuration.
func MakeLintInputWithConfig(tb testing.TB, file, content string, config any) rules.LintInput {
	tb.Helper()

	input := MakeLintInput(tb, file, content)
	input.Config = config
	return input
}

// RuleTestCase defines a test case for table-driven rule tests.
type RuleTestCase struct {
	// Name is the test case name.
	Name string

	// Content is the FSH source to lint.
	Content string

	// Config is the optional rule configuration.
	Config any

	// WantDiagnostics is the expected number of diagnostics.
	// Use -1 to skip the count check.
	WantDiagnostics int

	// WantRuleIDs is the expected rule IDs in diagnostic order (for
	// detailed checks).
	WantRuleIDs []string

	// WantMessages are substrings expected in diagnostic messages, by
	// position.
	WantMessages []string
}

// RunRuleTests runs a table of test cases against a rule.
func RunRuleTests(t *testing.T, rule rules.Rule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			input := MakeLintInputWithConfig(t, "test.fsh", tc.Content, tc.Config)
			diags := rule.Check(input)

			if tc.WantDiagnostics >= 0 && len(diags) != tc.WantDiagnostics {
				t.Errorf("got %d diagnostics, want %d", len(diags), tc.WantDiagnostics)
				for i, d := range diags {
					t.Logf("  [%d] %s: %s", i, d.RuleID, d.Message)
				}
			}

			if len(tc.WantRuleIDs) > 0 {
				if len(diags) != len(tc.WantRuleIDs) {
					t.Errorf("got %d diagnostics, want %d", len(diags), len(tc.WantRuleIDs))
				} else {
					for i, id := range tc.WantRuleIDs {
						if diags[i].RuleID != id {
							t.Errorf("diagnostic[%d].RuleID = %q, want %q", i, diags[i].RuleID, id)
						}
					}
				}
			}

			if len(tc.WantMessages) > 0 {
				for i, msg := range tc.WantMessages {
					if i >= len(diags) {
						t.Errorf(
							"expected diagnostic[%d] with message containing %q, but only got %d diagnostics",
							i, msg, len(diags),
						)
						continue
					}
					if !strings.Contains(diags[i].Message, msg) {
						t.Errorf("diagnostic[%d].Message = %q, want substring %q", i, diags[i].Message, msg)
					}
				}
			}
		})
	}
}

// AssertNoDiagnostics fails the test if there are any diagnostics.
func AssertNoDiagnostics(tb testing.TB, diags []diagnostic.Diagnostic) {
	tb.Helper()
	if len(diags) > 0 {
		tb.Errorf("expected no diagnostics, got %d:", len(diags))
		for _, d := range diags {
			tb.Logf("  - %s at line %d: %s", d.RuleID, d.Location.Line, d.Message)
		}
	}
}

// AssertDiagnosticCount fails if the diagnostic count doesn't match.
func AssertDiagnosticCount(tb testing.TB, diags []diagnostic.Diagnostic, want int) {
	tb.Helper()
	if len(diags) != want {
		tb.Errorf("got %d diagnostics, want %d", len(diags), want)
		for _, d := range diags {
			tb.Logf("  - %s at line %d: %s", d.RuleID, d.Location.Line, d.Message)
		}
	}
}

// AssertDiagnosticAt fails if there's no diagnostic at the given 0-based
// line with the given rule ID.
func AssertDiagnosticAt(tb testing.TB, diags []diagnostic.Diagnostic, line int, ruleID string) {
	tb.Helper()
	for _, d := range diags {
		if d.Location.Line == line && d.RuleID == ruleID {
			return
		}
	}
	tb.Errorf("expected diagnostic %q at line %d, not found", ruleID, line)
	tb.Logf("diagnostics:")
	for _, d := range diags {
		tb.Logf("  - %s at line %d: %s", d.RuleID, d.Location.Line, d.Message)
	}
}
