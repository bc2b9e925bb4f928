// Package duplicateresourceid surfaces the semantic builder's
// construction-time "duplicate-resource-id" check as an ordinary rule, so
// it participates in the same enable/disable/severity-override
// configuration as every other rule rather than always firing
// unconditionally.
package duplicateresourceid

import (
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/rules"
	"github.com/octofhir/fsh-lint/internal/semantic"
)

// Code is this rule's stable identifier, matching the construction-time
// issue code it bridges from internal/semantic.
const Code = "duplicate-resource-id"

func init() {
	rules.Register(Rule{})
}

// Rule implements rules.Rule.
type Rule struct{}

// Metadata returns static information about the rule.
func (Rule) Metadata() rules.Metadata {
	return rules.Metadata{
		Code:             Code,
		Name:             "duplicate-resource-id",
		Description:      "Two definitions in the same project must not declare the same resource id",
		DefaultSeverity:  diagnostic.Error,
		Category:         "correctness",
		EnabledByDefault: true,
	}
}

// Check surfaces the matching construction-time issues already computed by
// the semantic builder for this file.
func (Rule) Check(input rules.LintInput) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, iss := range input.Model.ConstructionIssues {
		if iss.Code != Code {
			continue
		}
		out = append(out, fromIssue(input.File, input.Model, iss))
	}
	return out
}

func fromIssue(file string, model *semantic.Model, iss semantic.Issue) diagnostic.Diagnostic {
	line, col := model.SourceMap.Position(iss.Offset)
	return diagnostic.Diagnostic{
		RuleID:   Code,
		Severity: diagnostic.Error,
		Message:  iss.Message,
		Category: "correctness",
		Location: diagnostic.Location{
			File: file, Offset: iss.Offset, Line: line, Column: col, EndLine: line, EndColumn: col,
		},
	}
}
