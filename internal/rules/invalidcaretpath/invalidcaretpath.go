// Package invalidcaretpath validates caret paths in CaretValueRule lines,
// grounded on the original implementation's caret_path.rs: a caret path
// like "^foo..bar" (consecutive dots), "^foo[]" (empty brackets), or
// "^foo[bar" (unbalanced brackets) is a malformed path that SUSHI would
// reject at compile time.
package invalidcaretpath

import (
	"fmt"
	"strings"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/rules"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Code is this rule's stable identifier.
const Code = "correctness/invalid-caret-path"

func init() {
	rules.Register(Rule{})
}

// Rule implements rules.Rule.
type Rule struct{}

// Metadata returns static information about the rule.
func (Rule) Metadata() rules.Metadata {
	return rules.Metadata{
		Code:             Code,
		Name:             "invalid-caret-path",
		Description:      "Caret paths must not contain consecutive dots, empty brackets, or unbalanced brackets",
		DefaultSeverity:  diagnostic.Error,
		Category:         "correctness",
		EnabledByDefault: true,
	}
}

// Check runs the invalid-caret-path rule against input.
func (Rule) Check(input rules.LintInput) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, def := range input.Model.DocumentAST.Definitions() {
		for _, r := range rulesOf(def) {
			if r.Kind() != syntax.CaretValueRule {
				continue
			}
			if d, ok := validate(input, r); ok {
				out = append(out, d)
			}
		}
	}
	return out
}

func rulesOf(def ast.Definition) []ast.Rule {
	type ruleLister interface{ Rules() []ast.Rule }
	if rl, ok := def.(ruleLister); ok {
		return rl.Rules()
	}
	return nil
}

func validate(input rules.LintInput, r ast.Rule) (diagnostic.Diagnostic, bool) {
	path := r.Path()
	var reason string
	switch {
	case strings.Contains(path, ".."):
		reason = fmt.Sprintf("invalid caret path %q: contains consecutive dots (..)", path)
	case strings.Contains(path, "[]"):
		reason = fmt.Sprintf("invalid caret path %q: contains empty brackets []", path)
	case strings.Count(path, "[") != strings.Count(path, "]"):
		reason = fmt.Sprintf("invalid caret path %q: unbalanced brackets", path)
	default:
		return diagnostic.Diagnostic{}, false
	}

	offset, end := r.Node().Offset(), r.Node().EndOffset()
	startLine, startCol := input.Model.SourceMap.Position(offset)
	endLine, endCol := input.Model.SourceMap.Position(end)
	return diagnostic.Diagnostic{
		RuleID:   Code,
		Severity: diagnostic.Error,
		Message:  reason,
		Category: "correctness",
		Location: diagnostic.Location{
			File: input.File, Offset: offset, Length: end - offset,
			Line: startLine, Column: startCol, EndLine: endLine, EndColumn: endCol,
		},
	}, true
}
