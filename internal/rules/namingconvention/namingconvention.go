// Package namingconvention checks FSH definition names and ids against
// PascalCase/kebab-case conventions, grounded on the original
// implementation's naming.rs: Profile, Extension, ValueSet, and CodeSystem
// names should be PascalCase; their ids should be kebab-case.
package namingconvention

import (
	"fmt"
	"strings"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/rules"
)

// Code is this rule's stable identifier.
const Code = "style/naming-convention"

func init() {
	rules.Register(Rule{})
}

// Rule implements rules.Rule.
type Rule struct{}

// Metadata returns static information about the rule.
func (Rule) Metadata() rules.Metadata {
	return rules.Metadata{
		Code:             Code,
		Name:             "naming-convention",
		Description:      "Profile/Extension/ValueSet/CodeSystem names should be PascalCase and their ids kebab-case",
		DefaultSeverity:  diagnostic.Warning,
		Category:         "style",
		EnabledByDefault: true,
	}
}

type namedWithID interface {
	ast.Definition
	ID() string
}

// Check runs the naming convention rule against input.
func (Rule) Check(input rules.LintInput) []diagnostic.Diagnostic {
	doc := input.Model.DocumentAST
	var out []diagnostic.Diagnostic

	for _, p := range doc.Profiles() {
		out = append(out, checkNamedWithID(input, "Profile", p)...)
	}
	for _, e := range doc.Extensions() {
		out = append(out, checkNamedWithID(input, "Extension", e)...)
	}
	for _, vs := range doc.ValueSets() {
		out = append(out, checkNamedWithID(input, "ValueSet", vs)...)
	}
	for _, cs := range doc.CodeSystems() {
		out = append(out, checkNamedWithID(input, "CodeSystem", cs)...)
	}
	return out
}

func checkNamedWithID(input rules.LintInput, kindLabel string, def namedWithID) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	name := def.Name()
	if name != "" && !isPascalCase(name) {
		out = append(out, diag(input, def.Node().Offset(), def.Node().EndOffset(),
			fmt.Sprintf("%s name %q should use PascalCase (e.g. %q)", kindLabel, name, toPascalCase(name)),
			toPascalCase(name)))
	}
	id := def.ID()
	if id != "" && !isKebabCase(id) {
		out = append(out, diag(input, def.Node().Offset(), def.Node().EndOffset(),
			fmt.Sprintf("%s id %q should use kebab-case (e.g. %q)", kindLabel, id, toKebabCase(id)),
			toKebabCase(id)))
	}
	return out
}

func diag(input rules.LintInput, offset, end int, message, replacement string) diagnostic.Diagnostic {
	startLine, startCol := input.Model.SourceMap.Position(offset)
	endLine, endCol := input.Model.SourceMap.Position(end)
	loc := diagnostic.Location{
		File: input.File, Offset: offset, Length: end - offset,
		Line: startLine, Column: startCol, EndLine: endLine, EndColumn: endCol,
	}
	return diagnostic.Diagnostic{
		RuleID:   Code,
		Severity: diagnostic.Warning,
		Message:  message,
		Location: loc,
		Category: "style",
		Suggestions: []diagnostic.Suggestion{{
			Description: "rename to follow convention",
			Safety:      diagnostic.Unsafe, // renames ripple through every reference
			NewText:     replacement,
			Location:    loc,
		}},
	}
}

func isPascalCase(s string) bool {
	if s == "" {
		return false
	}
	first := rune(s[0])
	if first < 'A' || first > 'Z' {
		return false
	}
	if strings.ContainsAny(s, "_- ") {
		return false
	}
	for _, c := range s {
		if c >= 'a' && c <= 'z' {
			return true
		}
	}
	return false
}

func isKebabCase(s string) bool {
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, "_ ") {
		return false
	}
	for _, c := range s {
		if c >= 'A' && c <= 'Z' {
			return false
		}
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}

func toPascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	var sb strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(w[:1]))
		sb.WriteString(strings.ToLower(w[1:]))
	}
	return sb.String()
}

func toKebabCase(s string) string {
	var sb strings.Builder
	prevLower := false
	for i, c := range s {
		switch {
		case c == '_' || c == ' ':
			sb.WriteByte('-')
			prevLower = false
		case c >= 'A' && c <= 'Z':
			if i > 0 && prevLower {
				sb.WriteByte('-')
			}
			sb.WriteRune(c - 'A' + 'a')
			prevLower = false
		default:
			sb.WriteRune(c)
			prevLower = c >= 'a' && c <= 'z'
		}
	}
	return sb.String()
}
