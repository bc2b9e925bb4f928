package rules

import (
	"strings"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/pattern"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// CustomRule is a Rule built at load time from a rule file (see loader.go)
// rather than compiled into the binary. Its Check walks every top-level
// definition in a document and reports one diagnostic per node the
// compiled GritQL-like pattern matches.
type CustomRule struct {
	code          string
	name          string
	description   string
	docURL        string
	severity      diagnostic.Severity
	category      string
	matcher       *pattern.Matcher
	autofix       *CustomAutofix
}

// CustomAutofix is the autofix half of a loaded rule file: a textual
// replacement template applied to the whole matched node's span.
type CustomAutofix struct {
	Description         string
	ReplacementTemplate string
	Safety              diagnostic.Safety
}

// Metadata returns static information about the rule.
func (r *CustomRule) Metadata() Metadata {
	return Metadata{
		Code:             r.code,
		Name:             r.name,
		Description:      r.description,
		DocURL:           r.docURL,
		DefaultSeverity:  r.severity,
		Category:         r.category,
		EnabledByDefault: true,
	}
}

// hasRules is implemented by every definition kind that carries a list of
// rule lines (everything except Alias and Invariant).
type hasRules interface{ Rules() []ast.Rule }

// Check runs the compiled pattern against every definition in the document
// and, for NodeTypes naming a rule kind (CardRule, FlagRule, ...), against
// every rule line nested under each definition too — a GritQL-like pattern
// targets whichever level its NodeType names.
func (r *CustomRule) Check(input LintInput) []diagnostic.Diagnostic {
	doc := input.Model.DocumentAST
	var out []diagnostic.Diagnostic
	for _, def := range doc.Definitions() {
		if nodeType := definitionNodeType(def.Kind()); nodeType != "" {
			if r.matcher.Match(nodeType, definitionContext{def}) {
				out = append(out, r.diagnosticForNode(input, def.Node(), definitionContext{def}))
			}
		}
		withRules, ok := def.(hasRules)
		if !ok {
			continue
		}
		for _, rule := range withRules.Rules() {
			nodeType := ruleNodeType(rule.Kind())
			if nodeType == "" {
				continue
			}
			if !r.matcher.Match(nodeType, ruleContext{rule}) {
				continue
			}
			out = append(out, r.diagnosticForNode(input, rule.Node(), ruleContext{rule}))
		}
	}
	return out
}

func (r *CustomRule) diagnosticForNode(input LintInput, n *syntax.SyntaxNode, ctx pattern.Context) diagnostic.Diagnostic {
	startLine, startCol := input.Model.SourceMap.Position(n.Offset())
	endLine, endCol := input.Model.SourceMap.Position(n.EndOffset())
	loc := diagnostic.Location{
		File: input.File, Offset: n.Offset(), Length: n.EndOffset() - n.Offset(),
		Line: startLine, Column: startCol, EndLine: endLine, EndColumn: endCol,
	}

	d := diagnostic.Diagnostic{
		RuleID:   r.code,
		Severity: r.severity,
		Message:  r.description,
		Location: loc,
		Category: r.category,
	}
	if r.autofix != nil {
		d.Suggestions = []diagnostic.Suggestion{{
			Description: r.autofix.Description,
			Safety:      r.autofix.Safety,
			NewText:     expandTemplate(r.autofix.ReplacementTemplate, ctx),
			Location:    loc,
		}}
	}
	return d
}

// expandTemplate substitutes the handful of placeholders a rule file's
// replacement_template may reference: {{name}}, {{parent}}, {{id}}, {{title}},
// {{path}}, {{value}}.
func expandTemplate(tmpl string, ctx pattern.Context) string {
	field := func(name string) string {
		v, _ := ctx.Field(name)
		return v
	}
	replacer := strings.NewReplacer(
		"{{name}}", field("name"),
		"{{parent}}", field("parent"),
		"{{id}}", field("id"),
		"{{title}}", field("title"),
		"{{path}}", field("path"),
		"{{value}}", field("value"),
	)
	return replacer.Replace(tmpl)
}

// definitionNodeType maps a top-level definition's syntax.Kind to the
// NodeType vocabulary documented in spec.md §4.4 / the original
// implementation's gritql_ast.rs NodeType enum ("Profile", "Extension",
// ...), not the internal syntax.Kind constant spelling ("ProfileNode").
func definitionNodeType(k syntax.Kind) string {
	switch k {
	case syntax.AliasNode:
		return "Alias"
	case syntax.ProfileNode:
		return "Profile"
	case syntax.ExtensionNode:
		return "Extension"
	case syntax.ValueSetNode:
		return "ValueSet"
	case syntax.CodeSystemNode:
		return "CodeSystem"
	case syntax.InstanceNode:
		return "Instance"
	case syntax.InvariantNode:
		return "Invariant"
	case syntax.MappingNode:
		return "Mapping"
	case syntax.LogicalNode:
		return "Logical"
	case syntax.ResourceNode:
		return "Resource"
	case syntax.RuleSetNode:
		return "RuleSet"
	default:
		return ""
	}
}

// ruleNodeType maps a rule line's syntax.Kind to its NodeType vocabulary
// name. These are the canonical spellings in the original's alias table
// (pattern_parser.rs's parse_node_type); internal/pattern.normalizeNodeType
// resolves a pattern file's shorthand ("Cardinality", "Flag", ...) to these
// same strings before a Matcher ever sees them.
func ruleNodeType(k syntax.Kind) string {
	switch k {
	case syntax.CardRule:
		return "CardRule"
	case syntax.FlagRule:
		return "FlagRule"
	case syntax.ValuesetRule:
		return "ValueSetRule"
	case syntax.FixedValueRule:
		return "FixedValueRule"
	case syntax.ContainsRule:
		return "ContainsRule"
	case syntax.OnlyRule:
		return "OnlyRule"
	case syntax.ObeysRule:
		return "ObeysRule"
	case syntax.CaretValueRule:
		return "CaretValueRule"
	case syntax.InsertRule:
		return "InsertRule"
	case syntax.PathRule:
		return "PathRule"
	case syntax.AddElementRule:
		return "AddElementRule"
	case syntax.MappingRule:
		return "MappingRule"
	case syntax.AddCRElementRule:
		return "AddCRElementRule"
	default:
		return ""
	}
}

// hasParent, hasID, hasTitle, and hasDescription let definitionContext
// distinguish "field absent on this definition kind" from "field present
// but empty" without a type switch per field.
type hasParent interface{ Parent() string }
type hasID interface{ ID() string }
type hasTitle interface{ Title() string }
type hasDescription interface{ Description() string }
type hasURL interface{ URL() string }

// ruleContext adapts an ast.Rule to pattern.Context, exposing the fields a
// rule-kind NodeType predicate can reference: "path" (every rule's leading
// path expression), "flag" (comma-joined flag tokens, FlagRule), and
// "value" (the literal right-hand side, FixedValueRule). A field absent for
// the rule's own kind reports not-present rather than an empty match.
type ruleContext struct {
	rule ast.Rule
}

func (c ruleContext) Field(name string) (string, bool) {
	switch name {
	case "path":
		return c.rule.Path(), true
	case "flag":
		flags := c.rule.Flags()
		if len(flags) == 0 {
			return "", false
		}
		return strings.Join(flags, ","), true
	case "value":
		v := c.rule.FixedValue()
		if v == "" {
			return "", false
		}
		return v, true
	default:
		return "", false
	}
}

// definitionContext adapts an ast.Definition to pattern.Context so a
// compiled GritQL-like pattern can evaluate "where" predicates against it.
type definitionContext struct {
	def ast.Definition
}

func (c definitionContext) Field(name string) (string, bool) {
	switch name {
	case "name":
		return c.def.Name(), true
	case "parent":
		if d, ok := c.def.(hasParent); ok {
			return d.Parent(), true
		}
		return "", false
	case "id":
		if d, ok := c.def.(hasID); ok {
			return d.ID(), true
		}
		return "", false
	case "title":
		if d, ok := c.def.(hasTitle); ok {
			return d.Title(), true
		}
		return "", false
	case "description":
		if d, ok := c.def.(hasDescription); ok {
			return d.Description(), true
		}
		return "", false
	case "url", "value":
		// "value" is the original's field name for an Alias's target URL
		// (gritql_ast.rs's evaluate_predicates_on_alias); "url" is the same
		// value under this module's own accessor name.
		if d, ok := c.def.(hasURL); ok {
			return d.URL(), true
		}
		return "", false
	default:
		return "", false
	}
}
