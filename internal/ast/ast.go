// Package ast provides typed, read-only views over the internal/syntax CST.
// Every type here is a thin wrapper around a *syntax.SyntaxNode: it adds
// named accessors for a definition's clauses and rules but holds no state of
// its own, so building a view is free and there is nothing to keep in sync
// with the underlying tree.
package ast

import (
	"strings"

	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Document is the root of a parsed FSH file: an ordered list of top-level
// definitions.
type Document struct {
	node *syntax.SyntaxNode
}

// NewDocument wraps a parsed root's Document node. Panics if root has no
// Document child, which would indicate a bug in the parser, not bad input.
func NewDocument(root *syntax.SyntaxNode) *Document {
	doc := root.FirstChildOfKind(syntax.Document)
	if doc == nil {
		panic("ast: root has no Document node")
	}
	return &Document{node: doc}
}

// Node returns the underlying CST node.
func (d *Document) Node() *syntax.SyntaxNode { return d.node }

// Definitions returns every top-level definition in document order.
func (d *Document) Definitions() []Definition {
	var out []Definition
	for _, c := range d.node.ChildNodes() {
		if def, ok := wrapDefinition(c); ok {
			out = append(out, def)
		}
	}
	return out
}

// Aliases returns the Alias definitions only, in document order.
func (d *Document) Aliases() []*Alias {
	var out []*Alias
	for _, n := range d.node.ChildrenOfKind(syntax.AliasNode) {
		out = append(out, &Alias{node: n})
	}
	return out
}

// Profiles returns the Profile definitions only, in document order.
func (d *Document) Profiles() []*Profile {
	var out []*Profile
	for _, n := range d.node.ChildrenOfKind(syntax.ProfileNode) {
		out = append(out, &Profile{node: n})
	}
	return out
}

// Extensions returns the Extension definitions only, in document order.
func (d *Document) Extensions() []*Extension {
	var out []*Extension
	for _, n := range d.node.ChildrenOfKind(syntax.ExtensionNode) {
		out = append(out, &Extension{node: n})
	}
	return out
}

// ValueSets returns the ValueSet definitions only, in document order.
func (d *Document) ValueSets() []*ValueSet {
	var out []*ValueSet
	for _, n := range d.node.ChildrenOfKind(syntax.ValueSetNode) {
		out = append(out, &ValueSet{node: n})
	}
	return out
}

// CodeSystems returns the CodeSystem definitions only, in document order.
func (d *Document) CodeSystems() []*CodeSystem {
	var out []*CodeSystem
	for _, n := range d.node.ChildrenOfKind(syntax.CodeSystemNode) {
		out = append(out, &CodeSystem{node: n})
	}
	return out
}

// Instances returns the Instance definitions only, in document order.
func (d *Document) Instances() []*Instance {
	var out []*Instance
	for _, n := range d.node.ChildrenOfKind(syntax.InstanceNode) {
		out = append(out, &Instance{node: n})
	}
	return out
}

// Invariants returns the Invariant definitions only, in document order.
func (d *Document) Invariants() []*Invariant {
	var out []*Invariant
	for _, n := range d.node.ChildrenOfKind(syntax.InvariantNode) {
		out = append(out, &Invariant{node: n})
	}
	return out
}

// Mappings returns the Mapping definitions only, in document order.
func (d *Document) Mappings() []*Mapping {
	var out []*Mapping
	for _, n := range d.node.ChildrenOfKind(syntax.MappingNode) {
		out = append(out, &Mapping{node: n})
	}
	return out
}

// RuleSets returns the RuleSet definitions only, in document order.
func (d *Document) RuleSets() []*RuleSet {
	var out []*RuleSet
	for _, n := range d.node.ChildrenOfKind(syntax.RuleSetNode) {
		out = append(out, &RuleSet{node: n})
	}
	return out
}

// Definition is implemented by every top-level FSH definition type. Name and
// Kind are common to all of them; everything else is accessed through the
// concrete type.
type Definition interface {
	Node() *syntax.SyntaxNode
	Name() string
	Kind() syntax.Kind
}

func wrapDefinition(n *syntax.SyntaxNode) (Definition, bool) {
	switch n.Kind() {
	case syntax.AliasNode:
		return &Alias{node: n}, true
	case syntax.ProfileNode:
		return &Profile{node: n}, true
	case syntax.ExtensionNode:
		return &Extension{node: n}, true
	case syntax.ValueSetNode:
		return &ValueSet{node: n}, true
	case syntax.CodeSystemNode:
		return &CodeSystem{node: n}, true
	case syntax.InstanceNode:
		return &Instance{node: n}, true
	case syntax.InvariantNode:
		return &Invariant{node: n}, true
	case syntax.MappingNode:
		return &Mapping{node: n}, true
	case syntax.LogicalNode:
		return &Logical{node: n}, true
	case syntax.ResourceNode:
		return &Resource{node: n}, true
	case syntax.RuleSetNode:
		return &RuleSet{node: n}, true
	default:
		return nil, false
	}
}

// headerName returns the name token text from a definition's header line
// (the first significant token after the leading "Keyword:"), trimmed of
// surrounding whitespace.
func headerName(n *syntax.SyntaxNode) string {
	seenColon := false
	for _, e := range n.Children() {
		if e.Token == nil {
			continue
		}
		if !seenColon {
			if e.Token.Kind() == syntax.Colon {
				seenColon = true
			}
			continue
		}
		if e.Token.Kind().IsTrivia() {
			continue
		}
		return strings.TrimSpace(e.Token.Text())
	}
	return ""
}

// clauseValue returns the trimmed value text of the first clause of kind on
// n, or "" if absent.
func clauseValue(n *syntax.SyntaxNode, kind syntax.Kind) string {
	clause := n.FirstChildOfKind(kind)
	if clause == nil {
		return ""
	}
	return headerName(clause)
}

// Alias is an `Alias: $name = url` definition.
type Alias struct{ node *syntax.SyntaxNode }

func (a *Alias) Node() *syntax.SyntaxNode { return a.node }
func (a *Alias) Kind() syntax.Kind         { return syntax.AliasNode }

// Name returns the alias identifier (the "$name" part, before the "=").
func (a *Alias) Name() string {
	full := headerName(a.node)
	if idx := strings.Index(full, "="); idx >= 0 {
		return strings.TrimSpace(full[:idx])
	}
	return full
}

// URL returns the alias target (the text after "="), trimmed.
func (a *Alias) URL() string {
	full := headerName(a.node)
	if idx := strings.Index(full, "="); idx >= 0 {
		return strings.TrimSpace(full[idx+1:])
	}
	return ""
}

// itemWithClausesAndRules is embedded by every definition kind that has a
// name, Parent/Id/Title/Description clauses, and a list of rule lines.
type itemWithClausesAndRules struct{ node *syntax.SyntaxNode }

func (i itemWithClausesAndRules) Node() *syntax.SyntaxNode { return i.node }
func (i itemWithClausesAndRules) Name() string              { return headerName(i.node) }
func (i itemWithClausesAndRules) Parent() string             { return clauseValue(i.node, syntax.ParentClause) }
func (i itemWithClausesAndRules) ID() string                 { return clauseValue(i.node, syntax.IDClause) }
func (i itemWithClausesAndRules) Title() string              { return clauseValue(i.node, syntax.TitleClause) }
func (i itemWithClausesAndRules) Description() string {
	return clauseValue(i.node, syntax.DescriptionClause)
}

// Rules returns every rule line (`* ...`) directly under this definition, in
// document order.
func (i itemWithClausesAndRules) Rules() []Rule {
	var out []Rule
	for _, c := range i.node.ChildNodes() {
		switch c.Kind() {
		case syntax.CardRule, syntax.FlagRule, syntax.ValuesetRule, syntax.FixedValueRule,
			syntax.ContainsRule, syntax.OnlyRule, syntax.ObeysRule, syntax.CaretValueRule,
			syntax.InsertRule, syntax.PathRule, syntax.AddElementRule, syntax.MappingRule,
			syntax.AddCRElementRule:
			out = append(out, Rule{node: c})
		}
	}
	return out
}

// Profile is a `Profile: Name` definition.
type Profile struct {
	node *syntax.SyntaxNode
}

func (p *Profile) Node() *syntax.SyntaxNode { return p.node }
func (p *Profile) Kind() syntax.Kind         { return syntax.ProfileNode }
func (p *Profile) Name() string              { return itemWithClausesAndRules{p.node}.Name() }
func (p *Profile) Parent() string            { return itemWithClausesAndRules{p.node}.Parent() }
func (p *Profile) ID() string                { return itemWithClausesAndRules{p.node}.ID() }
func (p *Profile) Title() string             { return itemWithClausesAndRules{p.node}.Title() }
func (p *Profile) Description() string       { return itemWithClausesAndRules{p.node}.Description() }
func (p *Profile) Rules() []Rule             { return itemWithClausesAndRules{p.node}.Rules() }

// Extension is an `Extension: Name` definition.
type Extension struct{ node *syntax.SyntaxNode }

func (e *Extension) Node() *syntax.SyntaxNode { return e.node }
func (e *Extension) Kind() syntax.Kind         { return syntax.ExtensionNode }
func (e *Extension) Name() string              { return itemWithClausesAndRules{e.node}.Name() }
func (e *Extension) Parent() string            { return itemWithClausesAndRules{e.node}.Parent() }
func (e *Extension) ID() string                { return itemWithClausesAndRules{e.node}.ID() }
func (e *Extension) Title() string             { return itemWithClausesAndRules{e.node}.Title() }
func (e *Extension) Description() string       { return itemWithClausesAndRules{e.node}.Description() }
func (e *Extension) Rules() []Rule             { return itemWithClausesAndRules{e.node}.Rules() }

// ValueSet is a `ValueSet: Name` definition.
type ValueSet struct{ node *syntax.SyntaxNode }

func (v *ValueSet) Node() *syntax.SyntaxNode { return v.node }
func (v *ValueSet) Kind() syntax.Kind         { return syntax.ValueSetNode }
func (v *ValueSet) Name() string              { return itemWithClausesAndRules{v.node}.Name() }
func (v *ValueSet) ID() string                { return itemWithClausesAndRules{v.node}.ID() }
func (v *ValueSet) Title() string             { return itemWithClausesAndRules{v.node}.Title() }
func (v *ValueSet) Description() string       { return itemWithClausesAndRules{v.node}.Description() }
func (v *ValueSet) Rules() []Rule             { return itemWithClausesAndRules{v.node}.Rules() }

// CodeSystem is a `CodeSystem: Name` definition.
type CodeSystem struct{ node *syntax.SyntaxNode }

func (c *CodeSystem) Node() *syntax.SyntaxNode { return c.node }
func (c *CodeSystem) Kind() syntax.Kind         { return syntax.CodeSystemNode }
func (c *CodeSystem) Name() string              { return itemWithClausesAndRules{c.node}.Name() }
func (c *CodeSystem) ID() string                { return itemWithClausesAndRules{c.node}.ID() }
func (c *CodeSystem) Title() string             { return itemWithClausesAndRules{c.node}.Title() }
func (c *CodeSystem) Description() string       { return itemWithClausesAndRules{c.node}.Description() }
func (c *CodeSystem) Rules() []Rule             { return itemWithClausesAndRules{c.node}.Rules() }

// Instance is an `Instance: Name` definition.
type Instance struct{ node *syntax.SyntaxNode }

func (i *Instance) Node() *syntax.SyntaxNode { return i.node }
func (i *Instance) Kind() syntax.Kind         { return syntax.InstanceNode }
func (i *Instance) Name() string              { return itemWithClausesAndRules{i.node}.Name() }
func (i *Instance) InstanceOf() string        { return clauseValue(i.node, syntax.InstanceofClause) }
func (i *Instance) Title() string             { return itemWithClausesAndRules{i.node}.Title() }
func (i *Instance) Description() string       { return itemWithClausesAndRules{i.node}.Description() }
func (i *Instance) Usage() string             { return clauseValue(i.node, syntax.UsageClause) }
func (i *Instance) Rules() []Rule             { return itemWithClausesAndRules{i.node}.Rules() }

// Invariant is an `Invariant: Name` definition.
type Invariant struct{ node *syntax.SyntaxNode }

func (v *Invariant) Node() *syntax.SyntaxNode { return v.node }
func (v *Invariant) Kind() syntax.Kind         { return syntax.InvariantNode }
func (v *Invariant) Name() string              { return itemWithClausesAndRules{v.node}.Name() }
func (v *Invariant) Description() string       { return itemWithClausesAndRules{v.node}.Description() }
func (v *Invariant) Expression() string        { return clauseValue(v.node, syntax.ExpressionClause) }
func (v *Invariant) XPath() string             { return clauseValue(v.node, syntax.XpathClause) }
func (v *Invariant) Severity() string          { return clauseValue(v.node, syntax.SeverityClause) }

// Mapping is a `Mapping: Name` definition.
type Mapping struct{ node *syntax.SyntaxNode }

func (m *Mapping) Node() *syntax.SyntaxNode { return m.node }
func (m *Mapping) Kind() syntax.Kind         { return syntax.MappingNode }
func (m *Mapping) Name() string              { return itemWithClausesAndRules{m.node}.Name() }
func (m *Mapping) Source() string            { return clauseValue(m.node, syntax.SourceClause) }
func (m *Mapping) Target() string            { return clauseValue(m.node, syntax.TargetClause) }
func (m *Mapping) Title() string             { return itemWithClausesAndRules{m.node}.Title() }
func (m *Mapping) Description() string       { return itemWithClausesAndRules{m.node}.Description() }
func (m *Mapping) Rules() []Rule             { return itemWithClausesAndRules{m.node}.Rules() }

// Logical is a `Logical: Name` definition.
type Logical struct{ node *syntax.SyntaxNode }

func (l *Logical) Node() *syntax.SyntaxNode { return l.node }
func (l *Logical) Kind() syntax.Kind         { return syntax.LogicalNode }
func (l *Logical) Name() string              { return itemWithClausesAndRules{l.node}.Name() }
func (l *Logical) Parent() string            { return itemWithClausesAndRules{l.node}.Parent() }
func (l *Logical) Rules() []Rule             { return itemWithClausesAndRules{l.node}.Rules() }

// Resource is a `Resource: Name` definition.
type Resource struct{ node *syntax.SyntaxNode }

func (r *Resource) Node() *syntax.SyntaxNode { return r.node }
func (r *Resource) Kind() syntax.Kind         { return syntax.ResourceNode }
func (r *Resource) Name() string              { return itemWithClausesAndRules{r.node}.Name() }
func (r *Resource) Parent() string            { return itemWithClausesAndRules{r.node}.Parent() }
func (r *Resource) Rules() []Rule             { return itemWithClausesAndRules{r.node}.Rules() }

// RuleSet is a `RuleSet: Name` reusable rule group.
type RuleSet struct{ node *syntax.SyntaxNode }

func (r *RuleSet) Node() *syntax.SyntaxNode { return r.node }
func (r *RuleSet) Kind() syntax.Kind         { return syntax.RuleSetNode }
func (r *RuleSet) Name() string              { return itemWithClausesAndRules{r.node}.Name() }
func (r *RuleSet) Rules() []Rule             { return itemWithClausesAndRules{r.node}.Rules() }

// Rule wraps a single `* ...` rule line. Its Kind distinguishes the rule
// form (CardRule, FlagRule, CaretValueRule, ...); Text returns the rule's
// exact source text for forms that don't warrant a dedicated accessor.
type Rule struct{ node *syntax.SyntaxNode }

func (r Rule) Node() *syntax.SyntaxNode { return r.node }
func (r Rule) Kind() syntax.Kind         { return r.node.Kind() }
func (r Rule) Text() string              { return r.node.Text() }

// Path returns the rule's leading path expression: every Ident/Dot/Caret
// token up to the first token that starts a value, cardinality, or keyword
// position, concatenated verbatim.
func (r Rule) Path() string {
	var b strings.Builder
	for _, e := range r.node.Children() {
		if e.Token == nil {
			break
		}
		switch e.Token.Kind() {
		case syntax.Asterisk:
			continue
		case syntax.Whitespace:
			if b.Len() > 0 {
				return b.String()
			}
			continue
		case syntax.Ident, syntax.Dot, syntax.Caret, syntax.RangeDots, syntax.LBracket, syntax.RBracket, syntax.Integer:
			b.WriteString(e.Token.Text())
		default:
			return b.String()
		}
	}
	return b.String()
}

// HasConsecutiveDots reports whether r's path contains a ".." run — the
// signature of an accidental cardinality token inside a caret path.
func (r Rule) HasConsecutiveDots() bool {
	for _, tok := range r.node.ChildTokens() {
		if tok.Kind() == syntax.RangeDots {
			return true
		}
	}
	return false
}

// Flags returns the flag tokens (MS, SU, TU, N, D, ?!) attached to r.
func (r Rule) Flags() []string {
	var out []string
	for _, tok := range r.node.ChildTokens() {
		if tok.Kind().IsFlag() {
			out = append(out, tok.Kind().KeywordText())
		}
	}
	return out
}

// FixedValue returns the string/code literal text on the right-hand side of
// a FixedValueRule's "=", or "" if this isn't a FixedValueRule or it has no
// literal value.
func (r Rule) FixedValue() string {
	if r.node.Kind() != syntax.FixedValueRule {
		return ""
	}
	seenEquals := false
	for _, e := range r.node.Children() {
		if e.Token == nil {
			continue
		}
		if !seenEquals {
			if e.Token.Kind() == syntax.Equals {
				seenEquals = true
			}
			continue
		}
		switch e.Token.Kind() {
		case syntax.String, syntax.Code, syntax.Integer, syntax.Decimal, syntax.True, syntax.False, syntax.URL:
			return e.Token.Text()
		case syntax.Whitespace:
			continue
		}
	}
	return ""
}
