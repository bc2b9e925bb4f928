package semantic

import (
	"strings"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// ReferenceKind classifies what a Reference points at.
type ReferenceKind int

const (
	ParentRef ReferenceKind = iota
	InstanceOfRef
	ValueSetBindingRef
	ObeysRef
	MappingSourceRef
	MappingTargetRef
	InsertRef
	OnlyTypeRef
)

func (k ReferenceKind) String() string {
	switch k {
	case ParentRef:
		return "parent"
	case InstanceOfRef:
		return "instance-of"
	case ValueSetBindingRef:
		return "value-set-binding"
	case ObeysRef:
		return "obeys"
	case MappingSourceRef:
		return "mapping-source"
	case MappingTargetRef:
		return "mapping-target"
	case InsertRef:
		return "insert"
	case OnlyTypeRef:
		return "only-type"
	default:
		return "unknown"
	}
}

// IsTypeReference reports whether kind names a FHIR type (Parent, InstanceOf,
// or an only-rule type target) rather than another named FSH artifact
// (invariant, value set binding target, or RuleSet insert target). Type
// references that fail to resolve locally still succeed against
// knownFHIRTypes before being reported; non-type references do not.
func (k ReferenceKind) IsTypeReference() bool {
	switch k {
	case ParentRef, InstanceOfRef, OnlyTypeRef:
		return true
	default:
		return false
	}
}

// Reference is one named pointer from a definition or rule to another named
// thing (another FSH definition, or an external FHIR type/value set
// resolved through Fishable). Target/Resolved are filled in by
// SymbolTable.RequestResolution as the document is indexed.
type Reference struct {
	Kind     ReferenceKind
	Name     string
	File     string
	Offset   int
	Resolved bool
	Target   *Symbol
}

// ExtractReferences walks every top-level definition in doc and returns the
// references it makes to other names: Parent, InstanceOf, value-set
// bindings (`from`), `obeys` targets, Mapping Source/Target, and `insert`
// targets.
func ExtractReferences(doc *ast.Document, file string) []*Reference {
	var out []*Reference
	add := func(kind ReferenceKind, name string, offset int) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		out = append(out, &Reference{Kind: kind, Name: name, File: file, Offset: offset})
	}

	for _, p := range doc.Profiles() {
		if p.Parent() != "" {
			add(ParentRef, p.Parent(), p.Node().Offset())
		}
		out = append(out, ruleReferences(p.Rules(), file)...)
	}
	for _, e := range doc.Extensions() {
		if e.Parent() != "" {
			add(ParentRef, e.Parent(), e.Node().Offset())
		}
		out = append(out, ruleReferences(e.Rules(), file)...)
	}
	for _, l := range doc.RuleSets() {
		out = append(out, ruleReferences(l.Rules(), file)...)
	}
	for _, v := range doc.ValueSets() {
		out = append(out, ruleReferences(v.Rules(), file)...)
	}
	for _, c := range doc.CodeSystems() {
		out = append(out, ruleReferences(c.Rules(), file)...)
	}
	for _, inst := range doc.Instances() {
		if inst.InstanceOf() != "" {
			add(InstanceOfRef, inst.InstanceOf(), inst.Node().Offset())
		}
		out = append(out, ruleReferences(inst.Rules(), file)...)
	}
	for _, inv := range doc.Invariants() {
		_ = inv // invariants carry no named references beyond their own id
	}
	for _, m := range doc.Mappings() {
		if m.Source() != "" {
			add(MappingSourceRef, m.Source(), m.Node().Offset())
		}
		if m.Target() != "" {
			add(MappingTargetRef, m.Target(), m.Node().Offset())
		}
	}

	return out
}

func ruleReferences(rules []ast.Rule, file string) []*Reference {
	var out []*Reference
	for _, r := range rules {
		switch r.Kind() {
		case syntax.ObeysRule:
			for _, name := range ruleTargetNames(r, syntax.ObeysKw) {
				out = append(out, &Reference{Kind: ObeysRef, Name: name, File: file, Offset: r.Node().Offset()})
			}
		case syntax.ValuesetRule:
			for _, name := range ruleTargetNames(r, syntax.FromKw) {
				out = append(out, &Reference{Kind: ValueSetBindingRef, Name: name, File: file, Offset: r.Node().Offset()})
			}
		case syntax.InsertRule:
			for _, name := range ruleTargetNames(r, syntax.InsertKw) {
				out = append(out, &Reference{Kind: InsertRef, Name: name, File: file, Offset: r.Node().Offset()})
			}
		case syntax.OnlyRule:
			for _, name := range onlyRuleTargetNames(r) {
				out = append(out, &Reference{Kind: OnlyTypeRef, Name: name, File: file, Offset: r.Node().Offset()})
			}
		}
	}
	return out
}

// ruleTargetNames returns the Ident tokens that follow after tok within a
// rule line, comma-separated targets included (e.g. `obeys inv-1, inv-2`).
func ruleTargetNames(r ast.Rule, after syntax.Kind) []string {
	var names []string
	seen := false
	for _, tok := range r.Node().ChildTokens() {
		if !seen {
			if tok.Kind() == after {
				seen = true
			}
			continue
		}
		switch tok.Kind() {
		case syntax.Ident:
			names = append(names, tok.Text())
		case syntax.Whitespace, syntax.Comma:
			continue
		default:
			return names
		}
	}
	return names
}

// onlyRuleTargetNames returns the type names an "only" rule restricts its
// target element to, e.g. `only Quantity or CodeableConcept` yields
// ["Quantity", "CodeableConcept"]. Types wrapped in `Reference(...)` are not
// unwrapped; only bare identifiers are collected, matching ruleTargetNames'
// level of sophistication for the other rule kinds.
func onlyRuleTargetNames(r ast.Rule) []string {
	var names []string
	seen := false
	for _, tok := range r.Node().ChildTokens() {
		if !seen {
			if tok.Kind() == syntax.OnlyKw {
				seen = true
			}
			continue
		}
		switch tok.Kind() {
		case syntax.Ident:
			names = append(names, tok.Text())
		case syntax.Whitespace, syntax.Comma, syntax.OrKw:
			continue
		default:
			return names
		}
	}
	return names
}
