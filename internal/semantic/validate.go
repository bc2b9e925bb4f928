package semantic

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Config tunes the strictness of the validation pass.
type Config struct {
	// StrictValidation, when true, escalates unresolved-reference and
	// invalid-fhir-type findings from warnings to errors.
	StrictValidation bool

	// CrossFileResolution, when true, lets references resolve against
	// symbols from other files sharing the same SymbolTable/AliasTable
	// (the normal project-wide lint case). When false, only this file's own
	// definitions satisfy a reference (useful for single-file checks).
	CrossFileResolution bool

	// MaxElementDepth bounds how many path segments a caret/element path may
	// have before invalid-element-path fires, guarding against runaway
	// recursion on pathological input.
	MaxElementDepth int
}

// DefaultConfig returns the validation defaults: strict off, cross-file
// resolution on, a generous but finite path-depth guard.
func DefaultConfig() Config {
	return Config{StrictValidation: false, CrossFileResolution: true, MaxElementDepth: 32}
}

var resourceIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-.]{1,64}$`)

// validate runs the construction-time checks (Issue, not Reference,
// accumulation): duplicate ids, invalid ids, invalid element paths, and —
// once the whole document has been indexed — unresolved references, split
// into invalid-fhir-type for Parent/InstanceOf/only-rule type targets that
// match neither a local symbol nor knownFHIRTypes, and unresolved-reference
// for everything else (obeys, value set bindings, inserts). Mirrors the
// teacher's single-pass "detect DL3024 while building the model" approach,
// generalized to FSH's id/path/reference rules.
func validate(cfg Config, file string, doc *ast.Document, symbols *SymbolTable, refs []*Reference) []Issue {
	var issues []Issue

	for _, id := range allDeclaredIDs(doc) {
		if !resourceIDPattern.MatchString(id.value) {
			issues = append(issues, newIssue(file, id.offset, "invalid-resource-id",
				fmt.Sprintf("id %q is not a valid FHIR id (must match %s)", id.value, resourceIDPattern.String()),
				SeverityError))
		}
	}
	for id, syms := range symbols.IDIndex() {
		if len(syms) > 1 {
			for _, s := range syms {
				issues = append(issues, newIssue(file, s.Offset, "duplicate-resource-id",
					fmt.Sprintf("id %q is declared by more than one definition in this project", id),
					SeverityError))
			}
		}
	}

	for _, def := range doc.Definitions() {
		rules := rulesOf(def)
		for _, r := range rules {
			if r.Kind() != syntax.CaretValueRule && r.Kind() != syntax.CodeCaretValueRule {
				continue
			}
			depth := strings.Count(r.Path(), ".") + 1
			if depth > cfg.MaxElementDepth {
				issues = append(issues, newIssue(file, r.Node().Offset(), "invalid-element-path",
					fmt.Sprintf("caret path %q has depth %d, exceeding the configured maximum of %d", r.Path(), depth, cfg.MaxElementDepth),
					SeverityWarning))
			}
		}
	}

	unresolvedSeverity := SeverityWarning
	if cfg.StrictValidation {
		unresolvedSeverity = SeverityError
	}
	for _, ref := range symbols.UnresolvedReferences() {
		if ref.Kind.IsTypeReference() {
			if isKnownFHIRType(ref.Name) {
				continue
			}
			issues = append(issues, newIssue(ref.File, ref.Offset, "invalid-fhir-type",
				fmt.Sprintf("%q is not a known FHIR type and does not resolve to any definition in this project", ref.Name),
				unresolvedSeverity))
			continue
		}
		issues = append(issues, newIssue(ref.File, ref.Offset, "unresolved-reference",
			fmt.Sprintf("%s reference %q does not resolve to any definition in this project", ref.Kind, ref.Name),
			unresolvedSeverity))
	}

	return issues
}

type declaredID struct {
	value  string
	offset int
}

func allDeclaredIDs(doc *ast.Document) []declaredID {
	var out []declaredID
	collect := func(id string, offset int) {
		if id != "" {
			out = append(out, declaredID{value: id, offset: offset})
		}
	}
	for _, p := range doc.Profiles() {
		collect(p.ID(), p.Node().Offset())
	}
	for _, e := range doc.Extensions() {
		collect(e.ID(), e.Node().Offset())
	}
	for _, v := range doc.ValueSets() {
		collect(v.ID(), v.Node().Offset())
	}
	for _, c := range doc.CodeSystems() {
		collect(c.ID(), c.Node().Offset())
	}
	return out
}

func rulesOf(def ast.Definition) []ast.Rule {
	switch d := def.(type) {
	case *ast.Profile:
		return d.Rules()
	case *ast.Extension:
		return d.Rules()
	case *ast.ValueSet:
		return d.Rules()
	case *ast.CodeSystem:
		return d.Rules()
	case *ast.Instance:
		return d.Rules()
	case *ast.Mapping:
		return d.Rules()
	case *ast.Logical:
		return d.Rules()
	case *ast.Resource:
		return d.Rules()
	case *ast.RuleSet:
		return d.Rules()
	default:
		return nil
	}
}
