package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Difference is one disagreement the round-trip validator found between a
// source document and its formatted, re-parsed counterpart.
type Difference struct {
	Kind    string // "parse-error", "semantic", "trivia"
	Message string
}

// RoundTripResult is the outcome of formatting source and checking that the
// result re-parses to an equivalent document. Grounded on spec.md §4.10.
type RoundTripResult struct {
	Original  string
	Formatted string
	Reparsed  string
	Differences []Difference
}

// OK reports whether no differences were found.
func (r *RoundTripResult) OK() bool { return len(r.Differences) == 0 }

// RoundTrip formats original, re-parses the result, and checks: (a) no new
// parse errors, (b) rule-kind/cardinality/symbol-name equivalence, (c) every
// comment in the input survives into the output.
func RoundTrip(original string, opts Options) (*RoundTripResult, error) {
	res, err := Format(original, opts)
	if err != nil {
		return nil, err
	}
	formatted := res.Output

	prOrig := syntax.Parse(original)
	prNew := syntax.Parse(formatted)

	var diffs []Difference

	if len(prNew.Errors) > len(prOrig.Errors) {
		diffs = append(diffs, Difference{
			Kind:    "parse-error",
			Message: fmt.Sprintf("formatting introduced %d new parse error(s)", len(prNew.Errors)-len(prOrig.Errors)),
		})
	}

	diffs = append(diffs, compareSemantics(prOrig.Root, prNew.Root)...)
	diffs = append(diffs, compareTrivia(original, formatted)...)

	return &RoundTripResult{
		Original:    original,
		Formatted:   formatted,
		Reparsed:    syntax.Text(prNew.Root.Green()),
		Differences: diffs,
	}, nil
}

// definitionSignature is the hand-enumerated equivalence spec.md §4.10
// requires: symbol name, definition kind, and a multiset of rule
// (kind, normalized-text) pairs standing in for rule counts/kinds/cardinalities.
type definitionSignature struct {
	kind  syntax.Kind
	name  string
	rules []string
}

func signatures(root *syntax.SyntaxNode) []definitionSignature {
	doc := ast.NewDocument(root)
	var out []definitionSignature
	for _, def := range doc.Definitions() {
		sig := definitionSignature{kind: def.Kind(), name: def.Name()}
		if rp, ok := def.(interface{ Rules() []ast.Rule }); ok {
			for _, r := range rp.Rules() {
				sig.rules = append(sig.rules, fmt.Sprintf("%d:%s", r.Kind(), strings.Join(strings.Fields(r.Text()), " ")))
			}
			sort.Strings(sig.rules)
		}
		out = append(out, sig)
	}
	return out
}

func compareSemantics(orig, reformatted *syntax.SyntaxNode) []Difference {
	a := signatures(orig)
	b := signatures(reformatted)

	var diffs []Difference
	if len(a) != len(b) {
		diffs = append(diffs, Difference{
			Kind:    "semantic",
			Message: fmt.Sprintf("definition count changed: %d -> %d", len(a), len(b)),
		})
		return diffs
	}

	for i := range a {
		if a[i].kind != b[i].kind || a[i].name != b[i].name {
			diffs = append(diffs, Difference{
				Kind:    "semantic",
				Message: fmt.Sprintf("definition %d changed identity: %s %q -> %s %q", i, a[i].kind, a[i].name, b[i].kind, b[i].name),
			})
			continue
		}
		if len(a[i].rules) != len(b[i].rules) {
			diffs = append(diffs, Difference{
				Kind:    "semantic",
				Message: fmt.Sprintf("%s %q: rule count changed: %d -> %d", a[i].kind, a[i].name, len(a[i].rules), len(b[i].rules)),
			})
			continue
		}
		for j := range a[i].rules {
			if a[i].rules[j] != b[i].rules[j] {
				diffs = append(diffs, Difference{
					Kind:    "semantic",
					Message: fmt.Sprintf("%s %q: rule set changed after normalization", a[i].kind, a[i].name),
				})
				break
			}
		}
	}
	return diffs
}

// compareTrivia checks that every "//" comment in original appears somewhere
// in formatted, by trimmed text. Order and exact placement aren't checked —
// only survival, per spec.md §4.10's "every comment in the input appears in
// the output".
func compareTrivia(original, formatted string) []Difference {
	origComments := allComments(original)
	newComments := make(map[string]int)
	for _, c := range allComments(formatted) {
		newComments[c]++
	}

	var diffs []Difference
	for _, c := range origComments {
		if newComments[c] > 0 {
			newComments[c]--
			continue
		}
		diffs = append(diffs, Difference{
			Kind:    "trivia",
			Message: fmt.Sprintf("comment dropped by formatting: %q", c),
		})
	}
	return diffs
}

func allComments(src string) []string {
	var out []string
	for _, tok := range syntax.Lex(src) {
		switch tok.Kind {
		case syntax.CommentLine:
			out = append(out, strings.TrimSpace(strings.TrimPrefix(tok.Text, "//")))
		case syntax.CommentBlock:
			out = append(out, strings.TrimSpace(tok.Text))
		}
	}
	return out
}
