package pattern

// Matcher evaluates a compiled Pattern against a stream of typed nodes.
// TypeOf and the Context a node implements are supplied by the caller
// (internal/rules adapts internal/ast definitions and rules to this shape),
// keeping this package free of any dependency on the AST itself.
type Matcher struct {
	pat *Pattern
}

// Compile parses src once so repeated Match calls against many nodes reuse
// the same parsed predicate tree.
func Compile(src string) (*Matcher, error) {
	pat, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Matcher{pat: pat}, nil
}

// Type returns the node type this matcher selects, e.g. "Profile". "Any"
// (spelled "*" or "Any" in source) selects every node type.
func (m *Matcher) Type() string { return m.pat.Type }

// Match reports whether nodeType equals the pattern's node type (or the
// pattern is the "Any" wildcard) and, if a predicate is present, whether ctx
// satisfies it. A node type mismatch short-circuits without evaluating the
// predicate.
func (m *Matcher) Match(nodeType string, ctx Context) bool {
	if m.pat.Type != "Any" && nodeType != m.pat.Type {
		return false
	}
	if m.pat.Predicate == nil {
		return true
	}
	return m.pat.Predicate.Eval(ctx)
}
