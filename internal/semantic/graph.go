package semantic

// Graph tracks dependency edges between named symbols (Parent chains,
// InstanceOf targets, RuleSet inserts). It plays the same role as the
// teacher's StageGraph, generalized from integer stage indices to symbol
// names since FSH definitions are referenced by name, not position.
type Graph struct {
	edges        map[string][]string
	reverseEdges map[string][]string
	externalRefs map[string][]string
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		edges:        make(map[string][]string),
		reverseEdges: make(map[string][]string),
		externalRefs: make(map[string][]string),
	}
}

// AddEdge records that "from" depends on "to" (from's Parent/InstanceOf/
// insert target is to).
func (g *Graph) AddEdge(from, to string) {
	g.edges[from] = append(g.edges[from], to)
	g.reverseEdges[to] = append(g.reverseEdges[to], from)
}

// AddExternalRef records a reference to a name this document never defines
// (e.g. `Parent: Patient`, a core FHIR resource resolved via Fishable rather
// than a local symbol).
func (g *Graph) AddExternalRef(from, ref string) {
	g.externalRefs[from] = append(g.externalRefs[from], ref)
}

// DependsOn reports whether a depends on b, directly or transitively.
func (g *Graph) DependsOn(a, b string) bool {
	visited := map[string]bool{}
	queue := []string{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		for _, dep := range g.edges[cur] {
			if dep == b {
				return true
			}
			if !visited[dep] {
				queue = append(queue, dep)
			}
		}
	}
	return false
}

// HasCycle reports whether any symbol transitively depends on itself —
// e.g. a Parent chain or RuleSet insert chain that loops back on itself.
func (g *Graph) HasCycle() bool {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := map[string]int{}
	var visit func(string) bool
	visit = func(n string) bool {
		switch state[n] {
		case visiting:
			return true
		case done:
			return false
		}
		state[n] = visiting
		for _, dep := range g.edges[n] {
			if visit(dep) {
				return true
			}
		}
		state[n] = done
		return false
	}
	for n := range g.edges {
		if visit(n) {
			return true
		}
	}
	return false
}

// DirectDependencies returns the names that "name" directly references.
func (g *Graph) DirectDependencies(name string) []string { return g.edges[name] }

// DirectDependents returns the names that directly reference "name".
func (g *Graph) DirectDependents(name string) []string { return g.reverseEdges[name] }

// ExternalRefs returns the references from "name" that never resolved to a
// local symbol.
func (g *Graph) ExternalRefs(name string) []string { return g.externalRefs[name] }

// UnusedRuleSets returns, given the full set of RuleSet names defined, those
// never referenced by any `insert` rule — the FSH analog of the teacher's
// UnreachableStages: work defined but never wired in.
func (g *Graph) UnusedRuleSets(ruleSetNames []string) []string {
	referenced := map[string]bool{}
	for _, targets := range g.edges {
		for _, t := range targets {
			referenced[t] = true
		}
	}
	var unused []string
	for _, name := range ruleSetNames {
		if !referenced[name] {
			unused = append(unused, name)
		}
	}
	return unused
}
