package semantic

import "github.com/octofhir/fsh-lint/internal/syntax"

// Symbol is a named FSH definition: a Profile, Extension, ValueSet,
// CodeSystem, Instance, Invariant, Mapping, Logical, Resource, or RuleSet.
type Symbol struct {
	Name   string
	ID     string
	Kind   syntax.Kind
	File   string
	Offset int
}

// pendingResolution is a reference awaiting a symbol that doesn't exist yet
// (usually because the referencing definition appears before the definition
// it refers to). It is resolved the moment a matching symbol is indexed.
type pendingResolution struct {
	name string
	ref  *Reference
}

// SymbolTable indexes every Symbol defined in a document (or, across a
// project, every document) by name and by id. References to a symbol that
// hasn't been indexed yet are queued and re-checked every time a new symbol
// is added — so a `Parent: Foo` written above `Profile: Foo`'s own
// definition still resolves, mirroring the original implementation's
// "unresolved references re-checked as symbols are added" symbol table.
type SymbolTable struct {
	byName  map[string][]*Symbol
	byID    map[string][]*Symbol
	pending []pendingResolution
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byName: make(map[string][]*Symbol),
		byID:   make(map[string][]*Symbol),
	}
}

// Add indexes sym and resolves any pending references waiting on its name.
// It returns the symbols already registered under the same name (empty if
// sym is the first), for the caller to report as duplicates if the FSH
// semantics forbid redefinition for that Kind.
func (t *SymbolTable) Add(sym *Symbol) []*Symbol {
	existing := append([]*Symbol(nil), t.byName[sym.Name]...)
	t.byName[sym.Name] = append(t.byName[sym.Name], sym)
	if sym.ID != "" {
		t.byID[sym.ID] = append(t.byID[sym.ID], sym)
	}
	t.drainPending(sym.Name)
	return existing
}

// Lookup returns the first symbol registered under name, and whether one
// exists.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	syms := t.byName[name]
	if len(syms) == 0 {
		return nil, false
	}
	return syms[0], true
}

// ByID returns every symbol registered under id (normally zero or one;
// more than one indicates a duplicate-resource-id violation).
func (t *SymbolTable) ByID(id string) []*Symbol { return t.byID[id] }

// ByName returns every symbol registered under name (normally zero or one;
// more than one indicates a duplicate-definition-name violation).
func (t *SymbolTable) ByName(name string) []*Symbol { return t.byName[name] }

// RequestResolution resolves ref.Name immediately if already known,
// otherwise queues it to resolve lazily as more symbols are indexed. Call
// UnresolvedReferences after the whole document (or project) has been
// indexed to find the references that never resolved.
func (t *SymbolTable) RequestResolution(ref *Reference) {
	if sym, ok := t.Lookup(ref.Name); ok {
		ref.Target = sym
		ref.Resolved = true
		return
	}
	t.pending = append(t.pending, pendingResolution{name: ref.Name, ref: ref})
}

func (t *SymbolTable) drainPending(name string) {
	if len(t.pending) == 0 {
		return
	}
	remaining := t.pending[:0]
	for _, p := range t.pending {
		if p.name == name {
			if sym, ok := t.Lookup(name); ok {
				p.ref.Target = sym
				p.ref.Resolved = true
				continue
			}
		}
		remaining = append(remaining, p)
	}
	t.pending = remaining
}

// UnresolvedReferences returns the references still waiting on a symbol
// name that was never defined.
func (t *SymbolTable) UnresolvedReferences() []*Reference {
	var out []*Reference
	for _, p := range t.pending {
		out = append(out, p.ref)
	}
	return out
}

// IDIndex returns the id -> symbols index built so far. More than one
// symbol under the same id is a duplicate-resource-id violation.
func (t *SymbolTable) IDIndex() map[string][]*Symbol { return t.byID }

// All returns every indexed symbol across all names.
func (t *SymbolTable) All() []*Symbol {
	var out []*Symbol
	for _, syms := range t.byName {
		out = append(out, syms...)
	}
	return out
}
