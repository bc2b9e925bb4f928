package semantic

import "fmt"

// Alias is one `Alias: $name = url` binding.
type Alias struct {
	Name       string
	URL        string
	SourceFile string
	Offset     int
}

// AliasTable resolves `$name` references to their URL across a lint run. It
// is shared across files the way a rowan "interner" table would be: aliases
// defined in one file are visible when resolving references in another,
// since FSH projects typically collect all aliases in one place.
type AliasTable struct {
	byName map[string]Alias
}

// NewAliasTable builds an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{byName: make(map[string]Alias)}
}

// Define registers an alias. Redefining the same name with a different URL
// in a different file is an error — invariant 7 requires aliases to be
// globally unique by name. Redefining with the identical URL (the same
// alias declared in two files that both need it) is allowed and a no-op.
func (t *AliasTable) Define(a Alias) error {
	existing, ok := t.byName[a.Name]
	if !ok {
		t.byName[a.Name] = a
		return nil
	}
	if existing.URL == a.URL {
		return nil
	}
	return fmt.Errorf("alias %s already defined as %q in %s (redefined as %q in %s)",
		a.Name, existing.URL, existing.SourceFile, a.URL, a.SourceFile)
}

// Resolve returns the URL bound to name, and whether it was found.
func (t *AliasTable) Resolve(name string) (string, bool) {
	a, ok := t.byName[name]
	return a.URL, ok
}

// ResolveOrOriginal returns the URL bound to s if s is a known alias name,
// otherwise returns s unchanged — the common case for reference resolution,
// where most values are already literal URLs/ids and only some are aliases.
func (t *AliasTable) ResolveOrOriginal(s string) string {
	if url, ok := t.Resolve(s); ok {
		return url
	}
	return s
}

// Aliases returns all defined aliases, in no particular order.
func (t *AliasTable) Aliases() []Alias {
	out := make([]Alias, 0, len(t.byName))
	for _, a := range t.byName {
		out = append(out, a)
	}
	return out
}
