package fishable

import "context"

// InMemory is a Fishable backed by a fixed set of resources, indexed by
// URL, id, and name at construction time — the shape used when the linter
// preloads the FHIR core package and any declared dependency packages.
type InMemory struct {
	byURL  map[string]*Resource
	byID   map[string][]*Resource
	byName map[string][]*Resource
	all    []*Resource
}

// NewInMemory indexes resources for lookup. Resources are not copied;
// callers must not mutate them afterward.
func NewInMemory(resources []*Resource) *InMemory {
	idx := &InMemory{
		byURL:  make(map[string]*Resource),
		byID:   make(map[string][]*Resource),
		byName: make(map[string][]*Resource),
		all:    resources,
	}
	for _, r := range resources {
		if r.Metadata.URL != "" {
			idx.byURL[r.Metadata.URL] = r
		}
		if r.Metadata.ID != "" {
			idx.byID[r.Metadata.ID] = append(idx.byID[r.Metadata.ID], r)
		}
		if r.Metadata.Name != "" {
			idx.byName[r.Metadata.Name] = append(idx.byName[r.Metadata.Name], r)
		}
	}
	return idx
}

// Fish tries URL, then id, then name, returning the first match that
// satisfies types.
func (m *InMemory) Fish(_ context.Context, item string, types []FhirType) (*Resource, error) {
	if r, ok := m.byURL[item]; ok && r.Metadata.MatchesTypes(types) {
		return r, nil
	}
	for _, r := range m.byID[item] {
		if r.Metadata.MatchesTypes(types) {
			return r, nil
		}
	}
	for _, r := range m.byName[item] {
		if r.Metadata.MatchesTypes(types) {
			return r, nil
		}
	}
	return nil, nil
}

// FishForMetadata is the metadata-only form of Fish.
func (m *InMemory) FishForMetadata(ctx context.Context, item string, types []FhirType) (*Metadata, error) {
	r, err := m.Fish(ctx, item, types)
	if err != nil || r == nil {
		return nil, err
	}
	md := r.Metadata
	return &md, nil
}

// FishByURL looks up item by exact canonical URL.
func (m *InMemory) FishByURL(_ context.Context, url string) (*Resource, error) {
	if r, ok := m.byURL[url]; ok {
		return r, nil
	}
	return nil, nil
}

// FishByID looks up item by exact resource id, returning the first match.
func (m *InMemory) FishByID(_ context.Context, id string) (*Resource, error) {
	if rs := m.byID[id]; len(rs) > 0 {
		return rs[0], nil
	}
	return nil, nil
}

// FishByName looks up item by exact resource name, returning the first
// match.
func (m *InMemory) FishByName(_ context.Context, name string) (*Resource, error) {
	if rs := m.byName[name]; len(rs) > 0 {
		return rs[0], nil
	}
	return nil, nil
}

// FishByType returns every resource matching t.
func (m *InMemory) FishByType(_ context.Context, t FhirType) ([]*Resource, error) {
	var out []*Resource
	for _, r := range m.all {
		if t.Matches(r.Metadata.ResourceType, r.Metadata.Kind, r.Metadata.Derivation, r.Metadata.BaseDefinition) {
			out = append(out, r)
		}
	}
	return out, nil
}
