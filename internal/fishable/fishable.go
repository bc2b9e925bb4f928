// Package fishable provides a unified interface for looking up FHIR
// definitions (profiles, extensions, value sets, code systems) by URL, id,
// name, or type, the "fishing" pattern rules use to resolve references to
// resources that are not declared in the FSH being linted — core FHIR
// resources, or resources from other files/dependency packages.
package fishable

import "context"

// FhirType filters a fish lookup by resource shape.
type FhirType int

const (
	// Any matches every resource type.
	Any FhirType = iota
	StructureDefinition
	ValueSet
	CodeSystem
	// Profile is a StructureDefinition with derivation "constraint".
	Profile
	// Extension is a StructureDefinition of kind "complex-type" deriving
	// from Extension.
	Extension
	// Logical is a StructureDefinition of kind "logical".
	Logical
	// Resource is a StructureDefinition of kind "resource".
	Resource
	// Instance is any resource that is not itself a definition.
	Instance
)

func (t FhirType) String() string {
	switch t {
	case StructureDefinition:
		return "StructureDefinition"
	case ValueSet:
		return "ValueSet"
	case CodeSystem:
		return "CodeSystem"
	case Profile:
		return "Profile"
	case Extension:
		return "Extension"
	case Logical:
		return "Logical"
	case Resource:
		return "Resource"
	case Instance:
		return "Instance"
	default:
		return "Any"
	}
}

// Matches reports whether a resource with the given shape satisfies this
// type filter.
func (t FhirType) Matches(resourceType, kind, derivation, baseDefinition string) bool {
	switch t {
	case Any:
		return true
	case StructureDefinition:
		return resourceType == "StructureDefinition"
	case ValueSet:
		return resourceType == "ValueSet"
	case CodeSystem:
		return resourceType == "CodeSystem"
	case Profile:
		return resourceType == "StructureDefinition" && derivation == "constraint"
	case Extension:
		return resourceType == "StructureDefinition" && kind == "complex-type" && hasSuffix(baseDefinition, "/Extension")
	case Logical:
		return resourceType == "StructureDefinition" && kind == "logical"
	case Resource:
		return resourceType == "StructureDefinition" && kind == "resource"
	case Instance:
		return resourceType != "StructureDefinition" && resourceType != "ValueSet" &&
			resourceType != "CodeSystem" && resourceType != "SearchParameter"
	default:
		return false
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

// Metadata is lightweight identifying information about a resource,
// returned by FishForMetadata without loading the full resource.
type Metadata struct {
	ResourceType   string
	ID             string
	URL            string
	Name           string
	Version        string
	Kind           string
	Derivation     string
	BaseDefinition string
	PackageID      string
}

// MatchesTypes reports whether m satisfies any of types (empty or
// containing Any matches everything).
func (m Metadata) MatchesTypes(types []FhirType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == Any {
			return true
		}
		if t.Matches(m.ResourceType, m.Kind, m.Derivation, m.BaseDefinition) {
			return true
		}
	}
	return false
}

// Resource is a resolved FHIR definition: its metadata plus raw content
// (decoded JSON as a generic map, since canonical resources vary widely in
// shape and the linter only ever needs a handful of fields off of them).
type Resource struct {
	Metadata Metadata
	Content  map[string]any
}

// Fishable is implemented by anything rules can query for FHIR definitions:
// an in-memory package index, a remote registry client, or a test double.
type Fishable interface {
	// Fish looks up item (URL, then id, then name) and returns the first
	// match satisfying types (nil/empty types means no filtering).
	Fish(ctx context.Context, item string, types []FhirType) (*Resource, error)

	// FishForMetadata is the metadata-only form of Fish.
	FishForMetadata(ctx context.Context, item string, types []FhirType) (*Metadata, error)

	// FishByURL looks up item by exact canonical URL.
	FishByURL(ctx context.Context, url string) (*Resource, error)

	// FishByID looks up item by exact resource id.
	FishByID(ctx context.Context, id string) (*Resource, error)

	// FishByName looks up item by exact resource name.
	FishByName(ctx context.Context, name string) (*Resource, error)

	// FishByType returns every resource of the given type.
	FishByType(ctx context.Context, t FhirType) ([]*Resource, error)
}
