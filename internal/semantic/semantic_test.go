package semantic

import (
	"testing"

	"github.com/octofhir/fsh-lint/internal/syntax"
)

func build(t *testing.T, src, file string) *Model {
	t.Helper()
	result := syntax.Parse(src)
	return NewModel(result, []byte(src), file)
}

func TestModelIndexesSymbols(t *testing.T) {
	m := build(t, "Profile: A\nParent: Patient\nId: a-id\n", "a.fsh")
	sym, ok := m.SymbolByName("A")
	if !ok {
		t.Fatal("expected symbol A to be indexed")
	}
	if sym.ID != "a-id" {
		t.Errorf("ID = %q, want a-id", sym.ID)
	}
}

func TestDuplicateDefinitionNameIsReported(t *testing.T) {
	src := "Profile: A\nParent: Patient\n\nProfile: A\nParent: Observation\n"
	m := build(t, src, "a.fsh")
	found := false
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "duplicate-definition-name" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate-definition-name issue, got %v", m.ConstructionIssues)
	}
}

func TestDuplicateResourceIDAcrossDefinitions(t *testing.T) {
	src := "Profile: A\nParent: Patient\nId: shared-id\n\nProfile: B\nParent: Observation\nId: shared-id\n"
	m := build(t, src, "a.fsh")
	found := false
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "duplicate-resource-id" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate-resource-id issue, got %v", m.ConstructionIssues)
	}
}

func TestInvalidResourceID(t *testing.T) {
	src := "Profile: A\nParent: Patient\nId: not a valid id!\n"
	m := build(t, src, "a.fsh")
	found := false
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "invalid-resource-id" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected invalid-resource-id issue, got %v", m.ConstructionIssues)
	}
}

func TestUnresolvedObeysReference(t *testing.T) {
	src := "Profile: A\nParent: Patient\n* name obeys inv-does-not-exist\n"
	m := build(t, src, "a.fsh")
	found := false
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "unresolved-reference" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unresolved-reference issue, got %v", m.ConstructionIssues)
	}
}

func TestInvalidFhirTypeOnUnknownParent(t *testing.T) {
	src := "Profile: A\nParent: NotARealFhirType\n"
	m := build(t, src, "a.fsh")
	found := false
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "invalid-fhir-type" {
			found = true
		}
		if iss.Code == "unresolved-reference" {
			t.Errorf("expected invalid-fhir-type, not unresolved-reference, got %v", iss)
		}
	}
	if !found {
		t.Errorf("expected invalid-fhir-type issue, got %v", m.ConstructionIssues)
	}
}

func TestKnownFhirTypeParentIsNotFlagged(t *testing.T) {
	src := "Profile: A\nParent: Patient\n* value[x] only Quantity or CodeableConcept\n"
	m := build(t, src, "a.fsh")
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "invalid-fhir-type" || iss.Code == "unresolved-reference" {
			t.Errorf("did not expect %s for known FHIR types, got %v", iss.Code, iss)
		}
	}
}

func TestInvalidFhirTypeOnUnknownOnlyRuleType(t *testing.T) {
	src := "Profile: A\nParent: Patient\n* value[x] only NotARealType\n"
	m := build(t, src, "a.fsh")
	found := false
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "invalid-fhir-type" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected invalid-fhir-type issue for only-rule type, got %v", m.ConstructionIssues)
	}
}

func TestForwardReferenceResolves(t *testing.T) {
	// Invariant appears after the profile that obeys it; the symbol table's
	// pending-queue mechanism should still resolve it.
	src := "Profile: A\nParent: Patient\n* name obeys inv-1\n\nInvariant: inv-1\nDescription: \"must have a name\"\n"
	m := build(t, src, "a.fsh")
	for _, iss := range m.ConstructionIssues {
		if iss.Code == "unresolved-reference" {
			t.Errorf("did not expect unresolved-reference, got %v", iss)
		}
	}
	var obeysRef *Reference
	for _, r := range m.References {
		if r.Kind == ObeysRef {
			obeysRef = r
		}
	}
	if obeysRef == nil || !obeysRef.Resolved {
		t.Fatalf("expected obeys reference to resolve, got %+v", obeysRef)
	}
}

func TestAliasTableRejectsConflictingRedefinition(t *testing.T) {
	table := NewAliasTable()
	if err := table.Define(Alias{Name: "$sct", URL: "http://snomed.info/sct", SourceFile: "a.fsh"}); err != nil {
		t.Fatalf("unexpected error on first Define: %v", err)
	}
	if err := table.Define(Alias{Name: "$sct", URL: "http://example.com/other", SourceFile: "b.fsh"}); err == nil {
		t.Error("expected error redefining $sct with a different URL")
	}
	if err := table.Define(Alias{Name: "$sct", URL: "http://snomed.info/sct", SourceFile: "b.fsh"}); err != nil {
		t.Errorf("redefining with the identical URL should be a no-op, got %v", err)
	}
}

func TestGraphDependsOnAndCycle(t *testing.T) {
	g := NewGraph()
	g.AddEdge("B", "A")
	g.AddEdge("C", "B")
	if !g.DependsOn("C", "A") {
		t.Error("expected C to transitively depend on A")
	}
	if g.HasCycle() {
		t.Error("did not expect a cycle")
	}
	g.AddEdge("A", "C")
	if !g.HasCycle() {
		t.Error("expected a cycle after A -> C closes the loop")
	}
}
