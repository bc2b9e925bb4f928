package ast

import (
	"testing"

	"github.com/octofhir/fsh-lint/internal/syntax"
)

func parseDoc(t *testing.T, src string) *Document {
	t.Helper()
	result := syntax.Parse(src)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, result.Errors)
	}
	return NewDocument(result.Root)
}

func TestDocumentProfileAccessors(t *testing.T) {
	doc := parseDoc(t, "Profile: my_bad_profile\nParent: Patient\nId: good-id\nTitle: \"A Title\"\n")
	profiles := doc.Profiles()
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.Name() != "my_bad_profile" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.Parent() != "Patient" {
		t.Errorf("Parent() = %q", p.Parent())
	}
	if p.ID() != "good-id" {
		t.Errorf("ID() = %q", p.ID())
	}
}

func TestAliasAccessors(t *testing.T) {
	doc := parseDoc(t, "Alias: $sct = http://snomed.info/sct\n")
	aliases := doc.Aliases()
	if len(aliases) != 1 {
		t.Fatalf("expected 1 alias, got %d", len(aliases))
	}
	if aliases[0].Name() != "$sct" {
		t.Errorf("Name() = %q", aliases[0].Name())
	}
	if aliases[0].URL() != "http://snomed.info/sct" {
		t.Errorf("URL() = %q", aliases[0].URL())
	}
}

func TestRuleCaretPathConsecutiveDots(t *testing.T) {
	doc := parseDoc(t, "Profile: P\nParent: Patient\n* ^foo..bar = \"x\"\n")
	rules := doc.Profiles()[0].Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if !rules[0].HasConsecutiveDots() {
		t.Error("expected HasConsecutiveDots() == true")
	}
	if rules[0].FixedValue() != `"x"` {
		t.Errorf("FixedValue() = %q", rules[0].FixedValue())
	}
}

func TestRuleCardinalityAndFlags(t *testing.T) {
	doc := parseDoc(t, "Profile: A\nParent: Patient\n* name 1..1 MS\n")
	rules := doc.Profiles()[0].Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules[0].Kind() != syntax.CardRule {
		t.Errorf("Kind() = %v, want CardRule", rules[0].Kind())
	}
	if rules[0].Path() != "name" {
		t.Errorf("Path() = %q, want %q", rules[0].Path(), "name")
	}
	flags := rules[0].Flags()
	if len(flags) != 1 || flags[0] != "MS" {
		t.Errorf("Flags() = %v, want [MS]", flags)
	}
}

func TestDefinitionsPreservesOrderAcrossKinds(t *testing.T) {
	src := "Alias: $sct = http://snomed.info/sct\n\nProfile: A\nParent: Patient\n\nValueSet: V\nId: v\n"
	doc := parseDoc(t, src)
	defs := doc.Definitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}
	if defs[0].Kind() != syntax.AliasNode || defs[1].Kind() != syntax.ProfileNode || defs[2].Kind() != syntax.ValueSetNode {
		t.Errorf("unexpected definition kind order: %v, %v, %v", defs[0].Kind(), defs[1].Kind(), defs[2].Kind())
	}
}
