package fix

import (
	"testing"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

func TestRollbackPlanRestoresOriginalContent(t *testing.T) {
	ds := []diagnostic.Diagnostic{
		diagWithSuggestion(suggestion(0, 1, "X", diagnostic.Safe, 0)),
	}
	sources := map[string][]byte{"input.fsh": []byte("0123456789")}

	f := &Fixer{Config: Config{DryRun: true}}
	_, plan, err := f.Apply(ds, sources)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	restored, err := plan.Restore("input.fsh")
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if string(restored) != "0123456789" {
		t.Errorf("Restore() = %q, want original content", restored)
	}
}

func TestRollbackPlanRestoreUnknownPathErrors(t *testing.T) {
	plan := &RollbackPlan{Files: map[string][]byte{}}
	if _, err := plan.Restore("missing.fsh"); err == nil {
		t.Error("expected error for path not covered by the plan")
	}
}

func TestRollbackPlanAgeIsNonNegative(t *testing.T) {
	f := &Fixer{Config: Config{DryRun: true}}
	_, plan, err := f.Apply(nil, map[string][]byte{"input.fsh": []byte("x")})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if plan.Age() < 0 {
		t.Errorf("Age() = %v, want non-negative", plan.Age())
	}
}

func TestRollbackPlanPathsListsAllFiles(t *testing.T) {
	f := &Fixer{Config: Config{DryRun: true}}
	_, plan, err := f.Apply(nil, map[string][]byte{"a.fsh": []byte("a"), "b.fsh": []byte("b")})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	paths := plan.Paths()
	if len(paths) != 2 {
		t.Errorf("Paths() returned %d entries, want 2", len(paths))
	}
}
