package formatter

import (
	"strings"
	"testing"
)

func TestRunModeCheckReportsChangedWithoutOutput(t *testing.T) {
	src := "Profile:    MyProfile\nParent: Patient\n"
	rr, err := Run("input.fsh", []byte(src), ModeCheck, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !rr.Changed {
		t.Error("expected Changed=true")
	}
	if rr.Output != "" {
		t.Errorf("ModeCheck should not populate Output, got %q", rr.Output)
	}
}

func TestRunModeWriteReturnsFormattedOutput(t *testing.T) {
	src := "Profile:    MyProfile\nParent: Patient\n"
	rr, err := Run("input.fsh", []byte(src), ModeWrite, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rr.Output != "Profile: MyProfile\nParent: Patient\n" {
		t.Errorf("Run() Output = %q", rr.Output)
	}
}

func TestRunModeDiffProducesUnifiedDiff(t *testing.T) {
	src := "Profile:    MyProfile\nParent: Patient\n"
	rr, err := Run("input.fsh", []byte(src), ModeDiff, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(rr.Diff, "--- a/input.fsh") {
		t.Errorf("expected a unified diff header, got %q", rr.Diff)
	}
}

func TestRunModeDiffEmptyWhenUnchanged(t *testing.T) {
	src := "Profile: MyProfile\nParent: Patient\n"
	rr, err := Run("input.fsh", []byte(src), ModeDiff, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rr.Changed {
		t.Fatalf("expected no change for already-canonical input")
	}
	if rr.Diff != "" {
		t.Errorf("expected empty diff for unchanged input, got %q", rr.Diff)
	}
}
