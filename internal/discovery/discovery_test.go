package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPatterns(t *testing.T) {
	patterns := DefaultPatterns()
	if len(patterns) == 0 {
		t.Fatal("DefaultPatterns() returned empty slice")
	}
	if patterns[0] != "*.fsh" {
		t.Errorf("DefaultPatterns() = %v, want [*.fsh]", patterns)
	}
}

func TestDiscoverFile(t *testing.T) {
	tmpDir := t.TempDir()
	fshPath := filepath.Join(tmpDir, "patient.fsh")
	if err := os.WriteFile(fshPath, []byte("Profile: MyPatient\nParent: Patient\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := Discover([]string{fshPath}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	absPath, err := filepath.Abs(fshPath)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].ConfigRoot != filepath.Dir(absPath) {
		t.Errorf("ConfigRoot = %q, want %q", results[0].ConfigRoot, filepath.Dir(absPath))
	}
}

func TestDiscoverDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"patient.fsh",
		"observation.fsh",
		"sub/condition.fsh",
		"sub/nested/encounter.fsh",
		"not-fsh.txt",
	}
	for _, f := range files {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("Profile: X\nParent: Patient\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := Discover([]string{tmpDir}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 .fsh files, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if filepath.Ext(r.Path) != ".fsh" {
			t.Errorf("unexpected non-.fsh result: %s", r.Path)
		}
	}
}

func TestDiscoverDeduplicatesOverlappingInputs(t *testing.T) {
	tmpDir := t.TempDir()
	fshPath := filepath.Join(tmpDir, "patient.fsh")
	if err := os.WriteFile(fshPath, []byte("Profile: X\nParent: Patient\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := Discover([]string{tmpDir, fshPath}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected dedup to 1 result, got %d: %+v", len(results), results)
	}
}

func TestDiscoverExcludePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"keep.fsh", "vendor/skip.fsh"} {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("Profile: X\nParent: Patient\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := Discover([]string{tmpDir}, Options{ExcludePatterns: []string{"vendor/*"}})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result after exclusion, got %d: %+v", len(results), results)
	}
	if filepath.Base(results[0].Path) != "keep.fsh" {
		t.Errorf("expected keep.fsh to survive exclusion, got %s", results[0].Path)
	}
}

func TestDiscoverGlobPattern(t *testing.T) {
	tmpDir := t.TempDir()
	for _, f := range []string{"a.fsh", "b.fsh", "c.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, f), []byte("Profile: X\nParent: Patient\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := Discover([]string{filepath.Join(tmpDir, "*.fsh")}, Options{})
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results from glob, got %d: %+v", len(results), results)
	}
}
