package sourcemap

import "testing"

func TestPositionRoundTrip(t *testing.T) {
	src := "Profile: A\nParent: Patient\n* name 1..1 MS\n"
	sm := New([]byte(src))
	if sm.LineCount() != 4 { // trailing empty line after final \n
		t.Fatalf("LineCount() = %d, want 4", sm.LineCount())
	}
	line, col := sm.Position(len("Profile: A\nParent: "))
	if line != 1 || col != len("Parent: ") {
		t.Errorf("Position() = (%d, %d), want (1, %d)", line, col, len("Parent: "))
	}
}

func TestSnippetAndSnippetAround(t *testing.T) {
	src := "a\nb\nc\nd\ne\n"
	sm := New([]byte(src))
	if got := sm.Snippet(1, 3); got != "b\nc\nd" {
		t.Errorf("Snippet(1,3) = %q", got)
	}
	if got := sm.SnippetAround(2, 1, 1); got != "b\nc\nd" {
		t.Errorf("SnippetAround(2,1,1) = %q", got)
	}
	if got := sm.Snippet(-5, 100); got != "a\nb\nc\nd\ne\n" {
		t.Errorf("Snippet clamped = %q", got)
	}
}
