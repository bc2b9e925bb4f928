// Package diagnostic defines the common finding type every rule, the
// semantic builder, and the autofix engine produce and consume, plus a
// thread-safe collector for accumulating them across a parallel lint run.
package diagnostic

import "fmt"

// Severity ranks a diagnostic's importance. Ordering is explicit via rank(),
// not iota value, so the textual representation and the ordering can evolve
// independently of each other.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

// rank gives Severity a total order: Error > Warning > Info > Hint.
func (s Severity) rank() int {
	switch s {
	case Error:
		return 3
	case Warning:
		return 2
	case Info:
		return 1
	case Hint:
		return 0
	default:
		return -1
	}
}

// Less reports whether s is strictly less severe than other.
func (s Severity) Less(other Severity) bool { return s.rank() < other.rank() }

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity parses the textual form produced by String().
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "error":
		return Error, nil
	case "warning":
		return Warning, nil
	case "info":
		return Info, nil
	case "hint":
		return Hint, nil
	default:
		return 0, fmt.Errorf("diagnostic: unknown severity %q", s)
	}
}

// Safety classifies how confidently an autofix can be applied without
// human review.
type Safety int

const (
	// Unsafe fixes may change behavior or require judgment; only applied
	// with --unsafe or an explicit fix-mode override.
	Unsafe Safety = iota
	// Safe fixes are mechanical and behavior-preserving.
	Safe
)

func (s Safety) String() string {
	if s == Safe {
		return "safe"
	}
	return "unsafe"
}

// Location is a byte-offset span into one source file, plus the line/column
// a reporter can render it at.
type Location struct {
	File        string
	Offset      int
	Length      int
	Line        int // 0-based
	Column      int // 0-based, in bytes
	EndLine     int
	EndColumn   int
}

// Suggestion is one candidate autofix attached to a diagnostic: the
// replacement text for [Location.Offset, Location.Offset+Location.Length).
type Suggestion struct {
	Description string
	Safety      Safety
	Priority    int
	NewText     string
	Location    Location
}

// Diagnostic is one finding, whether produced by a rule, the semantic
// builder's construction-time checks, or the formatter's round-trip
// validator.
type Diagnostic struct {
	RuleID      string
	Severity    Severity
	Message     string
	Location    Location
	Suggestions []Suggestion
	Code        string
	Source      string
	Category    string
	Snippet     string
}
