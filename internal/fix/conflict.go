package fix

import "github.com/octofhir/fsh-lint/internal/diagnostic"

// editsOverlap reports whether two suggestions' byte ranges overlap.
// Grounded on the teacher's conflict.go editsOverlap, generalized from
// line/column ranges to the byte-offset [Offset, Offset+Length) footprint
// diagnostic.Location already carries.
func editsOverlap(a, b diagnostic.Location) bool {
	if a.File != b.File {
		return false
	}
	aEnd := a.Offset + a.Length
	bEnd := b.Offset + b.Length
	if aEnd <= b.Offset {
		return false
	}
	if bEnd <= a.Offset {
		return false
	}
	return true
}

// sameRuleWithinWindow reports the secondary semantic-conflict check from
// spec.md §3/§4.8 step 3: two fixes from the same rule in the same file,
// within window lines of each other, are a soft conflict even when their
// byte footprints don't overlap (e.g. two suggestions the same rule made
// against sibling elements a few lines apart, which together would leave
// the file in a state neither suggestion alone accounted for). window <= 0
// disables the check.
func sameRuleWithinWindow(aRule string, a diagnostic.Location, bRule string, b diagnostic.Location, window int) bool {
	if window <= 0 {
		return false
	}
	if aRule != bRule || a.File != b.File {
		return false
	}
	delta := a.Line - b.Line
	if delta < 0 {
		delta = -delta
	}
	return delta <= window
}

// conflicts reports whether two candidate fixes from the same file cannot
// both be applied: either their byte footprints overlap, or they trip the
// same-rule semantic-conflict window.
func conflicts(aRule string, a diagnostic.Location, bRule string, b diagnostic.Location, window int) bool {
	return editsOverlap(a, b) || sameRuleWithinWindow(aRule, a, bRule, b, window)
}

// compareLocations reports whether a starts strictly before b.
func compareLocations(a, b diagnostic.Location) bool {
	return a.Offset < b.Offset
}
