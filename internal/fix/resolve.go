package fix

import "sort"

// sortCandidates orders candidates for the reservation loop in fixer.go:
// Safe fixes before Unsafe, then higher priority number first, then
// earlier generation (first-discovered) breaks ties — the winner of a
// conflicting group is whichever candidate sorts first, since the
// reservation loop in applyToFile reserves on first encounter. Grounded
// on the teacher's applyFixesToFile sort (priority asc, position desc);
// this comparator instead follows the spec's conflict-resolution order
// (safety first, then "highest-priority Safe fix wins").
func sortCandidates(cs []*fixCandidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.safe != b.safe {
			return a.safe // Safe (true) sorts before Unsafe (false)
		}
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		return a.generation < b.generation
	})
}
