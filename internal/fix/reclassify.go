package fix

import "strings"

// dangerousSubstrings flags replacement text that should never be trusted
// as Safe regardless of what the originating rule claimed, per spec's
// step 2 "danger list" (calls to eval-like constructs, imports, URLs).
var dangerousSubstrings = []string{
	"InsertRule",
	"http://",
	"https://",
}

// reclassify downgrades any candidate whose replacement text matches the
// danger list from Safe to Unsafe, in place. A rule author's Safety tag is
// trusted otherwise — this is a backstop, not the primary classifier.
func reclassify(candidates []*fixCandidate) {
	for _, c := range candidates {
		if !c.safe {
			continue
		}
		if looksDangerous(c.suggestion.NewText) {
			c.safe = false
		}
	}
}

func looksDangerous(text string) bool {
	for _, s := range dangerousSubstrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
