package syntax

// Edit describes a single text replacement: bytes [Start, End) of the old
// source are replaced by NewText.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// Reparse applies edit to oldSrc and reparses. When the edit falls entirely
// within the span of a single top-level definition and does not touch the
// bytes between two definitions, only that definition's text is re-lexed and
// re-parsed and the resulting green node is spliced back into the document's
// child list; every other definition's green node (and therefore everything
// that shares it, e.g. cached lints keyed by node identity) is reused
// unchanged. Any edit that straddles a definition boundary, or a tree with
// parse errors at its boundaries, falls back to a full reparse — matching
// the cache's "invalidation is always conservative, never partial" rule one
// layer up.
func Reparse(prev *ParseResult, oldSrc string, edit Edit) (newSrc string, result *ParseResult) {
	newSrc = oldSrc[:edit.Start] + edit.NewText + oldSrc[edit.End:]

	delta := len(edit.NewText) - (edit.End - edit.Start)
	doc := prev.Root.FirstChildOfKind(Document)
	if doc == nil {
		return newSrc, Parse(newSrc)
	}

	defs := doc.ChildNodes()
	var target *SyntaxNode
	for _, d := range defs {
		start, end := d.Range()
		if edit.Start >= start && edit.End <= end {
			target = d
			break
		}
	}
	if target == nil {
		return newSrc, Parse(newSrc)
	}

	start, end := target.Range()
	newDefText := oldSrc[start:edit.Start] + edit.NewText + oldSrc[edit.End:end]
	subResult := Parse(newDefText)
	subDoc := subResult.Root.FirstChildOfKind(Document)
	if subDoc == nil || len(subDoc.green.Children()) != 1 {
		// The replacement text didn't parse back down to exactly one
		// top-level definition (e.g. it now spans zero or two); bail out to
		// a full reparse rather than risk splicing a malformed fragment.
		return newSrc, Parse(newSrc)
	}
	newDefGreen := subDoc.green.Children()[0]

	var newDocChildren []Green
	for _, c := range doc.green.Children() {
		if c == Green(target.green) {
			newDocChildren = append(newDocChildren, newDefGreen)
			continue
		}
		newDocChildren = append(newDocChildren, c)
	}
	newDocGreen := NewGreenNode(Document, newDocChildren)
	newRootGreen := NewGreenNode(Root, []Green{newDocGreen})

	errs := make([]ParseError, 0, len(prev.Errors)+len(subResult.Errors))
	for _, e := range prev.Errors {
		if e.Offset < start || e.Offset >= end {
			shifted := e
			if e.Offset >= end {
				shifted.Offset += delta
			}
			errs = append(errs, shifted)
		}
	}
	for _, e := range subResult.Errors {
		shifted := e
		shifted.Offset += start
		errs = append(errs, shifted)
	}

	return newSrc, &ParseResult{Root: NewRoot(newRootGreen), Errors: errs}
}
