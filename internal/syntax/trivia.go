package syntax

import "strings"

// TriviaPiece is one piece of trivia (whitespace run, line comment, block
// comment, or newline) attached to a token.
type TriviaPiece struct {
	Kind Kind
	Text string
}

// LeadingTrivia returns the trivia tokens that appear before the first
// non-trivia child of n, in document order. Used by the formatter to decide
// how much blank-line/comment context precedes a definition or rule line.
func LeadingTrivia(n *SyntaxNode) []TriviaPiece {
	var out []TriviaPiece
	for _, e := range n.Children() {
		if e.Node != nil {
			break
		}
		if !e.Token.Kind().IsTrivia() {
			break
		}
		out = append(out, TriviaPiece{Kind: e.Token.Kind(), Text: e.Token.Text()})
	}
	return out
}

// TrailingTrivia returns the trivia immediately following the last
// non-trivia child of n, up to and including the first newline — i.e. the
// same-line trailing comment (if any) plus the line terminator.
func TrailingTrivia(n *SyntaxNode) []TriviaPiece {
	children := n.Children()
	lastNonTrivia := -1
	for i, e := range children {
		if e.Node != nil || !e.Token.Kind().IsTrivia() {
			lastNonTrivia = i
		}
	}
	if lastNonTrivia < 0 {
		return nil
	}
	var out []TriviaPiece
	for i := lastNonTrivia + 1; i < len(children); i++ {
		e := children[i]
		if e.Token == nil || !e.Token.Kind().IsTrivia() {
			break
		}
		out = append(out, TriviaPiece{Kind: e.Token.Kind(), Text: e.Token.Text()})
		if e.Token.Kind() == Newline {
			break
		}
	}
	return out
}

// BlankLinesBefore counts the number of fully blank lines found in n's
// leading trivia (consecutive Newline tokens separated only by whitespace),
// used to decide whether the formatter should preserve a paragraph break.
func BlankLinesBefore(n *SyntaxNode) int {
	pieces := LeadingTrivia(n)
	newlines := 0
	for _, p := range pieces {
		if p.Kind == Newline {
			newlines++
		}
	}
	if newlines == 0 {
		return 0
	}
	return newlines - 1
}

// LineComments extracts the text of any `//` comments among pieces, with the
// leading "//" and surrounding whitespace stripped.
func LineComments(pieces []TriviaPiece) []string {
	var out []string
	for _, p := range pieces {
		if p.Kind != CommentLine {
			continue
		}
		out = append(out, strings.TrimSpace(strings.TrimPrefix(p.Text, "//")))
	}
	return out
}

// NormalizeBlankLines collapses runs of more than one consecutive blank line
// in a trivia text run down to exactly one, matching the formatter's
// canonical spacing rule (at most one blank line between definitions).
func NormalizeBlankLines(pieces []TriviaPiece) []TriviaPiece {
	var out []TriviaPiece
	newlineRun := 0
	for _, p := range pieces {
		if p.Kind == Newline {
			newlineRun++
			if newlineRun > 2 {
				continue
			}
			out = append(out, p)
			continue
		}
		newlineRun = 0
		out = append(out, p)
	}
	return out
}
