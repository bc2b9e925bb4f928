package syntax

// Green is the immutable, value-shared layer of the CST. A GreenToken is a
// leaf carrying its exact source text; a GreenNode is an interior node
// carrying only its kind and children — its length is derived, never stored
// redundantly, so two nodes with identical children are structurally
// interchangeable (and, in principle, shareable — this implementation does
// not intern/hash-cons nodes, but nothing prevents a caller from doing so).
type Green interface {
	Kind() Kind
	Len() int
	isGreen()
}

// GreenToken is a leaf: a single token's kind plus its exact source text
// (including nothing beyond the token itself — trivia are their own tokens).
type GreenToken struct {
	kind Kind
	text string
}

// NewGreenToken builds a leaf token.
func NewGreenToken(kind Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

func (t *GreenToken) Kind() Kind    { return t.kind }
func (t *GreenToken) Len() int      { return len(t.text) }
func (t *GreenToken) Text() string  { return t.text }
func (*GreenToken) isGreen()        {}

// GreenNode is an interior node: a kind plus an ordered list of children
// (which may themselves be nodes or tokens). Length is the sum of all
// descendant token lengths.
type GreenNode struct {
	kind     Kind
	children []Green
	length   int
}

// NewGreenNode builds an interior node from already-built children.
func NewGreenNode(kind Kind, children []Green) *GreenNode {
	length := 0
	for _, c := range children {
		length += c.Len()
	}
	return &GreenNode{kind: kind, children: children, length: length}
}

func (n *GreenNode) Kind() Kind        { return n.kind }
func (n *GreenNode) Len() int          { return n.length }
func (n *GreenNode) Children() []Green { return n.children }
func (*GreenNode) isGreen()            {}

// Text reconstructs the exact source text covered by g by concatenating all
// descendant token texts in document order. Used to verify the lossless-parse
// invariant and by the formatter's trivia preserver.
func Text(g Green) string {
	switch n := g.(type) {
	case *GreenToken:
		return n.text
	case *GreenNode:
		var b []byte
		for _, c := range n.children {
			b = append(b, Text(c)...)
		}
		return string(b)
	default:
		return ""
	}
}
