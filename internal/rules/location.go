package rules

import (
	"github.com/octofhir/fsh-lint/internal/semantic"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// LocationForNode builds a diagnostic.Location-shaped set of coordinates
// (file/offset/length/line/column) for n using model's source map — every
// rule reports against a node this way rather than hand-computing
// line/column from raw source.
func LocationForNode(model *semantic.Model, n *syntax.SyntaxNode) (line, col, endLine, endCol int) {
	startLine, startCol := model.SourceMap.Position(n.Offset())
	endL, endC := model.SourceMap.Position(n.EndOffset())
	return startLine, startCol, endL, endC
}
