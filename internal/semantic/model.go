package semantic

import (
	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/sourcemap"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Model is the semantic analysis of one FSH file: its typed AST, the
// symbols it defines, the references it makes, and any issues found while
// building all of that. It is immutable after construction and safe for
// concurrent read access, same contract as the teacher's Model.
type Model struct {
	DocumentAST *ast.Document
	Resources   []ast.Definition

	Symbols    *SymbolTable
	References []*Reference

	Source    []byte
	SourceMap *sourcemap.SourceMap
	File      string

	ConstructionIssues []Issue

	parseResult *syntax.ParseResult
}

// ParseResult returns the underlying CST parse (including any syntax
// errors), for callers that need lower-level access than the typed AST.
func (m *Model) ParseResult() *syntax.ParseResult { return m.parseResult }

// SymbolByName looks up a definition by name among this model's resources.
func (m *Model) SymbolByName(name string) (*Symbol, bool) { return m.Symbols.Lookup(name) }
