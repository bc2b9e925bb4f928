package semantic

import (
	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/sourcemap"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Builder constructs a semantic Model from a parse result, following the
// teacher's chained-With builder pattern
// (semantic.NewBuilder(...).WithAliasTable(...).Build()).
type Builder struct {
	parseResult *syntax.ParseResult
	source      []byte
	file        string

	aliases *AliasTable
	symbols *SymbolTable
	config  Config
}

// NewBuilder creates a builder for file, given its parse result and raw
// source bytes.
func NewBuilder(result *syntax.ParseResult, source []byte, file string) *Builder {
	return &Builder{
		parseResult: result,
		source:      source,
		file:        file,
		config:      DefaultConfig(),
	}
}

// WithAliasTable supplies a project-wide alias table so `$name` references
// defined in one file resolve when linting another. A fresh table is used
// if this is never called.
func (b *Builder) WithAliasTable(t *AliasTable) *Builder {
	b.aliases = t
	return b
}

// WithSymbolTable supplies a project-wide symbol table so references
// between files in the same project resolve. A fresh, file-local table is
// used if this is never called.
func (b *Builder) WithSymbolTable(t *SymbolTable) *Builder {
	b.symbols = t
	return b
}

// WithConfig overrides the validation configuration (defaults:
// DefaultConfig()).
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// Build runs the single-pass analysis: index every definition as a symbol,
// register aliases, extract and resolve references, then validate.
func (b *Builder) Build() *Model {
	if b.aliases == nil {
		b.aliases = NewAliasTable()
	}
	symbols := b.symbols
	if symbols == nil || !b.config.CrossFileResolution {
		symbols = NewSymbolTable()
	}

	doc := ast.NewDocument(b.parseResult.Root)

	var issues []Issue

	for _, a := range doc.Aliases() {
		if err := b.aliases.Define(Alias{
			Name:       a.Name(),
			URL:        a.URL(),
			SourceFile: b.file,
			Offset:     a.Node().Offset(),
		}); err != nil {
			issues = append(issues, newIssue(b.file, a.Node().Offset(), "duplicate-alias", err.Error(), SeverityError))
		}
	}

	defs := doc.Definitions()
	for _, def := range defs {
		if def.Kind() == syntax.AliasNode {
			continue
		}
		sym := &Symbol{
			Name:   def.Name(),
			Kind:   def.Kind(),
			File:   b.file,
			Offset: def.Node().Offset(),
		}
		if idHolder, ok := def.(interface{ ID() string }); ok {
			sym.ID = idHolder.ID()
		}
		if prior := symbols.Add(sym); len(prior) > 0 {
			issues = append(issues, newIssue(b.file, sym.Offset, "duplicate-definition-name",
				"a definition named \""+sym.Name+"\" already exists in this project", SeverityError))
		}
	}

	refs := ExtractReferences(doc, b.file)
	for _, ref := range refs {
		symbols.RequestResolution(ref)
	}

	issues = append(issues, validate(b.config, b.file, doc, symbols, refs)...)

	return &Model{
		DocumentAST:        doc,
		Resources:          defs,
		Symbols:            symbols,
		References:         refs,
		Source:             b.source,
		SourceMap:          sourcemap.New(b.source),
		File:               b.file,
		ConstructionIssues: issues,
		parseResult:        b.parseResult,
	}
}

// NewModel is a convenience wrapper around NewBuilder(...).Build() for
// callers that don't need cross-file alias/symbol sharing or custom config.
func NewModel(result *syntax.ParseResult, source []byte, file string) *Model {
	return NewBuilder(result, source, file).Build()
}
