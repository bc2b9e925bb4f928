package syntax

// ParseError is a single recovered syntax error: a location and message.
// Parsing never aborts on error; it synchronizes to the next statement
// boundary and continues, matching the "always a complete tree" contract.
type ParseError struct {
	Offset  int
	Message string
}

// ParseResult is the output of Parse: the root red node, plus any lex/parse
// errors recovered along the way.
type ParseResult struct {
	Root   *SyntaxNode
	Errors []ParseError
}

// defKeywords are the keywords that open a new top-level definition.
var defKeywords = map[Kind]Kind{
	AliasKw:      AliasNode,
	ProfileKw:    ProfileNode,
	ExtensionKw:  ExtensionNode,
	ValuesetKw:   ValueSetNode,
	CodesystemKw: CodeSystemNode,
	InstanceKw:   InstanceNode,
	InvariantKw:  InvariantNode,
	MappingKw:    MappingNode,
	LogicalKw:    LogicalNode,
	ResourceKw:   ResourceNode,
	RulesetKw:    RuleSetNode,
}

// clauseKeywords are the keywords that open a metadata clause inside a
// definition.
var clauseKeywords = map[Kind]Kind{
	ParentKw:      ParentClause,
	IdKw:          IDClause,
	TitleKw:       TitleClause,
	DescriptionKw: DescriptionClause,
	ExpressionKw:  ExpressionClause,
	XpathKw:       XpathClause,
	SeverityKw:    SeverityClause,
	InstanceofKw:  InstanceofClause,
	UsageKw:       UsageClause,
	SourceKw:      SourceClause,
	TargetKw:      TargetClause,
}

// Parse tokenizes and parses src into a lossless CST. The returned tree's
// concatenated token text always equals src byte-for-byte, even in the
// presence of syntax errors.
func Parse(src string) *ParseResult {
	p := &parser{toks: Lex(src)}
	var docChildren []Green
	for !p.atEOF() {
		p.bumpTriviaInto(&docChildren)
		if p.atEOF() {
			break
		}
		tok := p.current()
		if nodeKind, ok := defKeywords[tok.Kind]; ok {
			docChildren = append(docChildren, p.parseDefinition(nodeKind))
			continue
		}
		// Unrecognized top-level token: emit an error node wrapping one
		// token and resynchronize at the next line start.
		docChildren = append(docChildren, p.parseErrorToNextLine("expected a top-level definition keyword"))
	}
	docNode := NewGreenNode(Document, docChildren)
	root := NewGreenNode(Root, []Green{docNode})
	return &ParseResult{Root: NewRoot(root), Errors: p.errors}
}

type parser struct {
	toks   []Token
	pos    int
	errors []ParseError
}

func (p *parser) atEOF() bool {
	return p.pos >= len(p.toks) || p.toks[p.pos].Kind == EOF
}

func (p *parser) current() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: EOF}
	}
	return p.toks[p.pos]
}

// bumpAny consumes the current token unconditionally (trivia or not) and
// returns its green representation.
func (p *parser) bumpAny() Green {
	tok := p.current()
	if tok.Kind == EOF {
		return NewGreenToken(EOF, "")
	}
	p.pos++
	return NewGreenToken(tok.Kind, tok.Text)
}

// bumpTriviaInto consumes all leading trivia tokens (whitespace, comments,
// newlines) and appends them to children.
func (p *parser) bumpTriviaInto(children *[]Green) {
	for !p.atEOF() && p.current().Kind.IsTrivia() {
		*children = append(*children, p.bumpAny())
	}
}

// peekNonTrivia returns the next non-trivia token without consuming
// anything.
func (p *parser) peekNonTrivia() Token {
	i := p.pos
	for i < len(p.toks) && p.toks[i].Kind.IsTrivia() {
		i++
	}
	if i >= len(p.toks) {
		return Token{Kind: EOF}
	}
	return p.toks[i]
}

// atLineStart reports whether the parser cursor is immediately preceded
// (ignoring non-newline trivia already consumed this call) by a line
// boundary; used defensively by callers that resynchronize.
func (p *parser) bumpToNewlineInto(children *[]Green) {
	for !p.atEOF() {
		tok := p.current()
		*children = append(*children, p.bumpAny())
		if tok.Kind == Newline {
			return
		}
	}
}

// parseErrorToNextLine wraps the current token (and trivia up to and
// including the next newline) in an ErrorKind node, recording a ParseError.
func (p *parser) parseErrorToNextLine(message string) *GreenNode {
	offset := p.current().Offset
	p.errors = append(p.errors, ParseError{Offset: offset, Message: message})
	var children []Green
	p.bumpToNewlineInto(&children)
	return NewGreenNode(ErrorKind, children)
}

// parseDefinition parses one top-level definition: its header line
// (`Keyword: Name`), any metadata clauses, and any rule lines, stopping at
// the next top-level definition keyword or EOF.
func (p *parser) parseDefinition(nodeKind Kind) *GreenNode {
	var children []Green
	children = append(children, p.bumpAny()) // header keyword

	p.bumpTriviaInto(&children)
	if p.current().Kind == Colon {
		children = append(children, p.bumpAny())
	} else {
		p.errors = append(p.errors, ParseError{Offset: p.current().Offset, Message: "expected ':'"})
	}
	p.bumpTriviaInto(&children)
	// Header value: everything up to (and including) the newline.
	p.bumpToNewlineInto(&children)

	for {
		p.bumpTriviaInto(&children)
		if p.atEOF() {
			break
		}
		tok := p.current()
		if _, isDef := defKeywords[tok.Kind]; isDef {
			break
		}
		if clauseKind, ok := clauseKeywords[tok.Kind]; ok {
			children = append(children, p.parseClause(clauseKind))
			continue
		}
		if tok.Kind == Asterisk {
			children = append(children, p.parseRuleLine())
			continue
		}
		// Anything else at this position is unexpected; recover to the
		// next line and keep going within this definition.
		children = append(children, p.parseErrorToNextLine("expected a clause or rule line"))
	}
	return NewGreenNode(nodeKind, children)
}

func (p *parser) parseClause(clauseKind Kind) *GreenNode {
	var children []Green
	children = append(children, p.bumpAny()) // clause keyword
	p.bumpTriviaInto(&children)
	if p.current().Kind == Colon {
		children = append(children, p.bumpAny())
	} else {
		p.errors = append(p.errors, ParseError{Offset: p.current().Offset, Message: "expected ':'"})
	}
	p.bumpTriviaInto(&children)
	p.bumpToNewlineInto(&children)
	return NewGreenNode(clauseKind, children)
}

// parseRuleLine parses one `* ...` rule line. The exact rule-kind dispatch
// inspects the tokens immediately after the leading '*' to classify the
// form; the full token stream (including all trivia) up to and including
// the terminating newline is always captured as children, so the tree
// remains lossless regardless of how precisely a form was classified.
func (p *parser) parseRuleLine() *GreenNode {
	var lead []Green
	lead = append(lead, p.bumpAny()) // '*'
	p.bumpTriviaInto(&lead)

	kind := p.classifyRuleLine()

	var rest []Green
	p.bumpToNewlineInto(&rest)
	children := append(lead, rest...)
	return NewGreenNode(kind, children)
}

// classifyRuleLine inspects upcoming tokens (without consuming them) to pick
// a rule-node kind. FSH rule lines are classified by their first few
// significant tokens.
func (p *parser) classifyRuleLine() Kind {
	toks := p.lookaheadUntilNewline()
	nonTrivia := filterTrivia(toks)
	if len(nonTrivia) == 0 {
		return PathRule
	}

	if nonTrivia[0].Kind == Caret {
		for _, t := range nonTrivia {
			if t.Kind == Equals {
				return CaretValueRule
			}
		}
		return CaretValueRule
	}
	if nonTrivia[0].Kind == InsertKw {
		return InsertRule
	}
	if nonTrivia[0].Kind == ObeysKw {
		return ObeysRule
	}

	hasKeyword := func(k Kind) bool {
		for _, t := range nonTrivia {
			if t.Kind == k {
				return true
			}
		}
		return false
	}
	switch {
	case hasKeyword(ContainsKw):
		return ContainsRule
	case hasKeyword(OnlyKw):
		return OnlyRule
	case hasKeyword(ObeysKw):
		return ObeysRule
	case hasKeyword(FromKw):
		return ValuesetRule
	case hasKeyword(Equals):
		return FixedValueRule
	}

	// Cardinality form: path then an Integer/RangeDots/Integer sequence,
	// optionally followed by flags.
	for i := 0; i < len(nonTrivia)-1; i++ {
		if (nonTrivia[i].Kind == Integer || nonTrivia[i].Kind == Asterisk) && nonTrivia[i+1].Kind == RangeDots {
			return CardRule
		}
	}
	for _, t := range nonTrivia {
		if t.Kind.IsFlag() {
			return FlagRule
		}
	}
	return PathRule
}

// lookaheadUntilNewline returns the tokens from the current position up to
// (but not including) the terminating newline, without consuming them.
func (p *parser) lookaheadUntilNewline() []Token {
	var out []Token
	for i := p.pos; i < len(p.toks); i++ {
		if p.toks[i].Kind == Newline || p.toks[i].Kind == EOF {
			break
		}
		out = append(out, p.toks[i])
	}
	return out
}

func filterTrivia(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}
