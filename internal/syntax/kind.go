// Package syntax implements the lossless concrete syntax tree (CST) for FHIR
// Shorthand: a lexer, a recursive-descent parser, a green/red tree, and trivia
// utilities used by the semantic model and the formatter.
package syntax

import "fmt"

// Kind identifies the syntactic category of a token or node. The numeric
// ranges partition the space the way the reference implementation's CST does:
// trivia 0-9, keywords 10-99, flags 70-79, punctuation 100-149, literals
// 150-199, structural nodes 200-399, error/EOF 400-402, compound 500+,
// tombstone 999.
type Kind uint16

const (
	// Trivia (0-9)
	Whitespace Kind = iota
	CommentLine
	CommentBlock
	Newline
)

const (
	// Keywords (10-99)
	ProfileKw Kind = iota + 10
	ExtensionKw
	ValuesetKw
	CodesystemKw
	InstanceKw
	InvariantKw
	MappingKw
	LogicalKw
	ResourceKw
	AliasKw
	RulesetKw
	ParentKw
	IdKw
	TitleKw
	DescriptionKw
	ExpressionKw
	XpathKw
	SeverityKw
	InstanceofKw
	UsageKw
	SourceKw
	TargetKw
	ContextKw
	CharacteristicsKw
)

const (
	FromKw Kind = iota + 40
	OnlyKw
	ObeysKw
	ContainsKw
	NamedKw
	AndKw
	OrKw
	InsertKw
	IncludeKw
	ExcludeKw
	CodesKw
	WhereKw
	SystemKw
	ValuesetRefKw
	ContentreferenceKw
)

const (
	RequiredKw Kind = iota + 60
	ExtensibleKw
	PreferredKw
	ExampleKw
)

const (
	// Flags (70-79)
	MsFlag Kind = iota + 70
	SuFlag
	TuFlag
	NFlag
	DFlag
	ModifierFlag
)

// Punctuation (100-149). Plus/PlusEquals keep the reference implementation's
// historical out-of-range codes (1020/1021) rather than being renumbered into
// the 100-149 block.
const (
	Colon       Kind = 100
	Asterisk    Kind = 101
	Equals      Kind = 102
	Caret       Kind = 103
	Dot         Kind = 104
	Hash        Kind = 105
	LParen      Kind = 106
	RParen      Kind = 107
	LBracket    Kind = 108
	RBracket    Kind = 109
	LBrace      Kind = 110
	RBrace      Kind = 111
	RangeDots   Kind = 112
	Comma       Kind = 113
	Minus       Kind = 114
	Gt          Kind = 115
	Lt          Kind = 116
	Question    Kind = 117
	Exclamation Kind = 118
	Percent     Kind = 119
	SingleQuote Kind = 120
	Backslash   Kind = 121
	Slash       Kind = 122
	Arrow       Kind = 123 // "->"
	Plus        Kind = 1020
	PlusEquals  Kind = 1021
)

// Literals (150-199)
const (
	Ident Kind = iota + 150
	String
	Integer
	Decimal
	True
	False
	Code
	URL
	Regex
	Unit
)

// Structural nodes (200-399)
const (
	Root Kind = iota + 200
	Document
)

const (
	AliasNode Kind = iota + 210
	ProfileNode
	ExtensionNode
	ValueSetNode
	CodeSystemNode
	InstanceNode
	InvariantNode
	MappingNode
	LogicalNode
	ResourceNode
	RuleSetNode
)

const (
	ParentClause Kind = iota + 230
	IDClause
	TitleClause
	DescriptionClause
	ExpressionClause
	XpathClause
	SeverityClause
	InstanceofClause
	UsageClause
	SourceClause
	TargetClause
)

const (
	CardRule Kind = iota + 250
	FlagRule
	ValuesetRule
	FixedValueRule
	ContainsRule
	OnlyRule
	ObeysRule
	CaretValueRule
	InsertRule
	PathRule
	AddElementRule
	MappingRule
	AddCRElementRule
)

const (
	VsComponent Kind = iota + 300
	VsConceptComponent
	VsFilterComponent
	VsFilter
	CodeCaretValueRule
	CodeInsertRule
	VsComponentFrom
	VsFromSystem
	VsFromValueset
	VsFilterList
	VsFilterDefinition
	VsFilterOperator
	VsFilterValue
	Concept
	ContainsItem
	Cardinality
	Path
	CodeRef
	TypeRef
	Quantity
	ParameterList
	Parameter
	InsertRuleArgs
	Ratio
)

// Special (400+)
const (
	ErrorKind Kind = 400
	EOF       Kind = 401
	Unknown   Kind = 402
)

// Compound (500+)
const (
	FlagList Kind = iota + 500
	TypeList
	InvariantList
	ContainsItemList
)

// Tombstone marks a node removed by a tree edit; never produced by the parser.
const Tombstone Kind = 999

// IsTrivia reports whether k is whitespace, a comment, or a newline.
func (k Kind) IsTrivia() bool {
	switch k {
	case Whitespace, CommentLine, CommentBlock, Newline:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether k falls in the keyword range.
func (k Kind) IsKeyword() bool { return k >= 10 && k < 100 }

// IsFlag reports whether k is one of the cardinality/modifier flags.
func (k Kind) IsFlag() bool { return k >= 70 && k < 80 }

// IsPunct reports whether k falls in the punctuation range (including the
// out-of-range Plus/PlusEquals quirk).
func (k Kind) IsPunct() bool { return (k >= 100 && k < 150) || k == Plus || k == PlusEquals }

// IsLiteral reports whether k is a literal token. Matches the reference
// implementation's is_literal: Ident, Regex, and Unit are intentionally
// excluded even though they fall in the 150-199 numeric range.
func (k Kind) IsLiteral() bool {
	switch k {
	case String, Integer, Decimal, True, False, Code, URL:
		return true
	default:
		return false
	}
}

// IsNode reports whether k falls in the structural-node range.
func (k Kind) IsNode() bool { return k >= 200 && k < 400 }

// KeywordText returns the canonical spelling for a keyword/flag kind, or ""
// if k is not a keyword.
func (k Kind) KeywordText() string {
	switch k {
	case ProfileKw:
		return "Profile"
	case ExtensionKw:
		return "Extension"
	case ValuesetKw:
		return "ValueSet"
	case CodesystemKw:
		return "CodeSystem"
	case InstanceKw:
		return "Instance"
	case InvariantKw:
		return "Invariant"
	case MappingKw:
		return "Mapping"
	case LogicalKw:
		return "Logical"
	case ResourceKw:
		return "Resource"
	case AliasKw:
		return "Alias"
	case RulesetKw:
		return "RuleSet"
	case ParentKw:
		return "Parent"
	case IdKw:
		return "Id"
	case TitleKw:
		return "Title"
	case DescriptionKw:
		return "Description"
	case ExpressionKw:
		return "Expression"
	case XpathKw:
		return "XPath"
	case SeverityKw:
		return "Severity"
	case InstanceofKw:
		return "InstanceOf"
	case UsageKw:
		return "Usage"
	case SourceKw:
		return "Source"
	case TargetKw:
		return "Target"
	case ContextKw:
		return "Context"
	case CharacteristicsKw:
		return "Characteristics"
	case FromKw:
		return "from"
	case OnlyKw:
		return "only"
	case ObeysKw:
		return "obeys"
	case ContainsKw:
		return "contains"
	case NamedKw:
		return "named"
	case AndKw:
		return "and"
	case OrKw:
		return "or"
	case InsertKw:
		return "insert"
	case IncludeKw:
		return "include"
	case ExcludeKw:
		return "exclude"
	case CodesKw:
		return "codes"
	case WhereKw:
		return "where"
	case SystemKw:
		return "system"
	case RequiredKw:
		return "required"
	case ExtensibleKw:
		return "extensible"
	case PreferredKw:
		return "preferred"
	case ExampleKw:
		return "example"
	case MsFlag:
		return "MS"
	case SuFlag:
		return "SU"
	case TuFlag:
		return "TU"
	case NFlag:
		return "N"
	case DFlag:
		return "D"
	case ModifierFlag:
		return "?!"
	case True:
		return "true"
	case False:
		return "false"
	default:
		return ""
	}
}

// keywordLookup maps canonical source spellings to their keyword Kind.
// Built once; used by the lexer to classify identifiers.
var keywordLookup = map[string]Kind{
	"Profile":         ProfileKw,
	"Extension":       ExtensionKw,
	"ValueSet":        ValuesetKw,
	"CodeSystem":      CodesystemKw,
	"Instance":        InstanceKw,
	"Invariant":       InvariantKw,
	"Mapping":         MappingKw,
	"Logical":         LogicalKw,
	"Resource":        ResourceKw,
	"Alias":           AliasKw,
	"RuleSet":         RulesetKw,
	"Parent":          ParentKw,
	"Id":              IdKw,
	"Title":           TitleKw,
	"Description":     DescriptionKw,
	"Expression":      ExpressionKw,
	"XPath":           XpathKw,
	"Severity":        SeverityKw,
	"InstanceOf":      InstanceofKw,
	"Usage":           UsageKw,
	"Source":          SourceKw,
	"Target":          TargetKw,
	"Context":         ContextKw,
	"Characteristics": CharacteristicsKw,
	"from":            FromKw,
	"only":            OnlyKw,
	"obeys":           ObeysKw,
	"contains":        ContainsKw,
	"named":           NamedKw,
	"and":             AndKw,
	"or":              OrKw,
	"insert":          InsertKw,
	"include":         IncludeKw,
	"exclude":         ExcludeKw,
	"codes":           CodesKw,
	"where":           WhereKw,
	"system":          SystemKw,
	"required":        RequiredKw,
	"extensible":      ExtensibleKw,
	"preferred":       PreferredKw,
	"example":         ExampleKw,
	"true":            True,
	"false":           False,
	"MS":              MsFlag,
	"SU":              SuFlag,
	"TU":              TuFlag,
	"N":               NFlag,
	"D":               DFlag,
}

// LookupKeyword returns the keyword Kind for text, and whether it matched.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywordLookup[text]
	return k, ok
}

// String implements fmt.Stringer for debug output.
func (k Kind) String() string {
	if text := k.KeywordText(); text != "" {
		return fmt.Sprintf("%s(%d)", text, uint16(k))
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}
