// Package formatter canonicalizes FSH source text: one metadata clause per
// line in a fixed order, rule lines beginning with "*", caret groups aligned
// within a block, and whitespace normalized. It never invents content —
// on a parse error it returns the input unchanged, matching the contract
// the round-trip validator in roundtrip.go checks.
package formatter

import (
	"strconv"
	"strings"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Options controls canonical output shape. Grounded on spec.md's
// formatter option surface; the zero value is not valid, use DefaultOptions.
type Options struct {
	IndentSize                int
	MaxLineWidth              int
	AlignCarets               bool
	BlankLineBeforeRuleGroups bool
	PreserveBlankLines       bool
}

// DefaultOptions returns the formatter's documented defaults.
func DefaultOptions() Options {
	return Options{
		IndentSize:                2,
		MaxLineWidth:              100,
		AlignCarets:               true,
		BlankLineBeforeRuleGroups: false,
		PreserveBlankLines:        true,
	}
}

// Result is the outcome of formatting one document.
type Result struct {
	Output  string
	Changed bool
}

// Format parses src, walks the resulting tree, and emits canonical text. A
// parse error leaves src untouched and reports Changed=false rather than
// risk emitting output from a broken tree.
func Format(src string, opts Options) (*Result, error) {
	pr := syntax.Parse(src)
	if len(pr.Errors) > 0 {
		return &Result{Output: src, Changed: false}, nil
	}

	doc := ast.NewDocument(pr.Root)
	out := emitDocument(doc, opts)
	return &Result{Output: out, Changed: out != src}, nil
}

// FormatRange formats only the definitions whose byte range intersects
// [start, end), leaving every byte outside that range verbatim. Grounded on
// spec.md §4.9's range-format variant.
func FormatRange(src string, start, end int, opts Options) (*Result, error) {
	pr := syntax.Parse(src)
	if len(pr.Errors) > 0 {
		return &Result{Output: src, Changed: false}, nil
	}

	doc := ast.NewDocument(pr.Root)
	defs := doc.Definitions()

	var b strings.Builder
	cursor := 0
	changed := false
	for _, def := range defs {
		dStart, dEnd := def.Node().Range()
		if dEnd <= start || dStart >= end {
			continue
		}
		// The definition overlaps the requested range: emit the verbatim
		// gap before it, then its canonical text, and advance the cursor.
		b.WriteString(src[cursor:dStart])
		lines := emitDefinition(def, opts)
		rendered := strings.Join(lines, "\n") + "\n"
		if rendered != src[dStart:dEnd] {
			changed = true
		}
		b.WriteString(rendered)
		cursor = dEnd
	}
	b.WriteString(src[cursor:])

	return &Result{Output: b.String(), Changed: changed}, nil
}

// emitDocument renders every top-level definition in order, separated by at
// most one blank line, and ensures the file ends with a single newline.
func emitDocument(doc *ast.Document, opts Options) string {
	var b strings.Builder
	defs := doc.Definitions()

	for i, def := range defs {
		if i > 0 {
			if opts.PreserveBlankLines && syntax.BlankLinesBefore(def.Node()) > 0 {
				b.WriteString("\n")
			}
		}
		for _, line := range emitDefinition(def, opts) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	out := b.String()
	out = strings.TrimRight(out, "\n") + "\n"
	return out
}

// metaClause is one metadata line: a label ("Parent", "Id", ...) and its
// value, emitted only when the value is non-empty.
type metaClause struct {
	label string
	value string
}

func emitDefinition(def ast.Definition, opts Options) []string {
	var lines []string

	leading := precedingComments(def.Node())
	lines = append(lines, leading...)

	switch d := def.(type) {
	case *ast.Alias:
		lines = append(lines, "Alias: "+d.Name()+" = "+d.URL())
		return lines
	case *ast.Profile:
		lines = append(lines, "Profile: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Parent", d.Parent()}, {"Id", d.ID()}, {"Title", d.Title()}, {"Description", d.Description()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.Extension:
		lines = append(lines, "Extension: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Parent", d.Parent()}, {"Id", d.ID()}, {"Title", d.Title()}, {"Description", d.Description()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.ValueSet:
		lines = append(lines, "ValueSet: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Id", d.ID()}, {"Title", d.Title()}, {"Description", d.Description()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.CodeSystem:
		lines = append(lines, "CodeSystem: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Id", d.ID()}, {"Title", d.Title()}, {"Description", d.Description()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.Instance:
		lines = append(lines, "Instance: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"InstanceOf", d.InstanceOf()}, {"Title", d.Title()}, {"Description", d.Description()}, {"Usage", d.Usage()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.Invariant:
		lines = append(lines, "Invariant: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Description", d.Description()}, {"Expression", d.Expression()}, {"XPath", d.XPath()}, {"Severity", d.Severity()}})
	case *ast.Mapping:
		lines = append(lines, "Mapping: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Source", d.Source()}, {"Target", d.Target()}, {"Title", d.Title()}, {"Description", d.Description()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.Logical:
		lines = append(lines, "Logical: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Parent", d.Parent()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.Resource:
		lines = append(lines, "Resource: "+d.Name())
		lines = appendClauses(lines, []metaClause{{"Parent", d.Parent()}})
		lines = appendRules(lines, d.Rules(), opts)
	case *ast.RuleSet:
		lines = append(lines, "RuleSet: "+d.Name())
		lines = appendRules(lines, d.Rules(), opts)
	default:
		// Unknown definition shape: fall back to its raw source text rather
		// than drop it.
		lines = append(lines, strings.TrimRight(def.Node().Text(), "\n"))
	}

	return lines
}

// appendClauses renders a definition's metadata clauses in the fixed order
// callers pass in, one "Label: value" line per non-empty clause. Every FSH
// metadata clause (Parent, Id, Title, ...) is header style, not a rule line.
func appendClauses(lines []string, clauses []metaClause) []string {
	for _, c := range clauses {
		if c.value == "" {
			continue
		}
		lines = append(lines, c.label+": "+requote(c.value))
	}
	return lines
}

// appendRules renders a definition's rule lines, inserting the configured
// blank line before the first rule and aligning caret groups.
func appendRules(lines []string, rules []ast.Rule, opts Options) []string {
	if len(rules) == 0 {
		return lines
	}
	if opts.BlankLineBeforeRuleGroups {
		lines = append(lines, "")
	}

	rendered := make([]string, len(rules))
	for i, r := range rules {
		rendered[i] = precedingCommentsAndText(r, opts)
	}

	if opts.AlignCarets {
		rendered = alignCaretGroups(rules, rendered)
	}

	for i, r := range rules {
		if i > 0 && opts.PreserveBlankLines && syntax.BlankLinesBefore(r.Node()) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, rendered[i])
	}
	return lines
}

func precedingCommentsAndText(r ast.Rule, _ Options) string {
	text := strings.TrimSpace(r.Text())
	text = collapseInternalWhitespace(text)
	if trailing := trailingComment(r.Node()); trailing != "" {
		text += "  // " + trailing
	}
	return text
}

// collapseInternalWhitespace normalizes a rule line's internal spacing
// (runs of spaces/tabs collapse to one) without touching string-literal
// contents, so re-quoted values keep their internal whitespace intact.
func collapseInternalWhitespace(s string) string {
	var b strings.Builder
	inString := false
	lastWasSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inString = !inString
			b.WriteByte(c)
			lastWasSpace = false
			continue
		}
		if inString {
			b.WriteByte(c)
			continue
		}
		if c == ' ' || c == '\t' {
			if lastWasSpace {
				continue
			}
			lastWasSpace = true
			b.WriteByte(' ')
			continue
		}
		lastWasSpace = false
		b.WriteByte(c)
	}
	return b.String()
}

// alignCaretGroups pads the text before "=" in contiguous CaretValueRule
// runs so their "=" signs share a common column, matching spec.md §4.9's
// "caret groups in the same block may have ^ aligned to a common column".
func alignCaretGroups(rules []ast.Rule, rendered []string) []string {
	out := make([]string, len(rendered))
	copy(out, rendered)

	i := 0
	for i < len(rules) {
		if rules[i].Kind() != syntax.CaretValueRule {
			i++
			continue
		}
		j := i
		for j < len(rules) && rules[j].Kind() == syntax.CaretValueRule {
			j++
		}
		alignEqualsRun(out[i:j])
		i = j
	}
	return out
}

func alignEqualsRun(group []string) {
	if len(group) < 2 {
		return
	}
	maxPrefix := 0
	prefixes := make([]string, len(group))
	suffixes := make([]string, len(group))
	ok := make([]bool, len(group))
	for i, line := range group {
		idx := strings.Index(line, " = ")
		if idx < 0 {
			continue
		}
		prefixes[i] = line[:idx]
		suffixes[i] = line[idx+3:]
		ok[i] = true
		if len(prefixes[i]) > maxPrefix {
			maxPrefix = len(prefixes[i])
		}
	}
	for i := range group {
		if !ok[i] {
			continue
		}
		pad := strings.Repeat(" ", maxPrefix-len(prefixes[i]))
		group[i] = prefixes[i] + pad + " = " + suffixes[i]
	}
}

// requote normalizes a string-shaped value's quoting. Non-string values
// (numbers, codes, booleans, bare URLs) pass through unchanged.
func requote(value string) string {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return value
	}
	unquoted, err := strconv.Unquote(value)
	if err != nil {
		return value
	}
	return strconv.Quote(unquoted)
}

// precedingComments returns a definition's leading "//" comments as
// standalone lines, preserved verbatim ahead of its header.
func precedingComments(n *syntax.SyntaxNode) []string {
	pieces := syntax.LeadingTrivia(n)
	var out []string
	for _, c := range syntax.LineComments(pieces) {
		out = append(out, "// "+c)
	}
	return out
}

// trailingComment returns the same-line trailing "//" comment text (without
// the "//" marker) attached to n, or "" if none.
func trailingComment(n *syntax.SyntaxNode) string {
	pieces := syntax.TrailingTrivia(n)
	comments := syntax.LineComments(pieces)
	if len(comments) == 0 {
		return ""
	}
	return comments[0]
}
