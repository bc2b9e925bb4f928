// Package secretsinfixedvalue scans FixedValueRule and CaretValueRule
// string literals for leaked credentials, the FSH analog of the teacher's
// Dockerfile ARG/ENV/RUN literal scanning: an implementation guide author
// who pastes a real API key into a fixed-value example ("* identifier =
// \"sk_live_...\"") leaks it the same way a Dockerfile ENV does.
package secretsinfixedvalue

import (
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/octofhir/fsh-lint/internal/ast"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/rules"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Code is this rule's stable identifier.
const Code = "security/secrets-in-fixed-value"

func init() {
	rules.Register(&Rule{})
}

// Rule implements rules.Rule. The gitleaks detector is expensive to build
// (it loads a large curated pattern database), so it is built once, lazily,
// and reused across every Check call.
type Rule struct {
	once     sync.Once
	detector *detect.Detector
}

// Metadata returns static information about the rule.
func (*Rule) Metadata() rules.Metadata {
	return rules.Metadata{
		Code:             Code,
		Name:             "secrets-in-fixed-value",
		Description:      "Detects hardcoded secrets and credentials in FixedValueRule/CaretValueRule literals",
		DefaultSeverity:  diagnostic.Error,
		Category:         "security",
		EnabledByDefault: true,
		IsExperimental:   true,
	}
}

func (r *Rule) ensureDetector() *detect.Detector {
	r.once.Do(func() {
		d, err := detect.NewDetectorDefaultConfig()
		if err == nil {
			r.detector = d
		}
	})
	return r.detector
}

// Check scans every fixed-value literal in input for leaked secrets.
func (r *Rule) Check(input rules.LintInput) []diagnostic.Diagnostic {
	detector := r.ensureDetector()
	if detector == nil {
		return nil
	}

	var out []diagnostic.Diagnostic
	for _, def := range input.Model.DocumentAST.Definitions() {
		for _, rl := range rulesOf(def) {
			if rl.Kind() != syntax.FixedValueRule && rl.Kind() != syntax.CaretValueRule {
				continue
			}
			value := rl.FixedValue()
			if value == "" {
				continue
			}
			out = append(out, r.scan(input, rl, value)...)
		}
	}
	return out
}

func rulesOf(def ast.Definition) []ast.Rule {
	type ruleLister interface{ Rules() []ast.Rule }
	if rl, ok := def.(ruleLister); ok {
		return rl.Rules()
	}
	return nil
}

func (r *Rule) scan(input rules.LintInput, rl ast.Rule, value string) []diagnostic.Diagnostic {
	findings := r.detector.DetectString(value)
	if len(findings) == 0 {
		return nil
	}

	offset, end := rl.Node().Offset(), rl.Node().EndOffset()
	startLine, startCol := input.Model.SourceMap.Position(offset)
	endLine, endCol := input.Model.SourceMap.Position(end)
	loc := diagnostic.Location{
		File: input.File, Offset: offset, Length: end - offset,
		Line: startLine, Column: startCol, EndLine: endLine, EndColumn: endCol,
	}

	var out []diagnostic.Diagnostic
	for _, finding := range findings {
		msg := finding.Description
		if msg == "" {
			msg = "Potential secret detected"
		}
		out = append(out, diagnostic.Diagnostic{
			RuleID:   Code,
			Severity: diagnostic.Error,
			Message:  msg + " in fixed value: " + redact(finding.Secret),
			Category: "security",
			Location: loc,
		})
	}
	return out
}

// redact keeps a short prefix/suffix of a detected secret for the message,
// masking the rest so the diagnostic itself doesn't republish the leak.
func redact(secret string) string {
	const keep = 4
	if len(secret) <= keep*2 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:keep] + strings.Repeat("*", len(secret)-keep*2) + secret[len(secret)-keep:]
}
