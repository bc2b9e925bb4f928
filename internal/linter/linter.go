// Package linter provides the shared lint pipeline used by the CLI: config
// discovery → parse → semantic model → rule execution → diagnostic
// collection.
//
// The pipeline: config discovery → parse → semantic model → rule execution
// → diagnostic collection. Callers use [LintFile] to run the pipeline for
// one file; [internal/executor] fans this out across many files.
package linter

import (
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/octofhir/fsh-lint/internal/cache"
	"github.com/octofhir/fsh-lint/internal/config"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/fishable"
	"github.com/octofhir/fsh-lint/internal/rules"
	_ "github.com/octofhir/fsh-lint/internal/rules/all" // register all builtin rules
	"github.com/octofhir/fsh-lint/internal/semantic"
	"github.com/octofhir/fsh-lint/internal/syntax"
)

// Level is a log level for the Channel interface.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Channel receives diagnostic output from the lint/fix pipeline.
// Implementations map to environment-specific UX (CLI stderr, LSP
// notifications, etc.).
type Channel interface {
	Log(level Level, msg string)
	Progress(title string, pct int) // -1 = indeterminate
	Warn(msg string)
}

// Input configures a single invocation of [LintFile].
type Input struct {
	// FilePath is used for config discovery and diagnostic locations.
	FilePath string

	// Content is the file content to lint. If nil, LintFile reads from FilePath.
	Content []byte

	// Config is the resolved configuration. If nil, LintFile loads from FilePath.
	Config *config.Config

	// Fishable resolves FHIR canonical artifacts for cross-file/cross-package
	// rule checks. If nil, rules that need it degrade gracefully (the
	// interface's zero value, nil, is a valid "nothing resolvable" answer).
	Fishable fishable.Fishable

	// ParseCache, if non-nil, is consulted before parsing and populated after.
	ParseCache *cache.ParseResultCache

	// AliasTable, if non-nil, is shared across files in the same project so
	// $name aliases defined in one file resolve when linting another. A
	// fresh, file-local table is used if nil.
	AliasTable *semantic.AliasTable

	// Channel receives progress and diagnostic output. Nil means silent.
	Channel Channel
}

// Result contains the output of [LintFile].
type Result struct {
	// Diagnostics are the raw findings before severity-filtering.
	Diagnostics []diagnostic.Diagnostic

	// ParseResult is the parsed file's lossless syntax tree.
	ParseResult *syntax.ParseResult

	// Model is the semantic analysis of the file.
	Model *semantic.Model

	// Config is the resolved config (loaded or passed in via Input).
	Config *config.Config
}

var log = logrus.WithField("component", "linter")

// LintFile runs the full lint pipeline for one file. It returns raw
// diagnostics before severity filtering.
func LintFile(input Input) (*Result, error) {
	content := input.Content
	if content == nil {
		var err error
		content, err = os.ReadFile(input.FilePath)
		if err != nil {
			return nil, err
		}
	}

	cfg := input.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(input.FilePath)
		if err != nil {
			log.WithError(err).WithField("file", input.FilePath).Warn("config load failed, using defaults")
			cfg = config.Default()
		}
	}

	parseResult := parse(content, input.ParseCache)
	aliasTable := input.AliasTable
	if aliasTable == nil {
		aliasTable = semantic.NewAliasTable()
	}
	model := semantic.NewBuilder(parseResult, content, input.FilePath).
		WithAliasTable(aliasTable).
		Build()

	enabled := EnabledRuleCodes(cfg)
	enabledSet := make(map[string]struct{}, len(enabled))
	for _, code := range enabled {
		enabledSet[code] = struct{}{}
	}

	baseInput := rules.LintInput{
		File:       input.FilePath,
		Model:      model,
		Source:     content,
		Fishable:   input.Fishable,
		AliasTable: aliasTable,
	}

	diagnostics := make([]diagnostic.Diagnostic, 0, len(model.ConstructionIssues))

	// Construction-time issues not already bridged by a configurable rule
	// (duplicate-resource-id has its own rule so it can be disabled/
	// re-severitized like any other; the rest are always-on correctness
	// checks, same as the teacher's direct semantic.Issue -> Violation path).
	for _, issue := range model.ConstructionIssues {
		if issue.Code == "duplicate-resource-id" {
			continue
		}
		diagnostics = append(diagnostics, diagnosticFromIssue(input.FilePath, model, issue))
	}

	registry := rules.DefaultRegistry()
	for _, rule := range registry.All() {
		code := rule.Metadata().Code
		if _, ok := enabledSet[code]; !ok {
			continue
		}
		ruleInput := baseInput
		ruleInput.Config = cfg.Rules.GetOptions(code)
		found := rule.Check(ruleInput)
		diagnostics = append(diagnostics, applySeverityOverride(found, code, cfg)...)
	}

	return &Result{
		Diagnostics: diagnostics,
		ParseResult: parseResult,
		Model:       model,
		Config:      cfg,
	}, nil
}

func parse(content []byte, parseCache *cache.ParseResultCache) *syntax.ParseResult {
	if parseCache == nil {
		return syntax.Parse(string(content))
	}
	hash := cache.HashContent(string(content))
	if cached, ok := parseCache.Get(hash); ok {
		return cached
	}
	result := syntax.Parse(string(content))
	parseCache.Insert(hash, result)
	return result
}

func applySeverityOverride(found []diagnostic.Diagnostic, ruleCode string, cfg *config.Config) []diagnostic.Diagnostic {
	sevOverride := cfg.Rules.GetSeverity(ruleCode)
	if sevOverride == "" || sevOverride == "off" {
		if sevOverride == "off" {
			return nil
		}
		return found
	}
	sev, err := diagnostic.ParseSeverity(sevOverride)
	if err != nil {
		return found
	}
	for i := range found {
		found[i].Severity = sev
	}
	return found
}

func diagnosticFromIssue(file string, model *semantic.Model, issue semantic.Issue) diagnostic.Diagnostic {
	line, col := model.SourceMap.Position(issue.Offset)
	return diagnostic.Diagnostic{
		RuleID:   issue.Code,
		Severity: severityFromSemantic(issue.Severity),
		Message:  issue.Message,
		Category: "correctness",
		Location: diagnostic.Location{
			File: file, Offset: issue.Offset,
			Line: line, Column: col, EndLine: line, EndColumn: col,
		},
	}
}

func severityFromSemantic(s semantic.Severity) diagnostic.Severity {
	switch s {
	case semantic.SeverityError:
		return diagnostic.Error
	case semantic.SeverityWarning:
		return diagnostic.Warning
	case semantic.SeverityInfo:
		return diagnostic.Info
	case semantic.SeverityHint:
		return diagnostic.Hint
	default:
		return diagnostic.Warning
	}
}

// EnabledRuleCodes returns the set of rule codes active for cfg: every
// registered rule whose enablement resolves to true once include/exclude
// patterns, severity overrides, and the rule's own default are applied.
func EnabledRuleCodes(cfg *config.Config) []string {
	enabledSet := make(map[string]struct{})

	registry := rules.DefaultRegistry()
	for _, rule := range registry.All() {
		meta := rule.Metadata()
		if isRuleEnabled(meta.Code, meta.EnabledByDefault, cfg) {
			enabledSet[meta.Code] = struct{}{}
		}
	}

	out := make([]string, 0, len(enabledSet))
	for code := range enabledSet {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func isRuleEnabled(ruleCode string, enabledByDefault bool, cfg *config.Config) bool {
	if cfg == nil {
		return enabledByDefault
	}
	if enabled := cfg.Rules.IsEnabled(ruleCode); enabled != nil {
		return *enabled
	}
	if sev := cfg.Rules.GetSeverity(ruleCode); sev != "" {
		return sev != "off"
	}
	if !enabledByDefault {
		ruleConfig := cfg.Rules.Get(ruleCode)
		return ruleConfig != nil && len(ruleConfig.Options) > 0
	}
	return true
}
