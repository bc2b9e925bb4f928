// Package rules provides the core rule system for the FSH linter: the Rule
// interface every check implements, a registry rules self-register into via
// init(), and the read-only input contract a rule is handed.
package rules

import (
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/fishable"
	"github.com/octofhir/fsh-lint/internal/semantic"
)

// LintInput contains everything a rule needs to check one FSH file. Rules
// should work against the semantic model and typed AST, not raw source
// text, except for snippet extraction.
//
// The executor guarantees Model and Source are always non-nil when Check is
// called: if parsing fails outright, the linter reports parse errors and
// does not invoke any rule against that file.
//
// LintInput is read-only. Rules must not mutate any field (File, Model,
// Source, Config); if a rule needs to transform data, it must copy it
// first. This keeps rules independent of each other and safe to run
// concurrently across files.
type LintInput struct {
	// File is the path to the FSH file being linted.
	File string

	// Model is the semantic model built from this file: AST, symbol
	// table, alias table, extracted references, and construction-time
	// issues (guaranteed non-nil).
	Model *semantic.Model

	// Source is the raw source content of the file.
	Source []byte

	// Fishable resolves references to resources not declared in the file
	// being linted: core FHIR resources and resources from dependency
	// packages. May be nil for rules that never need it.
	Fishable fishable.Fishable

	// AliasTable is the project-wide alias table (shared across files, not
	// just this file's Model.Symbols), for rules that need to resolve an
	// alias to its URL.
	AliasTable *semantic.AliasTable

	// Config is the rule-specific configuration (type depends on rule;
	// nil unless the rule is a ConfigurableRule and config was supplied).
	Config any
}

// Metadata contains static information about a rule, independent of any
// particular run.
type Metadata struct {
	// Code is the unique identifier, e.g. "naming-convention",
	// "invalid-caret-path".
	Code string

	// Name is the human-readable rule name.
	Name string

	// Description explains what the rule checks.
	Description string

	// DocURL links to detailed documentation.
	DocURL string

	// DefaultSeverity is the severity used when configuration does not
	// override it.
	DefaultSeverity diagnostic.Severity

	// Category groups related rules, e.g. "correctness", "style",
	// "security".
	Category string

	// EnabledByDefault indicates if the rule runs without explicit opt-in.
	EnabledByDefault bool

	// IsExperimental marks rules that may change or be removed.
	IsExperimental bool
}

// Rule is the interface every lint rule implements.
type Rule interface {
	// Metadata returns static information about the rule.
	Metadata() Metadata

	// Check runs the rule against input and returns any diagnostics.
	Check(input LintInput) []diagnostic.Diagnostic
}

// ConfigurableRule is an optional interface for rules that accept
// configuration beyond severity, e.g. an allowed-name regex.
type ConfigurableRule interface {
	Rule

	// DefaultConfig returns the default configuration for this rule.
	DefaultConfig() any

	// ValidateConfig checks whether config is valid for this rule.
	ValidateConfig(config any) error
}
