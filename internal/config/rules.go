package config

import (
	"maps"
	"strings"
)

// FixMode controls when auto-fixes are applied for a rule.
type FixMode string

const (
	// FixModeNever disables fixes even with --fix.
	FixModeNever FixMode = "never"

	// FixModeExplicit requires --fix-rule to apply.
	FixModeExplicit FixMode = "explicit"

	// FixModeAlways applies with --fix when the safety threshold is met
	// (default).
	FixModeAlways FixMode = "always"

	// FixModeUnsafeOnly requires --fix-unsafe to apply.
	FixModeUnsafeOnly FixMode = "unsafe-only"
)

// ExcludeConfig defines file exclusion patterns for a rule.
type ExcludeConfig struct {
	// Paths contains glob patterns for files to exclude.
	Paths []string `koanf:"paths"`
}

// RuleConfig represents per-rule configuration. Specified in TOML as:
//
//	[rules.config."style/naming-convention"]
//	severity = "warning"
//	fix = "always"
//	# rule-specific options are flattened at this level
type RuleConfig struct {
	// Severity overrides the rule's default severity. Use "off" to disable
	// the rule.
	Severity string `koanf:"severity"`

	// Fix controls when auto-fixes are applied for this rule.
	Fix FixMode `koanf:"fix"`

	// Exclude contains path patterns where this rule should not run.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Options contains rule-specific configuration options.
	Options map[string]any `koanf:",remain"`
}

// RulesConfig contains rule selection and per-rule configuration.
//
// Example TOML (Ruff-style selection):
//
//	[rules]
//	include = ["style/*"]
//	exclude = ["style/naming-convention"]
//
//	[rules.config."security/secrets-in-fixed-value"]
//	severity = "error"
type RulesConfig struct {
	// Include explicitly enables rules by code or "namespace/*" pattern.
	Include []string `koanf:"include"`

	// Exclude explicitly disables rules by code or "namespace/*" pattern.
	Exclude []string `koanf:"exclude"`

	// Dirs lists directories scanned (non-recursively) for user-authored
	// rule files (.yaml, .yml, .toml, .json) loaded via
	// internal/rules.LoadRuleFilesInto and registered alongside the
	// built-in rules.
	Dirs []string `koanf:"dirs"`

	// Config holds per-rule-code configuration.
	Config map[string]RuleConfig `koanf:"config"`
}

// Get returns the configuration for a specific rule, or nil if unconfigured.
func (rc *RulesConfig) Get(ruleCode string) *RuleConfig {
	if rc == nil || rc.Config == nil {
		return nil
	}
	if cfg, ok := rc.Config[ruleCode]; ok {
		return &cfg
	}
	return nil
}

// IsEnabled reports whether Include/Exclude patterns force ruleCode on or
// off. Returns nil when neither list mentions it, meaning the rule's own
// default applies. Include takes precedence over Exclude.
func (rc *RulesConfig) IsEnabled(ruleCode string) *bool {
	if rc == nil {
		return nil
	}
	if matchesAnyPattern(ruleCode, rc.Include) {
		return boolPtr(true)
	}
	if matchesAnyPattern(ruleCode, rc.Exclude) {
		return boolPtr(false)
	}
	return nil
}

func matchesAnyPattern(ruleCode string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(ruleCode, pattern) {
			return true
		}
	}
	return false
}

func matchesPattern(ruleCode, pattern string) bool {
	if pattern == "*" || ruleCode == pattern {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		ns, _ := parseRuleCode(ruleCode)
		return ns == prefix
	}
	return false
}

// parseRuleCode splits a rule code into its namespace and name.
// "style/naming-convention" -> ("style", "naming-convention")
// "duplicate-resource-id" -> ("", "duplicate-resource-id")
func parseRuleCode(ruleCode string) (string, string) {
	if idx := strings.Index(ruleCode, "/"); idx > 0 {
		return ruleCode[:idx], ruleCode[idx+1:]
	}
	return "", ruleCode
}

// GetSeverity returns the severity override for a rule, or "" if none.
func (rc *RulesConfig) GetSeverity(ruleCode string) string {
	if cfg := rc.Get(ruleCode); cfg != nil {
		return cfg.Severity
	}
	return ""
}

// GetFixMode returns the fix mode for a rule, defaulting to FixModeAlways.
func (rc *RulesConfig) GetFixMode(ruleCode string) FixMode {
	if cfg := rc.Get(ruleCode); cfg != nil && cfg.Fix != "" {
		return cfg.Fix
	}
	return FixModeAlways
}

// GetExcludePaths returns the file-exclusion patterns configured for a rule.
func (rc *RulesConfig) GetExcludePaths(ruleCode string) []string {
	if cfg := rc.Get(ruleCode); cfg != nil && cfg.Exclude.Paths != nil {
		out := make([]string, len(cfg.Exclude.Paths))
		copy(out, cfg.Exclude.Paths)
		return out
	}
	return nil
}

// GetOptions returns a shallow copy of rule-specific options, or nil.
func (rc *RulesConfig) GetOptions(ruleCode string) map[string]any {
	if cfg := rc.Get(ruleCode); cfg != nil && cfg.Options != nil {
		out := make(map[string]any, len(cfg.Options))
		maps.Copy(out, cfg.Options)
		return out
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
