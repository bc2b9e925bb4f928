package rules

import "fmt"

// ConfigError reports an invalid rule configuration, returned by
// ConfigurableRule.ValidateConfig.
type ConfigError struct {
	RuleCode string
	Field    string
	Reason   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("rules: invalid configuration for %q: %s", e.RuleCode, e.Reason)
	}
	return fmt.Sprintf("rules: invalid configuration for %q field %q: %s", e.RuleCode, e.Field, e.Reason)
}

// SkipReason explains why a custom rule file was not loaded into the
// registry.
type SkipReason string

const (
	SkipInvalidID     SkipReason = "invalid-id"
	SkipDuplicateID   SkipReason = "duplicate-id"
	SkipCompileError  SkipReason = "compile-error"
	SkipSchemaInvalid SkipReason = "schema-invalid"
)

// RuleError reports a rule file that failed to load, carrying a
// machine-readable SkipReason alongside the human-readable message. A
// RuleError is never fatal to the overall load: the loader logs it and
// skips the offending rule file unless configured to fail fast.
type RuleError struct {
	Path   string
	Reason SkipReason
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rules: %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }
