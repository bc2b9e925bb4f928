// Package fix applies diagnostic suggestions to source files: conflict
// detection, safety-threshold and fix-mode filtering, atomic per-candidate
// application, unified-diff preview, and rollback.
package fix

import (
	"github.com/octofhir/fsh-lint/internal/config"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

// Re-export config.FixMode for convenience, same shape as the teacher's
// fix.FixMode re-export of config.FixMode.
type FixMode = config.FixMode

const (
	FixModeNever      = config.FixModeNever
	FixModeExplicit   = config.FixModeExplicit
	FixModeAlways     = config.FixModeAlways
	FixModeUnsafeOnly = config.FixModeUnsafeOnly
)

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	RuleID      string
	Description string
	Location    diagnostic.Location
	Suggestion  diagnostic.Suggestion
}

// SkipReason explains why a candidate fix was not applied.
type SkipReason int

const (
	SkipConflict SkipReason = iota
	SkipSafety
	SkipRuleFilter
	SkipFixMode
	SkipNoEdit
	SkipValidation
	SkipMaxFixes
)

func (r SkipReason) String() string {
	switch r {
	case SkipConflict:
		return "conflicts with another fix"
	case SkipSafety:
		return "below safety threshold"
	case SkipRuleFilter:
		return "rule not in fix-rule list"
	case SkipFixMode:
		return "disabled by fix mode config"
	case SkipNoEdit:
		return "suggestion has no edit"
	case SkipValidation:
		return "would produce unbalanced output"
	case SkipMaxFixes:
		return "max-fixes-per-file limit reached"
	default:
		return "unknown reason"
	}
}

// SkippedFix records a fix that couldn't be applied.
type SkippedFix struct {
	RuleID   string
	Reason   SkipReason
	Location diagnostic.Location
}

// FileChange describes the result of fixing a single file.
type FileChange struct {
	Path            string
	OriginalContent []byte
	ModifiedContent []byte
	FixesApplied    []AppliedFix
	FixesSkipped    []SkippedFix
}

// HasChanges reports whether any fix was applied to this file.
func (fc *FileChange) HasChanges() bool {
	return len(fc.FixesApplied) > 0
}
