package fix

import (
	"slices"

	"github.com/octofhir/fsh-lint/internal/config"
)

// fixModeAllowed reports whether a rule's configured fix mode permits
// applying a candidate given the current safety threshold and rule filter.
// Grounded on the teacher's Fixer.fixModeAllowed; the teacher reads a
// pre-built map[file]map[rule]FixMode (BuildFixModes, collapsed here since
// this project's config.RulesConfig is flat rather than per-tool-namespace
// — see internal/config/rules.go) so this reads straight from cfg.
func fixModeAllowed(cfg *config.Config, ruleID string, safe bool, ruleFilter []string) bool {
	mode := config.FixModeAlways
	if cfg != nil {
		mode = cfg.Rules.GetFixMode(ruleID)
	}

	switch mode {
	case config.FixModeNever:
		return false
	case config.FixModeExplicit:
		return len(ruleFilter) > 0 && slices.Contains(ruleFilter, ruleID)
	case config.FixModeUnsafeOnly:
		return !safe
	case config.FixModeAlways:
		return true
	default:
		return true
	}
}
