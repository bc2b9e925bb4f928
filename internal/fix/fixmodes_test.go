package fix

import (
	"testing"

	"github.com/octofhir/fsh-lint/internal/config"
)

func cfgWithFixMode(ruleID string, mode config.FixMode) *config.Config {
	return &config.Config{
		Rules: config.RulesConfig{
			Config: map[string]config.RuleConfig{
				ruleID: {Fix: mode},
			},
		},
	}
}

func TestFixModeAllowedNeverDisables(t *testing.T) {
	cfg := cfgWithFixMode("r", config.FixModeNever)
	if fixModeAllowed(cfg, "r", true, nil) {
		t.Error("FixModeNever should disallow the fix")
	}
}

func TestFixModeAllowedExplicitRequiresRuleFilter(t *testing.T) {
	cfg := cfgWithFixMode("r", config.FixModeExplicit)
	if fixModeAllowed(cfg, "r", true, nil) {
		t.Error("FixModeExplicit without a rule filter should disallow the fix")
	}
	if !fixModeAllowed(cfg, "r", true, []string{"r"}) {
		t.Error("FixModeExplicit with the rule in the filter should allow the fix")
	}
}

func TestFixModeAllowedUnsafeOnlyRequiresUnsafe(t *testing.T) {
	cfg := cfgWithFixMode("r", config.FixModeUnsafeOnly)
	if fixModeAllowed(cfg, "r", true, nil) {
		t.Error("FixModeUnsafeOnly should disallow a safe fix")
	}
	if !fixModeAllowed(cfg, "r", false, nil) {
		t.Error("FixModeUnsafeOnly should allow an unsafe fix")
	}
}

func TestFixModeAllowedDefaultsToAlwaysWhenUnconfigured(t *testing.T) {
	if !fixModeAllowed(nil, "r", true, nil) {
		t.Error("an unconfigured rule should default to FixModeAlways")
	}
}
