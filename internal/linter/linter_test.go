package linter

import (
	"testing"

	"github.com/octofhir/fsh-lint/internal/cache"
	"github.com/octofhir/fsh-lint/internal/config"
)

func TestLintFileFlagsBadNamingConvention(t *testing.T) {
	src := "Profile: my_bad_profile\nParent: Patient\n"
	result, err := LintFile(Input{FilePath: "test.fsh", Content: []byte(src), Config: config.Default()})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}

	found := false
	for _, d := range result.Diagnostics {
		if d.RuleID == "style/naming-convention" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a style/naming-convention diagnostic, got %+v", result.Diagnostics)
	}
}

func TestLintFileBridgesDuplicateResourceIDWithoutDoubleCounting(t *testing.T) {
	src := "Profile: ProfileA\nId: shared-id\nParent: Patient\n\nProfile: ProfileB\nId: shared-id\nParent: Patient\n"
	result, err := LintFile(Input{FilePath: "test.fsh", Content: []byte(src), Config: config.Default()})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}

	count := 0
	for _, d := range result.Diagnostics {
		if d.RuleID == "duplicate-resource-id" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 duplicate-resource-id diagnostics (one per colliding definition), got %d: %+v", count, result.Diagnostics)
	}
}

func TestLintFileDisabledRuleViaExclude(t *testing.T) {
	src := "Profile: my_bad_profile\nParent: Patient\n"
	cfg := config.Default()
	cfg.Rules.Exclude = []string{"style/*"}

	result, err := LintFile(Input{FilePath: "test.fsh", Content: []byte(src), Config: cfg})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}
	for _, d := range result.Diagnostics {
		if d.RuleID == "style/naming-convention" {
			t.Fatalf("expected style/naming-convention to be excluded, got %+v", result.Diagnostics)
		}
	}
}

func TestLintFileSeverityOffSuppressesDiagnostics(t *testing.T) {
	src := "Profile: my_bad_profile\nParent: Patient\n"
	cfg := config.Default()
	cfg.Rules.Config = map[string]config.RuleConfig{
		"style/naming-convention": {Severity: "off"},
	}

	result, err := LintFile(Input{FilePath: "test.fsh", Content: []byte(src), Config: cfg})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}
	for _, d := range result.Diagnostics {
		if d.RuleID == "style/naming-convention" {
			t.Fatalf("expected style/naming-convention suppressed by severity=off, got %+v", result.Diagnostics)
		}
	}
}

func TestLintFileSeverityOverrideAppliesToFoundDiagnostics(t *testing.T) {
	src := "Profile: my_bad_profile\nParent: Patient\n"
	cfg := config.Default()
	cfg.Rules.Config = map[string]config.RuleConfig{
		"style/naming-convention": {Severity: "error"},
	}

	result, err := LintFile(Input{FilePath: "test.fsh", Content: []byte(src), Config: cfg})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}
	for _, d := range result.Diagnostics {
		if d.RuleID == "style/naming-convention" && d.Severity.String() != "error" {
			t.Fatalf("expected severity override to apply, got %v", d.Severity)
		}
	}
}

func TestLintFileUsesParseCache(t *testing.T) {
	src := "Profile: MyProfile\nParent: Patient\n"
	parseCache := cache.NewParseResultCache()

	first, err := LintFile(Input{FilePath: "a.fsh", Content: []byte(src), Config: config.Default(), ParseCache: parseCache})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}
	if got := parseCache.Stats().Size; got != 1 {
		t.Fatalf("expected 1 cache entry after first lint, got %d", got)
	}

	second, err := LintFile(Input{FilePath: "b.fsh", Content: []byte(src), Config: config.Default(), ParseCache: parseCache})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}
	if got := parseCache.Stats().Size; got != 1 {
		t.Fatalf("expected cache reuse for identical content, got %d entries", got)
	}
	if first.ParseResult != second.ParseResult {
		t.Fatal("expected the cached ParseResult to be reused across files with identical content")
	}
}

func TestLintFileLoadsConfigWhenNoneSupplied(t *testing.T) {
	src := "Profile: MyProfile\nParent: Patient\n"
	result, err := LintFile(Input{FilePath: "/nonexistent/dir/that/does/not/exist/x.fsh", Content: []byte(src)})
	if err != nil {
		t.Fatalf("LintFile() error: %v", err)
	}
	if result.Config == nil {
		t.Fatal("expected LintFile to resolve a config when none is supplied")
	}
}

func TestEnabledRuleCodesDefaultsToEnabledByDefaultRules(t *testing.T) {
	codes := EnabledRuleCodes(config.Default())
	has := map[string]bool{}
	for _, c := range codes {
		has[c] = true
	}
	if !has["style/naming-convention"] || !has["duplicate-resource-id"] {
		t.Fatalf("expected default-enabled rules present, got %v", codes)
	}
}

func TestEnabledRuleCodesExcludeWins(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Exclude = []string{"duplicate-resource-id"}
	codes := EnabledRuleCodes(cfg)
	for _, c := range codes {
		if c == "duplicate-resource-id" {
			t.Fatalf("expected duplicate-resource-id excluded, got %v", codes)
		}
	}
}

func TestEnabledRuleCodesIncludeOverridesExclude(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Exclude = []string{"style/*"}
	cfg.Rules.Include = []string{"style/naming-convention"}
	codes := EnabledRuleCodes(cfg)
	has := map[string]bool{}
	for _, c := range codes {
		has[c] = true
	}
	if !has["style/naming-convention"] {
		t.Fatalf("expected include to win over a broader exclude, got %v", codes)
	}
}

func TestIsRuleEnabledOffByDefaultRuleAutoEnabledByHavingOptions(t *testing.T) {
	cfg := &config.Config{Rules: config.RulesConfig{
		Config: map[string]config.RuleConfig{
			"experimental/some-rule": {Options: map[string]any{"threshold": 3}},
		},
	}}
	if !isRuleEnabled("experimental/some-rule", false, cfg) {
		t.Fatal("expected an off-by-default rule with options configured to be auto-enabled")
	}
	if isRuleEnabled("experimental/other-rule", false, cfg) {
		t.Fatal("expected an off-by-default rule with no options to stay disabled")
	}
}

func TestIsRuleEnabledNilConfigUsesDefault(t *testing.T) {
	if !isRuleEnabled("anything", true, nil) {
		t.Fatal("expected enabledByDefault=true to hold with nil config")
	}
	if isRuleEnabled("anything", false, nil) {
		t.Fatal("expected enabledByDefault=false to hold with nil config")
	}
}
