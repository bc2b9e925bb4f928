package config

import "fmt"

var validFormats = map[string]bool{
	"text": true, "json": true, "sarif": true, "github-actions": true, "compact": true,
}

var validFailLevels = map[string]bool{
	"error": true, "warning": true, "info": true, "style": true, "none": true,
}

var validSeverities = map[string]bool{
	"off": true, "error": true, "warning": true, "info": true, "hint": true, "style": true,
}

var validFixModes = map[FixMode]bool{
	FixModeNever: true, FixModeExplicit: true, FixModeAlways: true, FixModeUnsafeOnly: true,
}

// Validate checks cfg for internally inconsistent values (unknown output
// format, unknown fail level, unknown per-rule severity/fix mode) that
// koanf's structural unmarshal wouldn't catch on its own.
func Validate(cfg *Config) error {
	if cfg.Output.Format != "" && !validFormats[cfg.Output.Format] {
		return fmt.Errorf("config: unknown output format %q", cfg.Output.Format)
	}
	if cfg.Output.FailLevel != "" && !validFailLevels[cfg.Output.FailLevel] {
		return fmt.Errorf("config: unknown fail-level %q", cfg.Output.FailLevel)
	}
	for code, rc := range cfg.Rules.Config {
		if rc.Severity != "" && !validSeverities[rc.Severity] {
			return fmt.Errorf("config: rule %q has unknown severity %q", code, rc.Severity)
		}
		if rc.Fix != "" && !validFixModes[rc.Fix] {
			return fmt.Errorf("config: rule %q has unknown fix mode %q", code, rc.Fix)
		}
	}
	return nil
}
