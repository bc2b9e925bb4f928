package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/octofhir/fsh-lint/internal/config"
	"github.com/octofhir/fsh-lint/internal/rules"
)

var rulesLog = logrus.WithField("component", "cmd")

// ruleFileExtensions are the formats internal/rules.LoadRuleFile understands.
var ruleFileExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".toml": true,
	".json": true,
}

// loadCustomRules scans cfg.Rules.Dirs (plus any --rules-dir flag values) for
// rule files and registers them into the global rule registry so they run
// alongside the built-in rules for the rest of the process. A rule file that
// fails to load or validate is logged and skipped rather than aborting the
// run, matching the RuleError policy documented on internal/rules.RuleError.
func loadCustomRules(cmd *cli.Command, cfg *config.Config) error {
	dirs := append([]string{}, cfg.Rules.Dirs...)
	if cmd.IsSet("rules-dir") {
		dirs = append(dirs, cmd.StringSlice("rules-dir")...)
	}
	if len(dirs) == 0 {
		return nil
	}

	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			rulesLog.WithError(err).WithField("dir", dir).Warn("rule directory unreadable, skipping")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !ruleFileExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	for _, err := range rules.LoadRuleFilesInto(rules.DefaultRegistry(), paths) {
		rulesLog.WithError(err).Warn("custom rule file skipped")
	}
	return nil
}

// rulesDirFlag is shared by lint and fix so both pick up user-authored rules
// the same way.
func rulesDirFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "rules-dir",
		Usage:   "Directory to scan for custom rule files (.yaml, .toml, .json); can be repeated",
		Sources: cli.EnvVars("FSHLINT_RULES_DIRS"),
	}
}
