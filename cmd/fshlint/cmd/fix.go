package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/octofhir/fsh-lint/internal/discovery"
	"github.com/octofhir/fsh-lint/internal/executor"
	"github.com/octofhir/fsh-lint/internal/fix"
	"github.com/octofhir/fsh-lint/internal/semantic"
)

func fixCommand() *cli.Command {
	return &cli.Command{
		Name:      "fix",
		Usage:     "Apply automatic fixes to FSH file(s)",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.BoolFlag{
				Name:    "unsafe",
				Usage:   "Also apply unsafe fixes",
				Sources: cli.EnvVars("FSHLINT_FIX_APPLY_UNSAFE"),
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "Compute fixes and print a diff without writing files",
				Sources: cli.EnvVars("FSHLINT_FIX_DRY_RUN"),
			},
			&cli.StringSliceFlag{
				Name:  "rule",
				Usage: "Only fix specific rules (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Glob pattern to exclude files (can be repeated)",
			},
			rulesDirFlag(),
		},
		Action: runFix,
	}
}

func runFix(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		Patterns:        discovery.DefaultPatterns(),
		ExcludePatterns: cmd.StringSlice("exclude"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(discovered) == 0 {
		reportNoFilesFound(inputs)
		return cli.Exit("", ExitNoFiles)
	}

	cfg, err := loadConfig(cmd, discovered[0].Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	if err := loadCustomRules(cmd, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load custom rules: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	exec := &executor.Executor{
		Config:     cfg,
		AliasTable: semantic.NewAliasTable(),
	}
	results, err := exec.Run(ctx, discovered)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	diagnostics := executor.AllDiagnostics(results)
	sources := make(map[string][]byte, len(results))
	for _, r := range results {
		if r.Result != nil {
			sources[r.File] = r.Result.ParseResult.Source
		}
	}

	fixCfg := fix.Config{
		ApplyUnsafe:            cmd.Bool("unsafe") || cfg.Fix.ApplyUnsafe,
		DryRun:                 cmd.Bool("dry-run") || cfg.Fix.DryRun,
		MaxFixesPerFile:        cfg.Fix.MaxFixesPerFile,
		ValidateSyntax:         cfg.Fix.ValidateSyntax,
		RuleFilter:             cmd.StringSlice("rule"),
		SemanticConflictWindow: cfg.Fix.SemanticConflictWindow,
	}
	fixer := &fix.Fixer{Config: fixCfg, RuleCfg: cfg}

	result, rollback, err := fixer.Apply(diagnostics, sources)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to apply fixes: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	_ = rollback // available for callers that want to undo a run; unused here

	if fixCfg.DryRun {
		for path, fc := range result.Changes {
			if !fc.HasChanges() {
				continue
			}
			fmt.Print(fix.UnifiedDiff(path, sources[path], fc.ModifiedContent))
		}
		return nil
	}

	for path, fc := range result.Changes {
		if !fc.HasChanges() {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(path, fc.ModifiedContent, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write %s: %v\n", path, err)
			return cli.Exit("", ExitConfigError)
		}
	}

	if result.TotalApplied() > 0 {
		fmt.Fprintf(os.Stderr, "Fixed %d issue(s) in %d file(s)\n", result.TotalApplied(), result.FilesModified())
	}
	if result.TotalSkipped() > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d fix(es)\n", result.TotalSkipped())
	}

	return nil
}
