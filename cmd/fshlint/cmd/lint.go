package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/octofhir/fsh-lint/internal/cache"
	"github.com/octofhir/fsh-lint/internal/config"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
	"github.com/octofhir/fsh-lint/internal/discovery"
	"github.com/octofhir/fsh-lint/internal/executor"
	"github.com/octofhir/fsh-lint/internal/reporter"
	"github.com/octofhir/fsh-lint/internal/semantic"
	"github.com/octofhir/fsh-lint/internal/version"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Usage:     "Lint FSH file(s) for issues",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, compact, json, sarif, github-actions",
				Sources: cli.EnvVars("FSHLINT_OUTPUT_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path: stdout, stderr, or file path",
				Sources: cli.EnvVars("FSHLINT_OUTPUT_PATH"),
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Usage:   "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
			&cli.BoolFlag{
				Name:  "hide-source",
				Usage: "Hide source code snippets",
			},
			&cli.StringFlag{
				Name:    "fail-level",
				Usage:   "Minimum severity to cause non-zero exit: error, warning, info, hint, none",
				Sources: cli.EnvVars("FSHLINT_OUTPUT_FAIL_LEVEL"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob pattern to exclude files (can be repeated)",
				Sources: cli.EnvVars("FSHLINT_EXCLUDE"),
			},
			&cli.StringSliceFlag{
				Name:    "select",
				Usage:   "Enable specific rules (pattern: rule-code, namespace/*, *)",
				Sources: cli.EnvVars("FSHLINT_RULES_SELECT"),
			},
			&cli.StringSliceFlag{
				Name:    "ignore",
				Usage:   "Disable specific rules (pattern: rule-code, namespace/*, *)",
				Sources: cli.EnvVars("FSHLINT_RULES_IGNORE"),
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Worker pool size (0 = GOMAXPROCS)",
			},
			rulesDirFlag(),
		},
		Action: runLint,
	}
}

// runLint discovers files, runs the pipeline, and reports results.
func runLint(ctx context.Context, cmd *cli.Command) error {
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
	applyRuleSelectionOverrides(cmd, cfg)
	if err := loadCustomRules(cmd, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load custom rules: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	exec := &executor.Executor{
		Concurrency: int(cmd.Int("concurrency")),
		Config:      cfg,
		ParseCache:  newParseCache(cfg),
		AliasTable:  semantic.NewAliasTable(),
	}

	results, err := exec.Run(ctx, discovered)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	sources := make(map[string][]byte, len(results))
	for _, r := range results {
		if r.Result != nil {
			sources[r.File] = r.Result.ParseResult.Source
		}
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to lint %s: %v\n", r.File, r.Err)
		}
	}

	diagnostics := executor.AllDiagnostics(results)
	return writeReport(cmd, cfg, diagnostics, sources, len(discovered))
}

// writeReport formats and writes the diagnostic report, then determines the
// process exit code from the configured fail-level.
func writeReport(cmd *cli.Command, cfg *config.Config, diagnostics []diagnostic.Diagnostic, sources map[string][]byte, filesScanned int) error {
	outCfg := getOutputConfig(cmd, cfg)

	formatType, err := reporter.ParseFormat(outCfg.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	writer, closeWriter, err := openOutput(outCfg.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	defer func() {
		if err := closeWriter(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output: %v\n", err)
		}
	}()

	opts := reporter.Options{
		Format:      formatType,
		Writer:      writer,
		ShowSource:  outCfg.showSource,
		ToolName:    "fshlint",
		ToolVersion: version.Version(),
		ToolURI:     "https://github.com/octofhir/fsh-lint",
	}
	if cmd.IsSet("no-color") && cmd.Bool("no-color") {
		noColor := false
		opts.Color = &noColor
	}

	rep, err := reporter.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create reporter: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	metadata := reporter.Metadata{
		FilesChecked: filesScanned,
	}

	if err := rep.Report(diagnostics, sources, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	exitCode := determineExitCode(diagnostics, outCfg.failLevel)
	if exitCode != ExitSuccess {
		return cli.Exit("", exitCode)
	}
	return nil
}

// outputConfig holds resolved output configuration values.
type outputConfig struct {
	format     string
	path       string
	showSource bool
	failLevel  string
}

func getOutputConfig(cmd *cli.Command, cfg *config.Config) outputConfig {
	oc := outputConfig{format: "text", path: "stdout", showSource: true, failLevel: "warning"}

	if cfg != nil {
		if cfg.Output.Format != "" {
			oc.format = cfg.Output.Format
		}
		if cfg.Output.Path != "" {
			oc.path = cfg.Output.Path
		}
		oc.showSource = cfg.Output.ShowSource
		if cfg.Output.FailLevel != "" {
			oc.failLevel = cfg.Output.FailLevel
		}
	}

	if cmd.IsSet("format") {
		oc.format = cmd.String("format")
	}
	if cmd.IsSet("output") {
		oc.path = cmd.String("output")
	}
	if cmd.IsSet("hide-source") && cmd.Bool("hide-source") {
		oc.showSource = false
	}
	if cmd.IsSet("fail-level") {
		oc.failLevel = cmd.String("fail-level")
	}
	return oc
}

// determineExitCode returns the exit code for diagnostics under failLevel.
func determineExitCode(diagnostics []diagnostic.Diagnostic, failLevel string) int {
	if failLevel == "none" {
		return ExitSuccess
	}

	threshold, err := parseFailLevel(failLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --fail-level %q\n", failLevel)
		return ExitConfigError
	}

	for _, d := range diagnostics {
		if !d.Severity.Less(threshold) {
			return ExitViolations
		}
	}
	return ExitSuccess
}

func parseFailLevel(level string) (diagnostic.Severity, error) {
	if level == "" {
		return diagnostic.Warning, nil
	}
	return diagnostic.ParseSeverity(level)
}

// loadConfig resolves configuration from --config or auto-discovery against
// the first discovered file, as a representative root for the run.
func loadConfig(cmd *cli.Command, representativePath string) (*config.Config, error) {
	if configPath := cmd.String("config"); configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load(representativePath)
}

func applyRuleSelectionOverrides(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("select") {
		cfg.Rules.Include = append(cfg.Rules.Include, cmd.StringSlice("select")...)
	}
	if cmd.IsSet("ignore") {
		cfg.Rules.Exclude = append(cfg.Rules.Exclude, cmd.StringSlice("ignore")...)
	}
}

func newParseCache(cfg *config.Config) *cache.ParseResultCache {
	if cfg == nil || !cfg.Cache.Enabled {
		return nil
	}
	if cfg.Cache.MaxEntries > 0 {
		return cache.NewParseResultCacheWithCapacity(cfg.Cache.MaxEntries)
	}
	return cache.NewParseResultCache()
}

// openOutput resolves an output path to a writer: "stdout"/"" -> os.Stdout,
// "stderr" -> os.Stderr, anything else -> a created file.
func openOutput(path string) (*os.File, func() error, error) {
	switch path {
	case "", "stdout":
		return os.Stdout, func() error { return nil }, nil
	case "stderr":
		return os.Stderr, func() error { return nil }, nil
	default:
		f, err := os.Create(filepath.Clean(path))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open output file %s: %w", path, err)
		}
		return f, f.Close, nil
	}
}

// reportNoFilesFound prints a context-aware message when no FSH files match.
func reportNoFilesFound(inputs []string) {
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			fmt.Fprintf(os.Stderr, "Error: no FSH files found in %s\n", abs)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "Error: no FSH files found\n")
}
