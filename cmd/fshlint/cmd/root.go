package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/octofhir/fsh-lint/internal/version"
)

// Exit codes mirror the severity/config/no-files split a CI pipeline expects.
const (
	ExitSuccess     = 0 // No diagnostics (or below the fail-level threshold)
	ExitViolations  = 1 // Diagnostics found at or above fail-level
	ExitConfigError = 2 // Parse or config error
	ExitNoFiles     = 3 // No FSH files found (missing file, empty glob, empty directory)
)

// NewApp creates the CLI application.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "fshlint",
		Usage:   "A linter, formatter, and decompiler for FHIR Shorthand (FSH)",
		Version: version.Version(),
		Description: `fshlint parses FHIR Shorthand source into a lossless syntax tree, runs a
configurable set of diagnostic rules against it, and can apply autofixes or
reformat sources in place.`,
		Commands: []*cli.Command{
			lintCommand(),
			fixCommand(),
			fmtCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application.
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
