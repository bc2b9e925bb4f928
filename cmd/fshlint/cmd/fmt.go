package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/octofhir/fsh-lint/internal/discovery"
	"github.com/octofhir/fsh-lint/internal/formatter"
)

func fmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format FSH file(s) to canonical style",
		ArgsUsage: "[FILE...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Exit non-zero if any file would change, without writing",
			},
			&cli.BoolFlag{
				Name:  "diff",
				Usage: "Print a unified diff of the would-be changes",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Glob pattern to exclude files (can be repeated)",
			},
		},
		Action: runFmt,
	}
}

func runFmt(_ context.Context, cmd *cli.Command) error {
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

	mode := formatter.ModeWrite
	switch {
	case cmd.Bool("check"):
		mode = formatter.ModeCheck
	case cmd.Bool("diff"):
		mode = formatter.ModeDiff
	}

	opts := formatter.DefaultOptions()
	anyChanged := false

	for _, df := range discovered {
		src, err := os.ReadFile(df.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", df.Path, err)
			return cli.Exit("", ExitConfigError)
		}

		rr, err := formatter.Run(df.Path, src, mode, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to format %s: %v\n", df.Path, err)
			return cli.Exit("", ExitConfigError)
		}

		if !rr.Changed {
			continue
		}
		anyChanged = true

		switch mode {
		case formatter.ModeCheck:
			fmt.Fprintf(os.Stderr, "would reformat %s\n", df.Path)
		case formatter.ModeDiff:
			fmt.Print(rr.Diff)
		case formatter.ModeWrite:
			info, statErr := os.Stat(df.Path)
			fileMode := os.FileMode(0o644)
			if statErr == nil {
				fileMode = info.Mode().Perm()
			}
			if err := os.WriteFile(df.Path, []byte(rr.Output), fileMode); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to write %s: %v\n", df.Path, err)
				return cli.Exit("", ExitConfigError)
			}
			fmt.Fprintf(os.Stderr, "reformatted %s\n", df.Path)
		}
	}

	if mode == formatter.ModeCheck && anyChanged {
		return cli.Exit("", ExitViolations)
	}
	return nil
}
