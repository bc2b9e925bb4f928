// Package reporter provides output formatters for lint diagnostics: a
// human-readable colored form, a compact one-line form, JSON, SARIF 2.1.0,
// and GitHub Actions workflow commands.
package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

// Metadata carries run-level context a reporter needs beyond the
// diagnostics themselves.
type Metadata struct {
	// FilesChecked is the total number of files scanned.
	FilesChecked int

	// RulesEnabled is the number of rules that were active (not "off").
	RulesEnabled int

	// FixesApplied is how many autofixes were applied this run, if any.
	FixesApplied int
}

// Reporter formats and writes diagnostics to its configured output.
type Reporter interface {
	// Report writes diagnostics. sources maps file path to that file's raw
	// content, used by formatters that render source snippets.
	Report(diagnostics []diagnostic.Diagnostic, sources map[string][]byte, metadata Metadata) error
}

// Format identifies an output format.
type Format string

const (
	FormatText          Format = "text"
	FormatCompact       Format = "compact"
	FormatJSON          Format = "json"
	FormatSARIF         Format = "sarif"
	FormatGitHubActions Format = "github-actions"
)

// ParseFormat parses a format string, defaulting "" to FormatText.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "compact":
		return FormatCompact, nil
	case "json":
		return FormatJSON, nil
	case "sarif":
		return FormatSARIF, nil
	case "github-actions", "github":
		return FormatGitHubActions, nil
	default:
		return "", fmt.Errorf("reporter: unknown format %q (valid: text, compact, json, sarif, github-actions)", s)
	}
}

// Options configures reporter creation.
type Options struct {
	Format Format
	Writer io.Writer

	// Color enables/disables ANSI styling for the text format. nil means
	// auto-detect (respects NO_COLOR and whether Writer is a terminal).
	Color *bool

	// ShowSource shows source snippets in the text format.
	ShowSource bool

	// ToolName, ToolVersion, ToolURI populate SARIF's tool.driver block.
	ToolName    string
	ToolVersion string
	ToolURI     string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		Writer:      os.Stdout,
		ShowSource:  true,
		ToolName:    "fshlint",
		ToolURI:     "https://github.com/octofhir/fsh-lint",
		ToolVersion: "dev",
	}
}

// New creates a Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch opts.Format {
	case FormatText, "":
		return NewTextReporter(opts.Writer, TextOptions{Color: opts.Color, ShowSource: opts.ShowSource}), nil
	case FormatCompact:
		return NewCompactReporter(opts.Writer), nil
	case FormatJSON:
		return NewJSONReporter(opts.Writer), nil
	case FormatSARIF:
		return NewSARIFReporter(opts.Writer, opts.ToolName, opts.ToolVersion, opts.ToolURI), nil
	case FormatGitHubActions:
		return NewGitHubActionsReporter(opts.Writer), nil
	default:
		return nil, fmt.Errorf("reporter: unknown format %q", opts.Format)
	}
}

// SortDiagnostics returns a stably sorted copy of ds, ordered by
// (file, line, column, rule_id) per spec's ordering guarantee.
func SortDiagnostics(ds []diagnostic.Diagnostic) []diagnostic.Diagnostic {
	sorted := make([]diagnostic.Diagnostic, len(ds))
	copy(sorted, ds)
	diagnostic.SortByLocation(sorted)
	return sorted
}
