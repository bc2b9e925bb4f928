package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

// TextOptions configures the human-readable text reporter.
type TextOptions struct {
	// Color enables/disables ANSI styling. nil means auto-detect: on when
	// Writer is a terminal, NO_COLOR is unset, and termenv's detected color
	// profile isn't termenv.Ascii.
	Color *bool

	// ShowSource shows a source snippet with a caret under the offending span.
	ShowSource bool
}

// TextReporter formats diagnostics as colored, human-readable text with a
// summary table and final count line.
type TextReporter struct {
	w    io.Writer
	opts TextOptions
}

// NewTextReporter creates a text reporter writing to w.
func NewTextReporter(w io.Writer, opts TextOptions) *TextReporter {
	return &TextReporter{w: w, opts: opts}
}

func (r *TextReporter) colorEnabled() bool {
	if r.opts.Color != nil {
		return *r.opts.Color
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if termenv.EnvColorProfile() == termenv.Ascii {
		return false
	}
	if f, ok := r.w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// Report implements Reporter.
func (r *TextReporter) Report(ds []diagnostic.Diagnostic, sources map[string][]byte, metadata Metadata) error {
	sorted := SortDiagnostics(ds)
	color := r.colorEnabled()

	for _, d := range sorted {
		if err := r.printOne(d, sources[d.Location.File], color); err != nil {
			return err
		}
	}

	r.printSummary(sorted, metadata, color)
	return nil
}

func (r *TextReporter) printOne(d diagnostic.Diagnostic, source []byte, color bool) error {
	sevLabel := strings.ToUpper(d.Severity.String())
	header := fmt.Sprintf("%s:%d:%d: %s: %s", d.Location.File, d.Location.Line+1, d.Location.Column+1, sevLabel, d.RuleID)
	if color {
		header = styleFor(d.Severity).Styled(header)
	}
	if _, err := fmt.Fprintln(r.w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "  %s\n", d.Message); err != nil {
		return err
	}

	if r.opts.ShowSource && len(source) > 0 {
		r.printSnippet(d, source, color)
	}

	for _, s := range d.Suggestions {
		line := fmt.Sprintf("  suggestion: %s", s.Description)
		if color {
			line = termenv.String(line).Faint().String()
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextReporter) printSnippet(d diagnostic.Diagnostic, source []byte, color bool) {
	lines := strings.Split(string(source), "\n")
	lineIdx := d.Location.Line
	if lineIdx < 0 || lineIdx >= len(lines) {
		return
	}
	text := strings.TrimSuffix(lines[lineIdx], "\r")

	fmt.Fprintf(r.w, "    %4d | %s\n", lineIdx+1, text)

	caretLine := fmt.Sprintf("         %s%s", strings.Repeat(" ", d.Location.Column), caretSpan(d.Location.Column, d.Location.EndColumn, lineIdx, d.Location.EndLine))
	if color {
		caretLine = termenv.String(caretLine).Foreground(termenv.ANSIRed).String()
	}
	fmt.Fprintln(r.w, caretLine)
}

func caretSpan(startCol, endCol, startLine, endLine int) string {
	width := 1
	if endLine == startLine && endCol > startCol {
		width = endCol - startCol
	}
	return strings.Repeat("^", width)
}

func styleFor(s diagnostic.Severity) termenv.Style {
	switch s {
	case diagnostic.Error:
		return termenv.String("").Foreground(termenv.ANSIRed).Bold()
	case diagnostic.Warning:
		return termenv.String("").Foreground(termenv.ANSIYellow).Bold()
	case diagnostic.Info:
		return termenv.String("").Foreground(termenv.ANSIBlue)
	default:
		return termenv.String("").Foreground(termenv.ANSIBrightBlack)
	}
}

func (r *TextReporter) printSummary(ds []diagnostic.Diagnostic, metadata Metadata, color bool) {
	counts := diagnostic.CountBySeverity(ds)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Summary:")
	fmt.Fprintf(r.w, "  files checked:  %d\n", metadata.FilesChecked)
	fmt.Fprintf(r.w, "  rules enabled:  %d\n", metadata.RulesEnabled)
	fmt.Fprintf(r.w, "  errors:         %d\n", counts[diagnostic.Error])
	fmt.Fprintf(r.w, "  warnings:       %d\n", counts[diagnostic.Warning])
	fmt.Fprintf(r.w, "  info:           %d\n", counts[diagnostic.Info])
	fmt.Fprintf(r.w, "  hints:          %d\n", counts[diagnostic.Hint])
	if metadata.FixesApplied > 0 {
		fmt.Fprintf(r.w, "  fixes applied:  %d\n", metadata.FixesApplied)
	}

	line := fmt.Sprintf("%d problem(s) (%d error(s), %d warning(s))", len(ds), counts[diagnostic.Error], counts[diagnostic.Warning])
	if color && counts[diagnostic.Error] > 0 {
		line = termenv.String(line).Foreground(termenv.ANSIRed).Bold().String()
	}
	fmt.Fprintln(r.w, line)
}
