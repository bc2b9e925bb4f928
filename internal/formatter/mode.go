package formatter

import (
	"github.com/octofhir/fsh-lint/internal/fix"
)

// Mode selects how Run reports a formatting result. Styled on internal/fix's
// Config.DryRun split, generalized to formatting's third "diff" mode.
type Mode int

const (
	// ModeWrite reports the new content for the caller to write to disk.
	ModeWrite Mode = iota
	// ModeCheck reports only whether the file would change.
	ModeCheck
	// ModeDiff reports a unified diff of the would-be change, without
	// requesting a write.
	ModeDiff
)

// RunResult is one file's formatting outcome under a given Mode. The
// formatter package never touches disk itself — ModeWrite's Output is
// handed back to the caller (the cmd layer) to persist, matching
// internal/fix's own file-handling boundary.
type RunResult struct {
	Path    string
	Changed bool
	Output  string
	Diff    string
}

// Run formats src under mode and opts.
func Run(path string, src []byte, mode Mode, opts Options) (*RunResult, error) {
	res, err := Format(string(src), opts)
	if err != nil {
		return nil, err
	}

	rr := &RunResult{Path: path, Changed: res.Changed}

	switch mode {
	case ModeCheck:
		// Nothing further to compute: Changed alone answers the question.
	case ModeDiff:
		if res.Changed {
			rr.Diff = fix.UnifiedDiff(path, src, []byte(res.Output))
		}
	case ModeWrite:
		fallthrough
	default:
		rr.Output = res.Output
	}

	return rr, nil
}
