package fix

import (
	"bytes"
	"path/filepath"
	"sort"
	"time"

	"github.com/octofhir/fsh-lint/internal/config"
	"github.com/octofhir/fsh-lint/internal/diagnostic"
)

func normalizePath(path string) string {
	return filepath.Clean(path)
}

// Config controls which fixes Fixer.Apply is willing to apply. Grounded on
// spec's FixConfig surface (apply_unsafe/dry_run/max_fixes_per_file/validate_syntax).
type Config struct {
	ApplyUnsafe     bool
	DryRun          bool
	MaxFixesPerFile int
	ValidateSyntax  bool
	RuleFilter      []string

	// SemanticConflictWindow is N in the spec's secondary conflict check:
	// two fixes from the same rule in the same file within this many lines
	// of each other are a soft conflict even without byte-footprint
	// overlap. <= 0 disables the check.
	SemanticConflictWindow int
}

// Fixer applies diagnostic suggestions to source files.
type Fixer struct {
	Config  Config
	RuleCfg *config.Config
}

// Result is the outcome of one Apply call.
type Result struct {
	Changes map[string]*FileChange
}

func (r *Result) TotalApplied() int {
	n := 0
	for _, fc := range r.Changes {
		n += len(fc.FixesApplied)
	}
	return n
}

func (r *Result) TotalSkipped() int {
	n := 0
	for _, fc := range r.Changes {
		n += len(fc.FixesSkipped)
	}
	return n
}

func (r *Result) FilesModified() int {
	n := 0
	for _, fc := range r.Changes {
		if fc.HasChanges() {
			n++
		}
	}
	return n
}

// fixCandidate is one suggestion attached to a diagnostic, annotated with
// the data the reservation loop needs.
type fixCandidate struct {
	ruleID     string
	location   diagnostic.Location
	suggestion diagnostic.Suggestion
	safe       bool
	priority   int
	generation int
}

// Apply runs the seven-step autofix algorithm: generation, safety
// reclassification, conflict detection, resolution, validation,
// application, rollback (the plan is returned alongside Result so the
// caller decides whether to keep it). Grounded on the teacher's
// Fixer.Apply two-phase structure, collapsed to one phase since this
// project has no async/NeedsResolve fix category — every suggestion here
// already carries its final replacement text.
func (f *Fixer) Apply(diagnostics []diagnostic.Diagnostic, sources map[string][]byte) (*Result, *RollbackPlan, error) {
	result := &Result{Changes: make(map[string]*FileChange)}
	plan := &RollbackPlan{Files: make(map[string][]byte), CreatedAt: time.Now()}

	for path, content := range sources {
		norm := normalizePath(path)
		result.Changes[norm] = &FileChange{
			Path:            path,
			OriginalContent: content,
			ModifiedContent: bytes.Clone(content),
		}
		plan.Files[norm] = bytes.Clone(content)
	}

	candidates := f.generate(diagnostics, result.Changes)
	reclassify(candidates)

	byFile := make(map[string][]*fixCandidate)
	for _, c := range candidates {
		byFile[normalizePath(c.location.File)] = append(byFile[normalizePath(c.location.File)], c)
	}

	for file, fileCandidates := range byFile {
		fc := result.Changes[file]
		if fc == nil {
			continue
		}
		f.applyToFile(fc, fileCandidates)
	}

	return result, plan, nil
}

// generate builds one fixCandidate per usable suggestion, filtering by
// rule filter and fix mode (step 1), recording skips for anything dropped
// at this stage so the caller sees why a diagnostic produced no fix.
func (f *Fixer) generate(diagnostics []diagnostic.Diagnostic, changes map[string]*FileChange) []*fixCandidate {
	var out []*fixCandidate
	gen := 0
	for _, d := range diagnostics {
		for _, s := range d.Suggestions {
			gen++
			loc := s.Location
			if loc.File == "" {
				loc.File = d.Location.File
			}

			if s.NewText == "" && loc.Length == 0 {
				recordSkipped(changes, loc, d.RuleID, SkipNoEdit)
				continue
			}
			if len(f.Config.RuleFilter) > 0 && !ruleAllowed(f.Config.RuleFilter, d.RuleID) {
				recordSkipped(changes, loc, d.RuleID, SkipRuleFilter)
				continue
			}
			safe := s.Safety == diagnostic.Safe
			if !safe && !f.Config.ApplyUnsafe {
				recordSkipped(changes, loc, d.RuleID, SkipSafety)
				continue
			}
			if !fixModeAllowed(f.RuleCfg, d.RuleID, safe, f.Config.RuleFilter) {
				recordSkipped(changes, loc, d.RuleID, SkipFixMode)
				continue
			}

			out = append(out, &fixCandidate{
				ruleID:     d.RuleID,
				location:   loc,
				suggestion: s,
				safe:       safe,
				priority:   s.Priority,
				generation: gen,
			})
		}
	}
	return out
}

func ruleAllowed(filter []string, ruleID string) bool {
	for _, r := range filter {
		if r == ruleID {
			return true
		}
	}
	return false
}

func recordSkipped(changes map[string]*FileChange, loc diagnostic.Location, ruleID string, reason SkipReason) {
	fc := changes[normalizePath(loc.File)]
	if fc == nil {
		return
	}
	fc.FixesSkipped = append(fc.FixesSkipped, SkippedFix{RuleID: ruleID, Reason: reason, Location: loc})
}

// applyToFile runs steps 3-5 for one file: detect conflicts, resolve via
// sortCandidates, assemble the modified content in descending-offset
// order (step 5), then validate bracket balance. A failed validation
// rejects every candidate fix for this file, restoring the original
// content — the teacher has no equivalent since Dockerfiles have no
// bracket-balance invariant to protect.
func (f *Fixer) applyToFile(fc *FileChange, candidates []*fixCandidate) {
	sortCandidates(candidates)

	var accepted []*fixCandidate

	maxFixes := f.Config.MaxFixesPerFile
	window := f.Config.SemanticConflictWindow

	for _, c := range candidates {
		if maxFixes > 0 && len(accepted) >= maxFixes {
			fc.FixesSkipped = append(fc.FixesSkipped, SkippedFix{RuleID: c.ruleID, Reason: SkipMaxFixes, Location: c.location})
			continue
		}

		conflict := false
		for _, r := range accepted {
			if conflicts(c.ruleID, c.location, r.ruleID, r.location, window) {
				conflict = true
				break
			}
		}
		if conflict {
			fc.FixesSkipped = append(fc.FixesSkipped, SkippedFix{RuleID: c.ruleID, Reason: SkipConflict, Location: c.location})
			continue
		}

		accepted = append(accepted, c)
	}

	// Step 5: assemble by descending start offset so earlier offsets stay valid.
	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].location.Offset > accepted[j].location.Offset
	})

	content := bytes.Clone(fc.OriginalContent)
	for _, c := range accepted {
		content = applyEdit(content, c.location, c.suggestion.NewText)
	}

	if f.Config.ValidateSyntax && !balanced(content) {
		for _, c := range accepted {
			fc.FixesSkipped = append(fc.FixesSkipped, SkippedFix{RuleID: c.ruleID, Reason: SkipValidation, Location: c.location})
		}
		fc.ModifiedContent = bytes.Clone(fc.OriginalContent)
		return
	}

	fc.ModifiedContent = content
	for _, c := range accepted {
		fc.FixesApplied = append(fc.FixesApplied, AppliedFix{
			RuleID:      c.ruleID,
			Description: c.suggestion.Description,
			Location:    c.location,
			Suggestion:  c.suggestion,
		})
	}
}

// applyEdit replaces content[loc.Offset : loc.Offset+loc.Length) with
// newText. Grounded on the teacher's applyEdit, simplified from
// line-split reconstruction to a direct byte splice since this project's
// Location already carries byte offsets (no line/column conversion needed).
func applyEdit(content []byte, loc diagnostic.Location, newText string) []byte {
	start, end := loc.Offset, loc.Offset+loc.Length
	if start < 0 || start > len(content) || end < start || end > len(content) {
		return content
	}

	out := make([]byte, 0, len(content)-loc.Length+len(newText))
	out = append(out, content[:start]...)
	out = append(out, newText...)
	out = append(out, content[end:]...)
	return out
}
