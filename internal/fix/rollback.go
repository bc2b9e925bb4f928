package fix

import (
	"fmt"
	"time"
)

// RollbackPlan captures each fixed file's pre-application content so a
// write-mode Apply can be undone. No direct teacher analog (the teacher's
// fixer has no rollback concept); new domain logic per spec's step 7,
// styled on FileChange's "capture original + modified content per file"
// shape.
type RollbackPlan struct {
	Files     map[string][]byte
	CreatedAt time.Time
}

// Age reports how long ago the plan was created.
func (p *RollbackPlan) Age() time.Duration {
	return time.Since(p.CreatedAt)
}

// Restore returns the pre-application content a caller should write back
// for path, or an error if path isn't covered by this plan.
func (p *RollbackPlan) Restore(path string) ([]byte, error) {
	content, ok := p.Files[normalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("fix: no rollback entry for %q", path)
	}
	return content, nil
}

// Paths returns the files this plan can restore.
func (p *RollbackPlan) Paths() []string {
	out := make([]string, 0, len(p.Files))
	for path := range p.Files {
		out = append(out, path)
	}
	return out
}
