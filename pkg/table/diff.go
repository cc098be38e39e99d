package table

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff from before to after, or "" when they are
// equal. Both are treated as rendered crontab text.
func Diff(before, after, fromName, toName string) string {
	if before == after {
		return ""
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fromName,
		ToFile:   toName,
		Context:  2,
	})
	if err != nil {
		// only a failing writer can error; the target is a strings.Builder
		return ""
	}
	return out
}

// Changes returns a unified diff from the text at the last Load or
// Checkpoint to the current render. In-place edits to jobs are included.
func (t *Table) Changes() string {
	return Diff(t.backup.text, t.Render(), "loaded", "current")
}

// Changed reports whether the render differs from the last Load or Checkpoint.
func (t *Table) Changed() bool {
	return t.backup.text != t.Render()
}
