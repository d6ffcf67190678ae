package model

import "fmt"

// Version sentinels used in FileDiff.
const (
	// VersionWorking marks the live working copy side of a diff.
	VersionWorking = -1
	// VersionNone marks the "no prior version" side of a diff.
	VersionNone = 0
)

// DiffLineKind tags one output line of a computed diff.
type DiffLineKind string

const (
	DiffContext   DiffLineKind = "context" // hunk header
	DiffAdded     DiffLineKind = "added"
	DiffRemoved   DiffLineKind = "removed"
	DiffUnchanged DiffLineKind = "unchanged"
)

// DiffLine is one tagged line of a computed diff.
type DiffLine struct {
	Kind DiffLineKind
	Text string
}

// FileDiff is the comparison of one file between two snapshots, or
// between a snapshot and the working copy. Binary files keep Lines
// empty regardless of byte differences.
type FileDiff struct {
	Path       string
	OldVersion int
	NewVersion int
	OldContent string
	NewContent string
	IsText     bool
	Lines      []DiffLine
}

// HasChanges reports byte-wise content inequality. It is defined
// independently of Lines so binary files still report changes.
func (d FileDiff) HasChanges() bool {
	return d.OldContent != d.NewContent
}

// Summary describes the change in one word group.
func (d FileDiff) Summary() string {
	switch {
	case !d.HasChanges():
		return "no changes"
	case d.OldContent == "":
		return "new file"
	case d.NewContent == "":
		return "file deleted"
	default:
		return "file modified"
	}
}

// Stats returns the number of added and removed lines.
func (d FileDiff) Stats() (added, removed int) {
	for _, l := range d.Lines {
		switch l.Kind {
		case DiffAdded:
			added++
		case DiffRemoved:
			removed++
		}
	}
	return added, removed
}

// StatLine renders Stats as "+N -M", or "" when nothing changed.
func (d FileDiff) StatLine() string {
	added, removed := d.Stats()
	switch {
	case added > 0 && removed > 0:
		return fmt.Sprintf("+%d -%d", added, removed)
	case added > 0:
		return fmt.Sprintf("+%d", added)
	case removed > 0:
		return fmt.Sprintf("-%d", removed)
	}
	return ""
}

// SearchResult is one matched line in a stored snapshot.
type SearchResult struct {
	Version    Version
	FilePath   string
	LineNumber int
	LineText   string
	Match      string
}

// ChangeSet is the result of reconciling the declared file set against
// the current snapshot directory. All slices are sorted.
type ChangeSet struct {
	Added    []string
	Removed  []string
	Modified []string
}

// Empty reports whether the reconciliation found nothing to do.
func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0
}
