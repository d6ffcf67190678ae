// Package diffengine computes line-level diffs between stored
// snapshots or between a snapshot and the live working copy, and
// searches stored snapshot content.
package diffengine

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/keshon/fvc/internal/fileprobe"
	"github.com/keshon/fvc/internal/model"
)

// contextLines is the number of unchanged lines kept around each hunk.
const contextLines = 3

// DiffEngine compares files across the snapshot directories of one
// project.
type DiffEngine struct {
	versionsDir string
}

// NewDiffEngine returns an engine over a project's versions directory.
func NewDiffEngine(versionsDir string) *DiffEngine {
	return &DiffEngine{versionsDir: versionsDir}
}

// ComparePaths diffs two absolute paths. A missing file reads as empty
// content. Text classification comes from displayPath's extension;
// binary files keep Lines empty regardless of byte differences.
func (e *DiffEngine) ComparePaths(oldPath, newPath string, oldVersion, newVersion int, displayPath string) model.FileDiff {
	oldContent := fileprobe.ReadText(oldPath)
	newContent := fileprobe.ReadText(newPath)

	isText := fileprobe.IsText(displayPath)
	var lines []model.DiffLine
	if isText {
		lines = diffLines(oldContent, newContent, versionLabel(oldVersion), versionLabel(newVersion))
	}

	return model.FileDiff{
		Path:       displayPath,
		OldVersion: oldVersion,
		NewVersion: newVersion,
		OldContent: oldContent,
		NewContent: newContent,
		IsText:     isText,
		Lines:      lines,
	}
}

// CompareVersions diffs one file between two stored snapshots.
func (e *DiffEngine) CompareVersions(oldN, newN int, rel string) model.FileDiff {
	return e.ComparePaths(e.versionPath(oldN, rel), e.versionPath(newN, rel), oldN, newN, rel)
}

// CompareWithWorking diffs version n's stored copy of rel against the
// live file at workingPath.
func (e *DiffEngine) CompareWithWorking(n int, rel, workingPath string) model.FileDiff {
	return e.ComparePaths(e.versionPath(n, rel), workingPath, n, model.VersionWorking, rel)
}

// VersionChanges diffs every candidate path between two versions and
// returns only the ones with changes, keyed by path.
func (e *DiffEngine) VersionChanges(oldN, newN int, candidates []string) map[string]model.FileDiff {
	changes := make(map[string]model.FileDiff)
	for _, rel := range candidates {
		d := e.CompareVersions(oldN, newN, rel)
		if d.HasChanges() {
			changes[rel] = d
		}
	}
	return changes
}

func (e *DiffEngine) versionPath(n int, rel string) string {
	return filepath.Join(e.versionsDir, fmt.Sprintf("v%d", n), filepath.FromSlash(rel))
}

func versionLabel(n int) string {
	switch n {
	case model.VersionWorking:
		return "current"
	case model.VersionNone:
		return "(none)"
	default:
		return fmt.Sprintf("v%d", n)
	}
}

// diffLines computes tagged unified-diff lines with 3 lines of context
// per hunk. Identical content yields no lines. The two file header
// lines are dropped; hunk headers are tagged as context.
func diffLines(oldContent, newContent, oldLabel, newLabel string) []model.DiffLine {
	if oldContent == newContent {
		return nil
	}

	ud := difflib.UnifiedDiff{
		A:        splitLines(normalizeEOL(oldContent)),
		B:        splitLines(normalizeEOL(newContent)),
		FromFile: oldLabel,
		ToFile:   newLabel,
		Context:  contextLines,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil
	}

	var lines []model.DiffLine
	for i, raw := range strings.Split(text, "\n") {
		if i < 2 || raw == "" {
			continue // file headers and trailing empty split
		}
		switch {
		case strings.HasPrefix(raw, "@@"):
			lines = append(lines, model.DiffLine{Kind: model.DiffContext, Text: raw})
		case strings.HasPrefix(raw, "-"):
			lines = append(lines, model.DiffLine{Kind: model.DiffRemoved, Text: raw[1:]})
		case strings.HasPrefix(raw, "+"):
			lines = append(lines, model.DiffLine{Kind: model.DiffAdded, Text: raw[1:]})
		case strings.HasPrefix(raw, " "):
			lines = append(lines, model.DiffLine{Kind: model.DiffUnchanged, Text: raw[1:]})
		default:
			lines = append(lines, model.DiffLine{Kind: model.DiffUnchanged, Text: raw})
		}
	}
	return lines
}

// normalizeEOL unifies CRLF and lone CR line endings to LF.
func normalizeEOL(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// splitLines splits content into newline-terminated lines. Empty
// content has zero lines; a trailing newline does not produce a
// phantom empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] += "\n"
	}
	return lines
}
