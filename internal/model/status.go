package model

import (
	"path"
	"time"

	"github.com/keshon/fvc/internal/fileprobe"
)

// ChangeType classifies a file relative to its recorded baseline.
type ChangeType string

const (
	Unchanged ChangeType = "unchanged"
	Modified  ChangeType = "modified"
	Added     ChangeType = "added"
	Deleted   ChangeType = "deleted"
)

// FileStatus describes the live state of one file relative to the last
// recorded baseline hash. Derived on demand, never persisted.
type FileStatus struct {
	Path         string
	Name         string
	Change       ChangeType
	CurrentHash  string
	BaselineHash string
	Size         int64
	IsText       bool
	ModTime      time.Time
}

// StatusFromFile probes absPath and classifies it against baselineHash.
// rel is the slash-separated path relative to the snapshot directory.
// A missing file carries probe sentinels (empty hash, zero size, zero
// time) and classifies as Deleted.
func StatusFromFile(absPath, rel, baselineHash string) FileStatus {
	st := FileStatus{
		Path:         rel,
		Name:         path.Base(rel),
		BaselineHash: baselineHash,
		IsText:       true,
	}

	st.CurrentHash = fileprobe.Hash(absPath)
	if st.CurrentHash == "" {
		st.Change = Deleted
		return st
	}

	st.Size = fileprobe.Size(absPath)
	st.ModTime = fileprobe.ModTime(absPath)
	st.IsText = fileprobe.IsText(absPath)

	switch {
	case baselineHash == "":
		st.Change = Added
	case st.CurrentHash != baselineHash:
		st.Change = Modified
	default:
		st.Change = Unchanged
	}
	return st
}
