package model

import (
	"fmt"

	"github.com/keshon/fvc/internal/util"
)

// SchemaVersion is the current persisted document schema. Older
// documents (including ones written before the field existed) load
// with defaults; newer ones are rejected rather than guessed at.
const SchemaVersion = 1

// ProjectData is the aggregate root: the single persisted document
// describing one project. It is loaded and saved wholesale on every
// mutation.
type ProjectData struct {
	Schema         int               `json:"schema_version"`
	Settings       ProjectSettings   `json:"settings"`
	CurrentVersion int               `json:"current_version"`
	TrackedFiles   []string          `json:"tracked_files"`
	Versions       []Version         `json:"versions"`
	FileHashes     map[string]string `json:"file_hashes"`
}

// NewProjectData returns an empty document in the unversioned state.
func NewProjectData(settings ProjectSettings) *ProjectData {
	return &ProjectData{
		Schema:       SchemaVersion,
		Settings:     settings,
		TrackedFiles: []string{},
		Versions:     []Version{},
		FileHashes:   map[string]string{},
	}
}

// LoadProjectData reads and validates a persisted document. Missing
// optional fields default to empty.
func LoadProjectData(path string) (*ProjectData, error) {
	var d ProjectData
	if err := util.ReadJSON(path, &d); err != nil {
		return nil, fmt.Errorf("read project document %q: %w", path, err)
	}
	if d.Schema > SchemaVersion {
		return nil, fmt.Errorf("project document %q has schema version %d, newer than supported %d", path, d.Schema, SchemaVersion)
	}
	d.Schema = SchemaVersion
	if d.TrackedFiles == nil {
		d.TrackedFiles = []string{}
	}
	if d.Versions == nil {
		d.Versions = []Version{}
	}
	if d.FileHashes == nil {
		d.FileHashes = map[string]string{}
	}
	if d.Settings.Tags == nil {
		d.Settings.Tags = []string{}
	}
	return &d, nil
}

// Save persists the document atomically.
func (d *ProjectData) Save(path string) error {
	if err := util.WriteJSON(path, d); err != nil {
		return fmt.Errorf("write project document %q: %w", path, err)
	}
	return nil
}

// VersionByNumber returns the version with the given number, or nil.
func (d *ProjectData) VersionByNumber(n int) *Version {
	for i := range d.Versions {
		if d.Versions[i].Number == n {
			return &d.Versions[i]
		}
	}
	return nil
}

// LatestVersion returns the highest-numbered version, or nil when no
// version has been cut yet.
func (d *ProjectData) LatestVersion() *Version {
	var latest *Version
	for i := range d.Versions {
		if latest == nil || d.Versions[i].Number > latest.Number {
			latest = &d.Versions[i]
		}
	}
	return latest
}

// AddVersion appends a version and makes it current.
func (d *ProjectData) AddVersion(v Version) {
	d.Versions = append(d.Versions, v)
	d.CurrentVersion = v.Number
}

// SetFileHash records the hash for a relative path.
func (d *ProjectData) SetFileHash(rel, hash string) {
	d.FileHashes[rel] = hash
}

// FileHash returns the recorded hash for a relative path, or "".
func (d *ProjectData) FileHash(rel string) string {
	return d.FileHashes[rel]
}

// RemoveFileHash drops the recorded hash for a relative path.
func (d *ProjectData) RemoveFileHash(rel string) {
	delete(d.FileHashes, rel)
}
