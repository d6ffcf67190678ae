package config

import (
	"fmt"
	"path/filepath"
)

const (
	// MetadataFile is the persisted project document, one per root.
	MetadataFile = "project.json"
	// VersionsDir holds one snapshot directory per version.
	VersionsDir = "versions"
	// BaselineDir mirrors the byte content behind every recorded hash.
	BaselineDir = "baseline"
)

// Paths is the shared root path-resolution policy: where projects live
// inside a workspace and how a project root is laid out.
type Paths struct {
	WorkspaceDir string
}

// NewPaths returns the path policy for a workspace directory.
func NewPaths(workspace string) *Paths {
	return &Paths{WorkspaceDir: workspace}
}

// ProjectRoot returns the root directory of a named project.
func (p *Paths) ProjectRoot(name string) string {
	return filepath.Join(p.WorkspaceDir, name)
}

// ProjectMetadata returns the project document path for a named project.
func (p *Paths) ProjectMetadata(name string) string {
	return filepath.Join(p.ProjectRoot(name), MetadataFile)
}

// ProjectPaths resolves locations inside one project root.
type ProjectPaths struct {
	Root string
}

// Metadata returns the persisted document path.
func (pp ProjectPaths) Metadata() string {
	return filepath.Join(pp.Root, MetadataFile)
}

// Versions returns the directory holding all snapshot directories.
func (pp ProjectPaths) Versions() string {
	return filepath.Join(pp.Root, VersionsDir)
}

// Version returns the snapshot directory of version n.
func (pp ProjectPaths) Version(n int) string {
	return filepath.Join(pp.Versions(), fmt.Sprintf("v%d", n))
}

// VersionFile returns the path of rel inside version n's snapshot.
func (pp ProjectPaths) VersionFile(n int, rel string) string {
	return filepath.Join(pp.Version(n), filepath.FromSlash(rel))
}

// Baseline returns the baseline mirror directory.
func (pp ProjectPaths) Baseline() string {
	return filepath.Join(pp.Root, BaselineDir)
}

// BaselineFile returns the baseline copy of rel.
func (pp ProjectPaths) BaselineFile(rel string) string {
	return filepath.Join(pp.Baseline(), filepath.FromSlash(rel))
}
