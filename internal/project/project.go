// Package project owns the per-project aggregate and the version
// lifecycle: create, save, switch, sync, add/remove tracked files, and
// the status/diff/search queries delegated to the engines.
//
// All operations are synchronous and single-threaded; one Project
// exclusively owns its in-memory document and its on-disk root. A
// second concurrent writer against the same root clobbers persisted
// state silently - accepted limitation, not a guarantee.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/keshon/fvc/internal/config"
	"github.com/keshon/fvc/internal/diffengine"
	"github.com/keshon/fvc/internal/fileprobe"
	"github.com/keshon/fvc/internal/fsio"
	"github.com/keshon/fvc/internal/model"
)

// Project is the orchestrator over one project root. State machine:
// UNINITIALIZED (current version 0, no snapshot) becomes ACTIVE once
// the first version is cut; there is no way back.
type Project struct {
	root   string
	paths  config.ProjectPaths
	data   *model.ProjectData
	diff   *diffengine.DiffEngine
	search *diffengine.SearchEngine
	log    *zap.Logger
}

func newProject(root string, logger *zap.Logger) *Project {
	if logger == nil {
		logger = zap.NewNop()
	}
	pp := config.ProjectPaths{Root: root}
	return &Project{
		root:   root,
		paths:  pp,
		diff:   diffengine.NewDiffEngine(pp.Versions()),
		search: diffengine.NewSearchEngine(pp.Versions()),
		log:    logger.With(zap.String("project", filepath.Base(root))),
	}
}

// CreateAt creates a fresh project at root. With initial files the
// project immediately cuts version 1 from them; otherwise it persists
// in the unversioned state.
func CreateAt(root string, settings model.ProjectSettings, initialFiles []string, logger *zap.Logger) (*Project, error) {
	if err := ValidateProjectName(settings.Name); err != nil {
		return nil, err
	}

	if entries, err := os.ReadDir(root); err == nil && len(entries) > 0 {
		return nil, &ValidationError{Message: fmt.Sprintf("project %q already exists and is not empty", settings.Name)}
	}

	if err := fsio.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create project root %q: %w", root, err)
	}

	p := newProject(root, logger)
	p.data = model.NewProjectData(settings)

	if err := fsio.MkdirAll(p.paths.Versions(), 0o755); err != nil {
		return nil, fmt.Errorf("create versions dir: %w", err)
	}

	if len(initialFiles) > 0 {
		if _, err := p.CreateNewVersion("Initial version", initialFiles); err != nil {
			return nil, err
		}
	} else if err := p.save(); err != nil {
		return nil, err
	}

	p.log.Info("project created",
		zap.Int("initial_files", len(initialFiles)),
		zap.Int("current_version", p.data.CurrentVersion))
	return p, nil
}

// LoadAt opens an existing project from its persisted document.
func LoadAt(metadataPath string, logger *zap.Logger) (*Project, error) {
	data, err := model.LoadProjectData(metadataPath)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(metadataPath)
	p := newProject(root, logger)
	p.data = data
	if p.data.Settings.Name == "" {
		p.data.Settings = model.NewProjectSettings(filepath.Base(root))
	}
	return p, nil
}

// CreateNewVersion cuts the next version. In the unversioned state the
// external files bootstrap version 1 (copied by basename); afterwards
// the entire current snapshot is copied forward and re-enumerated.
func (p *Project) CreateNewVersion(description string, externalFiles []string) (*model.Version, error) {
	if err := ValidateVersionDescription(description); err != nil {
		return nil, err
	}

	newNumber := p.LatestVersionNumber() + 1
	newDir := p.paths.Version(newNumber)
	if err := fsio.MkdirAll(newDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir v%d: %w", newNumber, err)
	}

	var files []string
	if p.data.CurrentVersion == 0 && len(externalFiles) > 0 {
		for _, external := range externalFiles {
			name := filepath.Base(external)
			if err := fsio.CopyFile(external, filepath.Join(newDir, name)); err != nil {
				return nil, fmt.Errorf("copy initial file %q: %w", external, err)
			}
			files = append(files, name)
		}
		p.data.TrackedFiles = append([]string(nil), files...)
	} else if p.data.CurrentVersion > 0 {
		srcDir := p.paths.Version(p.data.CurrentVersion)
		if fsio.Exists(srcDir) {
			err := fsio.CopyTree(srcDir, newDir, config.MetadataFile, config.VersionsDir, config.BaselineDir)
			if err != nil {
				return nil, fmt.Errorf("copy snapshot v%d to v%d: %w", p.data.CurrentVersion, newNumber, err)
			}
			files, err = fsio.ListFiles(newDir)
			if err != nil {
				return nil, fmt.Errorf("enumerate snapshot v%d: %w", newNumber, err)
			}
		}
	}
	if files == nil {
		files = []string{}
	}
	sort.Strings(files)

	p.data.CurrentVersion = newNumber
	p.updateFileHashes(files)

	p.data.AddVersion(model.Version{
		Number:      newNumber,
		Description: description,
		CreatedAt:   time.Now(),
		Files:       files,
	})
	if err := p.save(); err != nil {
		return nil, err
	}

	p.log.Info("version created",
		zap.Int("version", newNumber),
		zap.Int("files", len(files)))
	return p.data.VersionByNumber(newNumber), nil
}

// SaveToCurrentVersion re-records the baseline for the current
// version's file list from the live snapshot directory and refreshes
// the version timestamp. Valid only once a version exists.
func (p *Project) SaveToCurrentVersion() error {
	if p.data.CurrentVersion == 0 {
		return &StateError{Op: "save"}
	}
	v := p.data.VersionByNumber(p.data.CurrentVersion)
	if v == nil {
		return &StateError{Op: "save"}
	}

	p.updateFileHashes(v.Files)
	v.CreatedAt = time.Now()
	if err := p.save(); err != nil {
		return err
	}
	p.log.Info("baseline saved", zap.Int("version", v.Number))
	return nil
}

// RollbackToVersion switches the current version without restoring any
// content: the previous current version keeps its in-place edits in
// its own directory. Returns false for an unknown version, leaving
// everything untouched. The recorded hashes and the baseline mirror
// are recomputed from the target snapshot.
func (p *Project) RollbackToVersion(n int) bool {
	v := p.data.VersionByNumber(n)
	if v == nil {
		return false
	}

	previous := p.data.CurrentVersion
	p.data.CurrentVersion = n

	p.data.FileHashes = map[string]string{}
	if err := fsio.RemoveAll(p.paths.Baseline()); err != nil {
		p.log.Warn("reset baseline mirror", zap.Error(err))
	}
	p.updateFileHashes(v.Files)

	if err := p.save(); err != nil {
		p.log.Error("rollback persist failed", zap.Int("version", n), zap.Error(err))
		p.data.CurrentVersion = previous
		return false
	}

	p.log.Info("switched version", zap.Int("from", previous), zap.Int("to", n))
	return true
}

// Changes reconciles the declared file set of the current version
// against the live snapshot directory: removed (declared, absent),
// added (on disk, undeclared), modified (declared, present, live hash
// differs). Every call walks and rehashes - tracked sets are small and
// human-curated.
func (p *Project) Changes() (model.ChangeSet, error) {
	var cs model.ChangeSet

	declared := map[string]bool{}
	if v := p.data.VersionByNumber(p.data.CurrentVersion); v != nil {
		for _, rel := range v.Files {
			declared[rel] = true
		}
	}

	var onDisk []string
	if p.data.CurrentVersion > 0 {
		var err error
		onDisk, err = fsio.ListFiles(p.paths.Version(p.data.CurrentVersion))
		if err != nil {
			return cs, fmt.Errorf("scan snapshot dir: %w", err)
		}
	}

	disk := map[string]bool{}
	for _, rel := range onDisk {
		disk[rel] = true
	}

	for rel := range declared {
		if !disk[rel] {
			cs.Removed = append(cs.Removed, rel)
		}
	}
	for _, rel := range onDisk {
		if !declared[rel] {
			cs.Added = append(cs.Added, rel)
			continue
		}
		if fileprobe.Hash(p.workingFilePath(rel)) != p.data.FileHash(rel) {
			cs.Modified = append(cs.Modified, rel)
		}
	}

	sort.Strings(cs.Added)
	sort.Strings(cs.Removed)
	sort.Strings(cs.Modified)
	return cs, nil
}

// ApplySyncChanges merges a reconciliation result into the declared
// state: added paths join the tracked set and the current file list,
// removed paths leave all three records. Disk content is never touched.
func (p *Project) ApplySyncChanges(cs model.ChangeSet) error {
	tracked := map[string]bool{}
	for _, rel := range p.data.TrackedFiles {
		tracked[rel] = true
	}
	for _, rel := range cs.Added {
		tracked[rel] = true
	}
	for _, rel := range cs.Removed {
		delete(tracked, rel)
	}
	p.data.TrackedFiles = setToSorted(tracked)

	for _, rel := range cs.Removed {
		p.data.RemoveFileHash(rel)
		_ = fsio.Remove(p.paths.BaselineFile(rel))
	}

	if v := p.data.VersionByNumber(p.data.CurrentVersion); v != nil {
		current := map[string]bool{}
		for _, rel := range v.Files {
			current[rel] = true
		}
		for _, rel := range cs.Added {
			current[rel] = true
		}
		for _, rel := range cs.Removed {
			delete(current, rel)
		}
		v.Files = setToSorted(current)
	}

	p.updateFileHashes(cs.Added)
	if err := p.save(); err != nil {
		return err
	}

	p.log.Info("sync applied",
		zap.Int("added", len(cs.Added)),
		zap.Int("removed", len(cs.Removed)),
		zap.Int("modified", len(cs.Modified)))
	return nil
}

// AddTrackedFiles copies external files into the current snapshot by
// basename (a name collision means last write wins) and registers
// them. Requires an active version.
func (p *Project) AddTrackedFiles(paths []string) error {
	if p.data.CurrentVersion == 0 {
		return &StateError{Op: "add files"}
	}

	var added []string
	for _, src := range paths {
		name := filepath.Base(src)
		dst := p.workingFilePath(name)

		srcAbs, _ := filepath.Abs(src)
		dstAbs, _ := filepath.Abs(dst)
		if srcAbs != dstAbs {
			if err := fsio.CopyFile(src, dst); err != nil {
				return fmt.Errorf("copy %q into snapshot: %w", src, err)
			}
		}

		if !contains(p.data.TrackedFiles, name) {
			p.data.TrackedFiles = append(p.data.TrackedFiles, name)
		}
		if v := p.data.VersionByNumber(p.data.CurrentVersion); v != nil && !contains(v.Files, name) {
			v.Files = append(v.Files, name)
			added = append(added, name)
		}
	}

	p.updateFileHashes(added)
	return p.save()
}

// RemoveTrackedFile detaches rel from the tracked set, from every
// version's file list, from the recorded hashes, and deletes the
// on-disk working file. Irreversible.
func (p *Project) RemoveTrackedFile(rel string) error {
	p.data.TrackedFiles = remove(p.data.TrackedFiles, rel)
	for i := range p.data.Versions {
		p.data.Versions[i].Files = remove(p.data.Versions[i].Files, rel)
	}
	p.data.RemoveFileHash(rel)
	_ = fsio.Remove(p.paths.BaselineFile(rel))

	if p.data.CurrentVersion > 0 {
		if target := p.workingFilePath(rel); fsio.Exists(target) {
			if err := fsio.Remove(target); err != nil {
				return fmt.Errorf("delete %q: %w", rel, err)
			}
		}
	}

	p.log.Info("file untracked", zap.String("path", rel))
	return p.save()
}

// UpdateVersionNotes attaches free-text notes to version n, regardless
// of which version is current. Returns false for an unknown version.
func (p *Project) UpdateVersionNotes(n int, notes string) bool {
	v := p.data.VersionByNumber(n)
	if v == nil {
		return false
	}
	previous := v.Notes
	v.Notes = notes
	if err := p.save(); err != nil {
		p.log.Error("notes persist failed", zap.Int("version", n), zap.Error(err))
		v.Notes = previous
		return false
	}
	return true
}

// UpdateSettings replaces the project settings wholesale.
func (p *Project) UpdateSettings(settings model.ProjectSettings) error {
	p.data.Settings = settings
	return p.save()
}

// FileStatuses classifies the union of the current version's declared
// files and everything on disk under its snapshot directory against
// the recorded baseline hashes. Empty while unversioned.
func (p *Project) FileStatuses() ([]model.FileStatus, error) {
	v := p.data.VersionByNumber(p.data.CurrentVersion)
	if v == nil {
		return nil, nil
	}

	declared := map[string]bool{}
	for _, rel := range v.Files {
		declared[rel] = true
	}

	onDisk, err := fsio.ListFiles(p.paths.Version(v.Number))
	if err != nil {
		return nil, fmt.Errorf("scan snapshot dir: %w", err)
	}

	all := map[string]bool{}
	for rel := range declared {
		all[rel] = true
	}
	for _, rel := range onDisk {
		all[rel] = true
	}

	statuses := make([]model.FileStatus, 0, len(all))
	for _, rel := range setToSorted(all) {
		st := model.StatusFromFile(p.workingFilePath(rel), rel, p.data.FileHash(rel))
		if !declared[rel] && st.CurrentHash != "" {
			st.Change = model.Added
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// ModifiedFiles returns only the statuses that are not unchanged.
func (p *Project) ModifiedFiles() ([]model.FileStatus, error) {
	all, err := p.FileStatuses()
	if err != nil {
		return nil, err
	}
	var out []model.FileStatus
	for _, st := range all {
		if st.Change != model.Unchanged {
			out = append(out, st)
		}
	}
	return out, nil
}

// CompareVersions diffs one file between two stored snapshots.
func (p *Project) CompareVersions(oldN, newN int, rel string) model.FileDiff {
	return p.diff.CompareVersions(oldN, newN, rel)
}

// CompareWithCurrent diffs the live working copy of rel against a
// stored state. For the current version the old side is the baseline
// mirror - the exact bytes that produced the last recorded hash - so a
// "modified" status always diffs against what it was measured against.
// For any other version the old side is that version's snapshot.
func (p *Project) CompareWithCurrent(n int, rel string) model.FileDiff {
	working := p.workingFilePath(rel)
	if n == p.data.CurrentVersion && n != 0 {
		return p.diff.ComparePaths(p.paths.BaselineFile(rel), working, n, model.VersionWorking, rel)
	}
	return p.diff.CompareWithWorking(n, rel, working)
}

// VersionChanges diffs every file recorded in either version and
// returns only the changed ones, keyed by path. Unknown versions yield
// an empty map.
func (p *Project) VersionChanges(oldN, newN int) map[string]model.FileDiff {
	oldV := p.data.VersionByNumber(oldN)
	newV := p.data.VersionByNumber(newN)
	if oldV == nil || newV == nil {
		return map[string]model.FileDiff{}
	}

	all := map[string]bool{}
	for _, rel := range oldV.Files {
		all[rel] = true
	}
	for _, rel := range newV.Files {
		all[rel] = true
	}
	return p.diff.VersionChanges(oldN, newN, setToSorted(all))
}

// VersionChangesWithWorking diffs version n against the live working
// copy for every candidate path (recorded in n or present on disk).
func (p *Project) VersionChangesWithWorking(n int) map[string]model.FileDiff {
	v := p.data.VersionByNumber(n)
	if v == nil {
		return map[string]model.FileDiff{}
	}

	all := map[string]bool{}
	for _, rel := range v.Files {
		all[rel] = true
	}
	if p.data.CurrentVersion > 0 {
		onDisk, err := fsio.ListFiles(p.paths.Version(p.data.CurrentVersion))
		if err == nil {
			for _, rel := range onDisk {
				all[rel] = true
			}
		}
	}

	changes := map[string]model.FileDiff{}
	for _, rel := range setToSorted(all) {
		d := p.CompareWithCurrent(n, rel)
		if d.HasChanges() {
			changes[rel] = d
		}
	}
	return changes
}

// SearchInVersions scans stored snapshot content across all versions.
func (p *Project) SearchInVersions(query string, extensions []string, caseSensitive bool) []model.SearchResult {
	return p.search.SearchInVersions(query, p.data.Versions, extensions, caseSensitive)
}

// SearchVersionDescriptions filters versions by description substring.
func (p *Project) SearchVersionDescriptions(query string, caseSensitive bool) []model.Version {
	return p.search.SearchVersionDescriptions(query, p.data.Versions, caseSensitive)
}

// Read accessors for the presentation layer.

// Root returns the project root directory.
func (p *Project) Root() string { return p.root }

// Name returns the project name.
func (p *Project) Name() string { return p.data.Settings.Name }

// CurrentVersion returns the current version number, 0 when none.
func (p *Project) CurrentVersion() int { return p.data.CurrentVersion }

// LatestVersionNumber returns the highest version number, 0 when none.
func (p *Project) LatestVersionNumber() int {
	if v := p.data.LatestVersion(); v != nil {
		return v.Number
	}
	return 0
}

// TrackedFiles returns a copy of the declared tracked set.
func (p *Project) TrackedFiles() []string {
	return append([]string(nil), p.data.TrackedFiles...)
}

// Versions returns a copy of the version list.
func (p *Project) Versions() []model.Version {
	return append([]model.Version(nil), p.data.Versions...)
}

// VersionByNumber returns a copy of version n and whether it exists.
func (p *Project) VersionByNumber(n int) (model.Version, bool) {
	if v := p.data.VersionByNumber(n); v != nil {
		return *v, true
	}
	return model.Version{}, false
}

// Settings returns the current project settings.
func (p *Project) Settings() model.ProjectSettings { return p.data.Settings }

// workingFilePath resolves rel inside the current snapshot directory,
// which doubles as the working directory.
func (p *Project) workingFilePath(rel string) string {
	if p.data.CurrentVersion == 0 {
		return filepath.Join(p.root, filepath.FromSlash(rel))
	}
	return p.paths.VersionFile(p.data.CurrentVersion, rel)
}

// updateFileHashes re-records hashes for the given relative paths and
// refreshes the baseline mirror with the exact bytes hashed. Paths
// absent on disk lose their recorded hash and baseline copy.
func (p *Project) updateFileHashes(rels []string) {
	if p.data.CurrentVersion == 0 {
		return
	}
	for _, rel := range rels {
		full := p.workingFilePath(rel)
		if h := fileprobe.Hash(full); h != "" {
			p.data.SetFileHash(rel, h)
			if err := fsio.CopyFile(full, p.paths.BaselineFile(rel)); err != nil {
				p.log.Warn("baseline copy failed", zap.String("path", rel), zap.Error(err))
			}
			continue
		}
		p.data.RemoveFileHash(rel)
		_ = fsio.Remove(p.paths.BaselineFile(rel))
	}
}

func (p *Project) save() error {
	return p.data.Save(p.paths.Metadata())
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
