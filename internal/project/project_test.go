package project_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/fvc/internal/fileprobe"
	"github.com/keshon/fvc/internal/model"
	"github.com/keshon/fvc/internal/project"
)

// externalFile creates a file outside any project, as a file picker
// would hand it over.
func externalFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func snapshotFile(p *project.Project, version int, rel string) string {
	return filepath.Join(p.Root(), "versions", fmt.Sprintf("v%d", version), filepath.FromSlash(rel))
}

func overwrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newManager(t *testing.T) *project.Manager {
	t.Helper()
	return project.NewManager(t.TempDir(), nil)
}

func TestCreateProjectUninitialized(t *testing.T) {
	m := newManager(t)

	p, err := m.CreateProject("empty", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, p.CurrentVersion())
	assert.Empty(t, p.Versions())
	assert.FileExists(t, filepath.Join(p.Root(), "project.json"))
	assert.DirExists(t, filepath.Join(p.Root(), "versions"))

	statuses, err := p.FileStatuses()
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestCreateProjectWithInitialFiles(t *testing.T) {
	m := newManager(t)
	readme := externalFile(t, "readme.txt", "hello")

	p, err := m.CreateProject("Demo", []string{readme}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, p.CurrentVersion())
	require.Len(t, p.Versions(), 1)
	assert.Equal(t, []string{"readme.txt"}, p.Versions()[0].Files)
	assert.Equal(t, []string{"readme.txt"}, p.TrackedFiles())

	statuses, err := p.FileStatuses()
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, model.Unchanged, statuses[0].Change)
	assert.Equal(t, fileprobe.Hash(snapshotFile(p, 1, "readme.txt")), statuses[0].BaselineHash)
}

func TestCreateProjectNameValidation(t *testing.T) {
	m := newManager(t)

	for _, name := range []string{"", "   ", "bad/name", `bad|name`, "bad?name"} {
		_, err := m.CreateProject(name, nil, nil)
		var verr *project.ValidationError
		require.ErrorAs(t, err, &verr, "name %q must be rejected", name)
	}

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	_, err := m.CreateProject(string(long), nil, nil)
	var verr *project.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateProjectRejectsExistingNonEmptyRoot(t *testing.T) {
	m := newManager(t)
	_, err := m.CreateProject("taken", nil, nil)
	require.NoError(t, err)

	_, err = m.CreateProject("taken", nil, nil)
	var verr *project.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestVersionNumbering(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("numbers", []string{externalFile(t, "a.txt", "one")}, nil)
	require.NoError(t, err)

	for i := 2; i <= 5; i++ {
		v, err := p.CreateNewVersion("iteration", nil)
		require.NoError(t, err)
		assert.Equal(t, i, v.Number)
	}

	versions := p.Versions()
	require.Len(t, versions, 5)
	for i, v := range versions {
		assert.Equal(t, i+1, v.Number, "numbers must be contiguous from 1 in order")
	}
	assert.Equal(t, 5, p.CurrentVersion())
}

func TestCreateNewVersionCopiesSnapshotForward(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("carry", []string{externalFile(t, "a.txt", "original")}, nil)
	require.NoError(t, err)

	// Edit in place, then cut: the new snapshot captures the edit.
	overwrite(t, snapshotFile(p, 1, "a.txt"), "edited")

	v, err := p.CreateNewVersion("second", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, v.Files)

	data, err := os.ReadFile(snapshotFile(p, 2, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))
}

func TestCreateNewVersionDescriptionValidation(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("strict", []string{externalFile(t, "a.txt", "x")}, nil)
	require.NoError(t, err)

	var verr *project.ValidationError
	_, err = p.CreateNewVersion("", nil)
	require.ErrorAs(t, err, &verr)

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'd'
	}
	_, err = p.CreateNewVersion(string(long), nil)
	require.ErrorAs(t, err, &verr)

	// Rejected before any mutation: no v2 directory, still at version 1.
	assert.NoDirExists(t, filepath.Join(p.Root(), "versions", "v2"))
	assert.Equal(t, 1, p.CurrentVersion())
}

func TestSaveRequiresActiveVersion(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("inactive", nil, nil)
	require.NoError(t, err)

	var serr *project.StateError
	require.ErrorAs(t, p.SaveToCurrentVersion(), &serr)
	require.ErrorAs(t, p.AddTrackedFiles([]string{externalFile(t, "x.txt", "x")}), &serr)
}

func TestEndToEndModifySaveCycle(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("Demo", []string{externalFile(t, "readme.txt", "hello")}, nil)
	require.NoError(t, err)

	live := snapshotFile(p, 1, "readme.txt")
	overwrite(t, live, "hello world")

	statuses, err := p.FileStatuses()
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, model.Modified, statuses[0].Change)

	d := p.CompareWithCurrent(1, "readme.txt")
	assert.Equal(t, "hello", d.OldContent)
	assert.Equal(t, "hello world", d.NewContent)
	assert.Equal(t, model.VersionWorking, d.NewVersion)

	var removed, added []string
	for _, l := range d.Lines {
		switch l.Kind {
		case model.DiffRemoved:
			removed = append(removed, l.Text)
		case model.DiffAdded:
			added = append(added, l.Text)
		}
	}
	assert.Equal(t, []string{"hello"}, removed)
	assert.Equal(t, []string{"hello world"}, added)

	require.NoError(t, p.SaveToCurrentVersion())

	statuses, err = p.FileStatuses()
	require.NoError(t, err)
	assert.Equal(t, model.Unchanged, statuses[0].Change)
	assert.Equal(t, fileprobe.Hash(live), statuses[0].BaselineHash)

	// Baseline caught up: nothing left to diff.
	assert.False(t, p.CompareWithCurrent(1, "readme.txt").HasChanges())
}

func TestSyncReconciliation(t *testing.T) {
	m := newManager(t)
	a := externalFile(t, "a.txt", "aaa")
	b := externalFile(t, "b.txt", "bbb")
	p, err := m.CreateProject("sync", []string{a, b}, nil)
	require.NoError(t, err)

	// Disk drifts: a deleted, b modified, c appears.
	require.NoError(t, os.Remove(snapshotFile(p, 1, "a.txt")))
	overwrite(t, snapshotFile(p, 1, "b.txt"), "bbb changed")
	overwrite(t, snapshotFile(p, 1, "c.txt"), "ccc")

	cs, err := p.Changes()
	require.NoError(t, err)
	assert.Equal(t, []string{"c.txt"}, cs.Added)
	assert.Equal(t, []string{"a.txt"}, cs.Removed)
	assert.Equal(t, []string{"b.txt"}, cs.Modified)

	require.NoError(t, p.ApplySyncChanges(cs))

	assert.Equal(t, []string{"b.txt", "c.txt"}, p.TrackedFiles())
	v, ok := p.VersionByNumber(1)
	require.True(t, ok)
	assert.Equal(t, []string{"b.txt", "c.txt"}, v.Files)

	// b was not rehashed (sync never touches content), c was; a's
	// recorded hash is gone, so only b still reads as modified.
	cs, err = p.Changes()
	require.NoError(t, err)
	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Removed)
	assert.Equal(t, []string{"b.txt"}, cs.Modified)
}

func TestFileStatusesUnionDiskAndDeclared(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("union", []string{externalFile(t, "a.txt", "aaa")}, nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(snapshotFile(p, 1, "a.txt")))
	overwrite(t, snapshotFile(p, 1, "new.txt"), "undeclared")

	statuses, err := p.FileStatuses()
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byPath := map[string]model.ChangeType{}
	for _, st := range statuses {
		byPath[st.Path] = st.Change
	}
	assert.Equal(t, model.Deleted, byPath["a.txt"])
	assert.Equal(t, model.Added, byPath["new.txt"])
}

func TestAddTrackedFiles(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("adder", []string{externalFile(t, "a.txt", "aaa")}, nil)
	require.NoError(t, err)

	require.NoError(t, p.AddTrackedFiles([]string{externalFile(t, "extra.md", "# extra")}))

	assert.ElementsMatch(t, []string{"a.txt", "extra.md"}, p.TrackedFiles())
	assert.FileExists(t, snapshotFile(p, 1, "extra.md"))

	statuses, err := p.FileStatuses()
	require.NoError(t, err)
	for _, st := range statuses {
		assert.Equal(t, model.Unchanged, st.Change, "freshly added %s must carry a baseline", st.Path)
	}
}

func TestRemoveTrackedFileGlobalDetach(t *testing.T) {
	m := newManager(t)
	a := externalFile(t, "a.txt", "aaa")
	b := externalFile(t, "b.txt", "bbb")
	p, err := m.CreateProject("remover", []string{a, b}, nil)
	require.NoError(t, err)
	_, err = p.CreateNewVersion("second", nil)
	require.NoError(t, err)

	require.NoError(t, p.RemoveTrackedFile("a.txt"))

	assert.Equal(t, []string{"b.txt"}, p.TrackedFiles())
	for _, v := range p.Versions() {
		assert.NotContains(t, v.Files, "a.txt", "v%d must forget the file", v.Number)
	}
	assert.NoFileExists(t, snapshotFile(p, 2, "a.txt"))
	// Older snapshots keep their bytes: removal detaches, it does not
	// rewrite history directories.
	assert.FileExists(t, snapshotFile(p, 1, "a.txt"))
}

func TestRollback(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("roller", []string{externalFile(t, "a.txt", "v1 content")}, nil)
	require.NoError(t, err)
	overwrite(t, snapshotFile(p, 1, "a.txt"), "v1 edited")
	_, err = p.CreateNewVersion("second", nil)
	require.NoError(t, err)

	require.True(t, p.RollbackToVersion(1))
	assert.Equal(t, 1, p.CurrentVersion())

	// Neither snapshot's content moved.
	one, err := os.ReadFile(snapshotFile(p, 1, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v1 edited", string(one))
	two, err := os.ReadFile(snapshotFile(p, 2, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v1 edited", string(two))

	// The baseline now describes v1's live state.
	statuses, err := p.FileStatuses()
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, model.Unchanged, statuses[0].Change)

	assert.False(t, p.RollbackToVersion(99))
	assert.Equal(t, 1, p.CurrentVersion())
}

func TestUpdateVersionNotes(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("notes", []string{externalFile(t, "a.txt", "x")}, nil)
	require.NoError(t, err)
	_, err = p.CreateNewVersion("second", nil)
	require.NoError(t, err)

	assert.True(t, p.UpdateVersionNotes(1, "first cut, keep for reference"))
	assert.False(t, p.UpdateVersionNotes(42, "nope"))

	v, ok := p.VersionByNumber(1)
	require.True(t, ok)
	assert.Equal(t, "first cut, keep for reference", v.Notes)
}

func TestPersistReload(t *testing.T) {
	workspace := t.TempDir()
	m := project.NewManager(workspace, nil)

	p, err := m.CreateProject("persist", []string{externalFile(t, "a.txt", "aaa")}, nil)
	require.NoError(t, err)
	_, err = p.CreateNewVersion("second", nil)
	require.NoError(t, err)
	require.True(t, p.UpdateVersionNotes(2, "remember this"))

	reloaded, err := m.LoadProjectByName("persist")
	require.NoError(t, err)

	assert.Equal(t, p.CurrentVersion(), reloaded.CurrentVersion())
	assert.Equal(t, p.TrackedFiles(), reloaded.TrackedFiles())
	require.Len(t, reloaded.Versions(), 2)
	for i, v := range p.Versions() {
		got := reloaded.Versions()[i]
		assert.Equal(t, v.Number, got.Number)
		assert.Equal(t, v.Description, got.Description)
		assert.Equal(t, v.Files, got.Files)
		assert.Equal(t, v.Notes, got.Notes)
		assert.Equal(t, v.CreatedAt.Unix(), got.CreatedAt.Unix())
	}
}

func TestVersionChanges(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("differ", []string{externalFile(t, "a.txt", "one")}, nil)
	require.NoError(t, err)
	overwrite(t, snapshotFile(p, 1, "a.txt"), "two")
	_, err = p.CreateNewVersion("second", nil)
	require.NoError(t, err)

	changes := p.VersionChanges(1, 2)
	require.Contains(t, changes, "a.txt")
	assert.Equal(t, "one", changes["a.txt"].OldContent)
	assert.Equal(t, "two", changes["a.txt"].NewContent)

	assert.Empty(t, p.VersionChanges(1, 42))
}

func TestSearchDelegation(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("searcher", []string{externalFile(t, "notes.md", "alpha\nbeta\n")}, nil)
	require.NoError(t, err)

	results := p.SearchInVersions("beta", nil, false)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Version.Number)
	assert.Equal(t, 2, results[0].LineNumber)

	versions := p.SearchVersionDescriptions("initial", false)
	require.Len(t, versions, 1)
	assert.Equal(t, 1, versions[0].Number)
}

func TestStateErrorsAreTyped(t *testing.T) {
	m := newManager(t)
	p, err := m.CreateProject("typed", nil, nil)
	require.NoError(t, err)

	err = p.SaveToCurrentVersion()
	var serr *project.StateError
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, serr.Error(), "no active version")
}
