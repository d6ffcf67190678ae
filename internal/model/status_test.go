package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/fvc/internal/fileprobe"
	"github.com/keshon/fvc/internal/model"
)

func TestStatusClassification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	hash := fileprobe.Hash(path)

	t.Run("unchanged when hashes match", func(t *testing.T) {
		st := model.StatusFromFile(path, "a.txt", hash)
		assert.Equal(t, model.Unchanged, st.Change)
		assert.Equal(t, hash, st.CurrentHash)
	})

	t.Run("added when no baseline", func(t *testing.T) {
		st := model.StatusFromFile(path, "a.txt", "")
		assert.Equal(t, model.Added, st.Change)
	})

	t.Run("modified when hashes differ", func(t *testing.T) {
		st := model.StatusFromFile(path, "a.txt", "someotherhash")
		assert.Equal(t, model.Modified, st.Change)
	})

	t.Run("deleted when file absent", func(t *testing.T) {
		st := model.StatusFromFile(filepath.Join(dir, "gone.txt"), "gone.txt", hash)
		assert.Equal(t, model.Deleted, st.Change)
		assert.Empty(t, st.CurrentHash)
		assert.Zero(t, st.Size)
		assert.True(t, st.ModTime.IsZero())
	})
}

func TestStatusMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(path, 0o755))
	file := filepath.Join(path, "note.md")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	st := model.StatusFromFile(file, "sub/note.md", "")
	assert.Equal(t, "sub/note.md", st.Path)
	assert.Equal(t, "note.md", st.Name)
	assert.Equal(t, int64(5), st.Size)
	assert.True(t, st.IsText)
	assert.False(t, st.ModTime.IsZero())
}
