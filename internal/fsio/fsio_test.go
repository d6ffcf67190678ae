package fsio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/fvc/internal/fsio"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCopyFilePreservesContentAndModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	write(t, src, "payload")

	dst := filepath.Join(dir, "nested", "deep", "dst.txt")
	require.NoError(t, fsio.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, srcInfo.ModTime().Equal(dstInfo.ModTime()))
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := fsio.CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}

func TestCopyTreeExcludes(t *testing.T) {
	src := t.TempDir()
	write(t, filepath.Join(src, "keep.txt"), "keep")
	write(t, filepath.Join(src, "sub", "nested.txt"), "nested")
	write(t, filepath.Join(src, "project.json"), "meta")
	write(t, filepath.Join(src, "versions", "v1", "old.txt"), "old")

	dst := t.TempDir()
	require.NoError(t, fsio.CopyTree(src, dst, "project.json", "versions"))

	files, err := fsio.ListFiles(dst)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"keep.txt", "sub/nested.txt"}, files)
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"), "a")
	write(t, filepath.Join(root, "sub", "b.txt"), "b")

	files, err := fsio.ListFiles(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, files)
	for _, f := range files {
		assert.NotContains(t, f, "\\", "paths must be slash-separated")
	}

	missing, err := fsio.ListFiles(filepath.Join(root, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	assert.True(t, fsio.Exists(root))
	assert.False(t, fsio.Exists(filepath.Join(root, "ghost")))
}
