package fileprobe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/fvc/internal/fileprobe"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHashStability(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "stable content")

	first := fileprobe.Hash(path)
	require.NotEmpty(t, first)
	assert.Equal(t, first, fileprobe.Hash(path), "unmodified file must hash identically")
}

func TestHashSensitivity(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "content")
	b := writeFile(t, dir, "b.txt", "content!")

	assert.NotEqual(t, fileprobe.Hash(a), fileprobe.Hash(b))
}

func TestHashMissingFileSentinel(t *testing.T) {
	assert.Empty(t, fileprobe.Hash(filepath.Join(t.TempDir(), "nope.txt")))
}

func TestSizeAndModTimeSentinels(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	assert.Zero(t, fileprobe.Size(missing))
	assert.True(t, fileprobe.ModTime(missing).IsZero())
}

func TestSize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "12345")
	assert.Equal(t, int64(5), fileprobe.Size(path))
}

func TestIsText(t *testing.T) {
	assert.True(t, fileprobe.IsText("notes.md"))
	assert.True(t, fileprobe.IsText("main.GO"))
	assert.True(t, fileprobe.IsText("sub/dir/config.yaml"))
	assert.False(t, fileprobe.IsText("image.png"))
	assert.False(t, fileprobe.IsText("archive.zip"))
	assert.False(t, fileprobe.IsText("noextension"))
}

func TestReadText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "hello\nworld")
	assert.Equal(t, "hello\nworld", fileprobe.ReadText(path))
}

func TestReadTextMissingFile(t *testing.T) {
	assert.Empty(t, fileprobe.ReadText(filepath.Join(t.TempDir(), "nope.txt")))
}

func TestReadTextToleratesInvalidEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 'h', 'i'}, 0o644))

	content := fileprobe.ReadText(path)
	assert.Len(t, content, 4, "raw bytes must pass through untouched")
}

func TestIsLarge(t *testing.T) {
	path := writeFile(t, t.TempDir(), "small.txt", "tiny")
	assert.False(t, fileprobe.IsLarge(path, 1))
}
