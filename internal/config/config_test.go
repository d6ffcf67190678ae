package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/fvc/internal/config"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Workspace)
	assert.NotEmpty(t, cfg.Log.FilePath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "workspace: /data/projects\nlog:\n  level: debug\n  max_size_mb: 42\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/projects", cfg.Workspace)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 42, cfg.Log.MaxSizeMB)
	assert.NotEmpty(t, cfg.Log.FilePath, "unset fields keep their defaults")
}

func TestProjectPathsLayout(t *testing.T) {
	pp := config.ProjectPaths{Root: filepath.Join("ws", "demo")}

	assert.Equal(t, filepath.Join("ws", "demo", "project.json"), pp.Metadata())
	assert.Equal(t, filepath.Join("ws", "demo", "versions", "v3"), pp.Version(3))
	assert.Equal(t, filepath.Join("ws", "demo", "versions", "v3", "docs", "a.md"), pp.VersionFile(3, "docs/a.md"))
	assert.Equal(t, filepath.Join("ws", "demo", "baseline", "a.md"), pp.BaselineFile("a.md"))
}
