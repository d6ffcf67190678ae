package project

import (
	"go.uber.org/zap"

	"github.com/keshon/fvc/internal/config"
	"github.com/keshon/fvc/internal/model"
)

// Manager is the construction and loading factory for projects. It
// holds the shared workspace path policy; everything else is delegated.
type Manager struct {
	paths *config.Paths
	log   *zap.Logger
}

// NewManager returns a factory over a workspace directory.
func NewManager(workspace string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{paths: config.NewPaths(workspace), log: logger}
}

// CreateProject creates a named project, optionally cutting version 1
// from initial files. Nil settings default to fresh settings carrying
// the project name.
func (m *Manager) CreateProject(name string, initialFiles []string, settings *model.ProjectSettings) (*Project, error) {
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}
	s := model.NewProjectSettings(name)
	if settings != nil {
		s = *settings
		s.Name = name
	}
	return CreateAt(m.paths.ProjectRoot(name), s, initialFiles, m.log)
}

// LoadProject opens a project from its persisted document path.
func (m *Manager) LoadProject(metadataPath string) (*Project, error) {
	return LoadAt(metadataPath, m.log)
}

// LoadProjectByName opens a named project inside the workspace.
func (m *Manager) LoadProjectByName(name string) (*Project, error) {
	return LoadAt(m.paths.ProjectMetadata(name), m.log)
}
