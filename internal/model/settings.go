package model

import "time"

// ProjectSettings holds the mutable project metadata. It is replaced
// wholesale on edit, never patched field by field.
type ProjectSettings struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	Tags        []string  `json:"tags"`
}

// NewProjectSettings returns settings for a freshly created project.
func NewProjectSettings(name string) ProjectSettings {
	return ProjectSettings{
		Name:      name,
		CreatedAt: time.Now(),
		Tags:      []string{},
	}
}
