package project

import (
	"fmt"
	"strings"
)

const (
	maxNameLength        = 50
	maxDescriptionLength = 200

	// Characters that cannot appear in a project name because the name
	// becomes a directory on every supported filesystem.
	reservedNameChars = `<>:"/\|?*`
)

// ValidateProjectName checks a project name before anything is created.
func ValidateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Message: "project name must not be empty"}
	}
	if len(name) > maxNameLength {
		return &ValidationError{Message: fmt.Sprintf("project name must be at most %d characters", maxNameLength)}
	}
	if i := strings.IndexAny(name, reservedNameChars); i >= 0 {
		return &ValidationError{Message: fmt.Sprintf("project name must not contain %q", name[i])}
	}
	return nil
}

// ValidateVersionDescription checks a version description before a
// version is cut.
func ValidateVersionDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Message: "version description must not be empty"}
	}
	if len(description) > maxDescriptionLength {
		return &ValidationError{Message: fmt.Sprintf("version description must be at most %d characters", maxDescriptionLength)}
	}
	return nil
}
