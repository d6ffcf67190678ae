package project

import "fmt"

// ValidationError rejects bad user input (project name, version
// description) before any mutation happens. The message is meant to be
// shown to the user as-is; re-prompting recovers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StateError marks an operation that requires an active version while
// the project has none yet. Creating a version recovers.
type StateError struct {
	Op string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s: no active version, create a version first", e.Op)
}
