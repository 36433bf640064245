package domain

import (
	"strings"
)

// TaskReference is an opaque handle on a task owned by a specific build.
type TaskReference struct {
	build BuildID
	path  string
}

// NewTaskReference creates a reference to the task at path inside build.
// The path must be qualified from the build root, e.g. ":compile".
func NewTaskReference(build BuildID, path string) (TaskReference, error) {
	if err := ValidateTaskPath(path); err != nil {
		return TaskReference{}, err
	}
	return TaskReference{build: build, path: path}, nil
}

// Build returns the build that owns the task.
func (r TaskReference) Build() BuildID {
	return r.build
}

// Path returns the qualified task path.
func (r TaskReference) Path() string {
	return r.path
}

// String renders the reference as "<build> <path>".
func (r TaskReference) String() string {
	return string(r.build) + " " + r.path
}

// ValidateTaskPath fails unless path starts with the root marker.
func ValidateTaskPath(path string) error {
	if !strings.HasPrefix(path, PathSeparator) || len(path) == len(PathSeparator) {
		return Annotate(ErrInvalidTaskPath, "path", path)
	}
	return nil
}

// QueuedTaskRequest records that requesting wants a task of target to run.
// It is created at queue time and consumed when target's task graph is populated.
type QueuedTaskRequest struct {
	Requesting BuildID
	Target     BuildID
	Task       TaskReference
}
