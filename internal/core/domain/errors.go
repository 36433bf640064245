package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidTaskPath is returned when a task path is not qualified from the build root.
	ErrInvalidTaskPath = zerr.New("task path is not a qualified task path (e.g. ':task' or ':project:task')")

	// ErrInvalidBuildIdentity is returned when a build identity is malformed or unknown.
	ErrInvalidBuildIdentity = zerr.New("invalid build identity")

	// ErrDuplicateBuild is returned when two builds in one tree resolve to the same identity path.
	ErrDuplicateBuild = zerr.New("duplicate build identity path")

	// ErrCannotIncludeFromImplicit is returned when an implicit build tries to include another build.
	ErrCannotIncludeFromImplicit = zerr.New("included builds cannot be added to an implicit included build")

	// ErrLifecycleViolation is returned when a build operation is attempted out of order.
	ErrLifecycleViolation = zerr.New("build lifecycle violation")

	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrMissingDependency is returned when a task references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in a dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrUnresolvedSubstitution is returned when a required module has no substitution in any included build.
	ErrUnresolvedSubstitution = zerr.New("no included build provides module")

	// ErrTaskExecutionFailed is returned when a task execution fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrDependencyFailed is returned when a task is skipped because something it depends on failed.
	ErrDependencyFailed = zerr.New("dependency failed")

	// ErrTaskNotExecuted is returned for a queued task its build finished without running.
	ErrTaskNotExecuted = zerr.New("task was not executed")

	// ErrBuildExecutionFailed is returned when the composite build reports at least one failure.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrBuildFinishFailed is returned when build-finished cleanup fails.
	ErrBuildFinishFailed = zerr.New("build finish failed")

	// ErrLeaseAcquireFailed is returned when a worker lease could not be acquired.
	ErrLeaseAcquireFailed = zerr.New("failed to acquire worker lease")

	// ErrNoTargetsSpecified is returned when no targets are specified for the run command.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrConfigReadFailed is returned when the build file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read build file")

	// ErrConfigParseFailed is returned when the build file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse build file")

	// ErrConfigNotFound is returned when no build file exists in a build root.
	ErrConfigNotFound = zerr.New("could not find build file")

	// ErrOptionsLoadFailed is returned when tool options cannot be loaded.
	ErrOptionsLoadFailed = zerr.New("failed to load options")

	// ErrInterrupted is returned when the user quits the interactive view while tasks run.
	ErrInterrupted = zerr.New("build interrupted")
)

// Annotate attaches a key-value pair to err while keeping it matchable with
// errors.Is. zerr.With on a bare sentinel returns a detached copy.
func Annotate(err error, key string, value any) error {
	return zerr.With(zerr.Wrap(err, ""), key, value)
}

// Unjoin returns the errors of an errors.Join result, or err itself.
func Unjoin(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
