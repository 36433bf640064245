package domain

// TaskStatus represents the status of a task or of a queued cross-build task request.
type TaskStatus string

const (
	// StatusQueued indicates a cross-build request that has not been scheduled yet.
	StatusQueued TaskStatus = "Queued"
	// StatusScheduled indicates the task is part of its build's task graph.
	StatusScheduled TaskStatus = "Scheduled"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
	// StatusSkipped indicates the task did not run because a dependency failed.
	StatusSkipped TaskStatus = "Skipped"
)

// IsComplete reports whether the status is final.
func (s TaskStatus) IsComplete() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusSkipped
}

// IsFailure reports whether the task ended without succeeding.
func (s TaskStatus) IsFailure() bool {
	return s == StatusFailed || s == StatusSkipped
}
