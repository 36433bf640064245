package ports

import (
	"context"

	"go.trai.ch/composite/internal/core/domain"
)

//go:generate mockgen -source=composite.go -destination=mocks/mock_composite.go -package=mocks

// IncludedBuildTaskGraph accepts cross-build task requests and defers their
// scheduling until every participant has had the chance to queue its own.
type IncludedBuildTaskGraph interface {
	// QueueTaskForExecution records that requesting needs task of target to run.
	// It returns immediately without touching target's task graph.
	QueueTaskForExecution(
		requesting, target domain.BuildID,
		task domain.TaskReference,
	) (IncludedBuildTaskResource, error)

	// QueueTaskPathForExecution is QueueTaskForExecution keyed by a qualified task path.
	QueueTaskPathForExecution(
		requesting, target domain.BuildID,
		path string,
	) (IncludedBuildTaskResource, error)

	// PopulateTaskGraphs resolves every pending request into its target build's task graph.
	PopulateTaskGraphs(ctx context.Context) error

	// RunScheduledTasks populates the task graphs and then executes them.
	// Failures are passed to taskFailures rather than returned.
	RunScheduledTasks(ctx context.Context, taskFailures func(error)) error
}

// IncludedBuildTaskResource is the eventual outcome of a queued task.
type IncludedBuildTaskResource interface {
	// Task returns the reference of the queued task.
	Task() domain.TaskReference
	// Status returns the current status.
	Status() domain.TaskStatus
	// IsComplete reports whether the task reached a final status.
	IsComplete() bool
	// Failed reports whether the task completed without succeeding.
	Failed() bool
	// Err returns the failure, if any.
	Err() error
	// Done is closed once the task reaches a final status.
	Done() <-chan struct{}
}

// BuildLookup resolves module coordinates to the included build task that produces them.
type BuildLookup interface {
	Substitute(module string) (domain.TaskReference, bool)
}

// BuildTree is the view of the composite build a lifecycle controller uses while scheduling.
type BuildTree interface {
	BuildLookup
	TaskGraph() IncludedBuildTaskGraph
}
