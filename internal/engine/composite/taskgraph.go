// Package composite coordinates task execution across the builds of a
// composite build. Cross-build task requests are queued first, resolved into
// the target builds' task graphs once nothing new is being queued, and only
// then executed.
package composite

import (
	"context"
	"sync"

	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/engine/build"
)

// TaskGraph implements ports.IncludedBuildTaskGraph. It also listens to the
// task events of executing builds to settle the queued resources.
type TaskGraph struct {
	registry    *build.Registry
	controllers *Controllers

	runMu sync.Mutex
}

// QueueTaskForExecution queues task, which must belong to target.
func (g *TaskGraph) QueueTaskForExecution(
	requesting, target domain.BuildID,
	task domain.TaskReference,
) (ports.IncludedBuildTaskResource, error) {
	if task.Build() != target {
		return nil, domain.Annotate(domain.ErrInvalidBuildIdentity, "task", task.String())
	}
	if err := domain.ValidateTaskPath(task.Path()); err != nil {
		return nil, err
	}
	return g.queue(requesting, target, task)
}

// QueueTaskPathForExecution queues the task of target at the qualified path.
func (g *TaskGraph) QueueTaskPathForExecution(
	requesting, target domain.BuildID,
	path string,
) (ports.IncludedBuildTaskResource, error) {
	ref, err := domain.NewTaskReference(target, path)
	if err != nil {
		return nil, err
	}
	return g.queue(requesting, target, ref)
}

func (g *TaskGraph) queue(
	requesting, target domain.BuildID,
	ref domain.TaskReference,
) (ports.IncludedBuildTaskResource, error) {
	if _, ok := g.registry.Get(requesting); !ok {
		return nil, domain.Annotate(domain.ErrInvalidBuildIdentity, "requesting", string(requesting))
	}
	if requesting == target {
		return nil, domain.Annotate(domain.ErrInvalidBuildIdentity, "target", string(target))
	}

	bc, err := g.controllers.buildController(target)
	if err != nil {
		return nil, err
	}
	res, _ := bc.queue(domain.QueuedTaskRequest{
		Requesting: requesting,
		Target:     target,
		Task:       ref,
	})
	g.controllers.dependOn(requesting, target)
	return res, nil
}

// PopulateTaskGraphs resolves the queued requests without executing anything.
func (g *TaskGraph) PopulateTaskGraphs(ctx context.Context) error {
	g.runMu.Lock()
	defer g.runMu.Unlock()
	return g.controllers.PopulateTaskGraphs(ctx)
}

// RunScheduledTasks populates every task graph with pending requests and then
// executes the builds. Population and task failures are passed to
// taskFailures; the returned error is reserved for failures that prevent
// execution as a whole.
func (g *TaskGraph) RunScheduledTasks(ctx context.Context, taskFailures func(error)) error {
	g.runMu.Lock()
	defer g.runMu.Unlock()

	if err := g.controllers.PopulateTaskGraphs(ctx); err != nil {
		for _, e := range domain.Unjoin(err) {
			taskFailures(e)
		}
	}
	return g.controllers.ExecuteScheduled(ctx, taskFailures)
}

// OnTaskStart marks a queued task as running.
func (g *TaskGraph) OnTaskStart(build domain.BuildID, path string) {
	if res, ok := g.resource(build, path); ok {
		res.update(domain.StatusRunning, nil)
	}
}

// OnTaskComplete settles a queued task.
func (g *TaskGraph) OnTaskComplete(build domain.BuildID, path string, status domain.TaskStatus, err error) {
	if res, ok := g.resource(build, path); ok {
		res.update(status, err)
	}
}

func (g *TaskGraph) resource(build domain.BuildID, path string) (*taskResource, bool) {
	bc, ok := g.controllers.lookup(build)
	if !ok {
		return nil, false
	}
	return bc.resource(path)
}
