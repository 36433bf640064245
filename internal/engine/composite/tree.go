package composite

import (
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/engine/build"
	"go.trai.ch/composite/internal/engine/lease"
)

// Tree is one composite build: its participants and the task graph connecting them.
type Tree struct {
	registry    *build.Registry
	graph       *TaskGraph
	controllers *Controllers
}

// NewTree creates the tree rooted at rootDefinition. Controllers created by
// factory receive the tree to queue cross-build tasks and look up substitutions.
func NewTree(
	rootDefinition domain.BuildDefinition,
	factory ports.ControllerFactory,
	tracker *lease.Tracker,
	logger ports.Logger,
	tracer ports.Tracer,
) (*Tree, error) {
	t := &Tree{}
	registry, err := build.NewRegistry(rootDefinition, build.Services{
		Factory: factory,
		Tree:    t,
		Tracker: tracker,
		Logger:  logger,
		Tracer:  tracer,
	})
	if err != nil {
		return nil, err
	}

	t.registry = registry
	t.graph = &TaskGraph{registry: registry}
	t.controllers = NewControllers(registry, t.graph, logger, tracer)
	t.graph.controllers = t.controllers
	return t, nil
}

// Registry returns the participants of the tree.
func (t *Tree) Registry() *build.Registry {
	return t.registry
}

// Controllers returns the controllers driving the included builds.
func (t *Tree) Controllers() *Controllers {
	return t.controllers
}

// TaskGraph returns the cross-build task graph.
func (t *Tree) TaskGraph() ports.IncludedBuildTaskGraph {
	return t.graph
}

// Substitute implements ports.BuildLookup.
func (t *Tree) Substitute(module string) (domain.TaskReference, bool) {
	return t.registry.Substitute(module)
}
