package lifecycle

import (
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
)

// Factory creates default controllers. It implements ports.ControllerFactory.
type Factory struct {
	loader   ports.BuildLoader
	executor ports.Executor
	logger   ports.Logger
	tracer   ports.Tracer
}

// NewFactory creates a Factory whose controllers share the given adapters.
func NewFactory(
	loader ports.BuildLoader,
	executor ports.Executor,
	logger ports.Logger,
	tracer ports.Tracer,
) *Factory {
	return &Factory{
		loader:   loader,
		executor: executor,
		logger:   logger,
		tracer:   tracer,
	}
}

// NewController creates the controller of the build rooted at definition.RootDir.
func (f *Factory) NewController(
	identity domain.BuildIdentity,
	definition domain.BuildDefinition,
	tree ports.BuildTree,
) (ports.BuildLifecycleController, error) {
	if definition.RootDir == "" {
		return nil, domain.Annotate(domain.ErrInvalidBuildIdentity, "root_dir", "")
	}
	return &Controller{
		identity:   identity,
		definition: definition,
		tree:       tree,
		loader:     f.loader,
		executor:   f.executor,
		logger:     f.logger,
		tracer:     f.tracer,
		scheduled:  make(map[domain.InternedString]bool),
		waiting:    make(map[domain.InternedString][]ports.IncludedBuildTaskResource),
		outcomes:   make(map[domain.InternedString]domain.TaskStatus),
	}, nil
}
