package lifecycle

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/composite/internal/adapters/config"
	"go.trai.ch/composite/internal/adapters/logger"
	"go.trai.ch/composite/internal/adapters/shell"
	"go.trai.ch/composite/internal/adapters/telemetry"
	"go.trai.ch/composite/internal/core/ports"
)

// NodeID is the unique identifier for the controller factory Graft node.
const NodeID graft.ID = "adapter.controller_factory"

func init() {
	graft.Register(graft.Node[ports.ControllerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, shell.NodeID, logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.ControllerFactory, error) {
			loader, err := graft.Dep[ports.BuildLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(loader, executor, log, tracer), nil
		},
	})
}
