package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/composite/internal/adapters/lifecycle" //nolint:depguard // Wired in app layer
	"go.trai.ch/composite/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/composite/internal/adapters/renderer"  //nolint:depguard // Wired in app layer
	"go.trai.ch/composite/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/composite/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lifecycle.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			renderer.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	factory, err := graft.Dep[ports.ControllerFactory](ctx)
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
	r, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}
	return New(factory, log, tracer, r), nil
}
