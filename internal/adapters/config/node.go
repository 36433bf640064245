package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/composite/internal/adapters/logger"
	"go.trai.ch/composite/internal/core/ports"
)

// NodeID is the unique identifier for the build loader Graft node.
const NodeID graft.ID = "adapter.build_loader"

func init() {
	graft.Register(graft.Node[ports.BuildLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
