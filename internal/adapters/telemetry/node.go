package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/composite/internal/adapters/renderer"
	"go.trai.ch/composite/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracer Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{renderer.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			r, err := graft.Dep[ports.Renderer](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer("composite", r), nil
		},
	})
}
