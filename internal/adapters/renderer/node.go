package renderer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/composite/internal/adapters/linear"
	"go.trai.ch/composite/internal/adapters/tui"
	"go.trai.ch/composite/internal/core/ports"
)

// NodeID is the unique identifier for the renderer Graft node.
const NodeID graft.ID = "adapter.renderer"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return NewSelector(linear.NewRenderer(nil, nil), func() ports.Renderer {
				return tui.NewRenderer(tui.NewModel(nil))
			}), nil
		},
	})
}
