package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/composite/internal/core/ports"
)

// NodeID identifies the executor that runs the task commands of every build
// in the tree.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Executor, error) {
			return NewExecutor(), nil
		},
	})
}
