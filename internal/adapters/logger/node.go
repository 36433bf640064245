package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/composite/internal/adapters/options"
	"go.trai.ch/composite/internal/core/ports"
)

// NodeID identifies the logger shared by the app, the build file loader and
// every build controller.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return newFromEnv(options.LogJSONFromEnv()), nil
		},
	})
}

// newFromEnv creates the logger of the process. Errors raised before the
// options of the root build are loaded already use the requested format.
func newFromEnv(jsonLogs bool) *Logger {
	l := New()
	if jsonLogs {
		l.SetJSON(true)
	}
	return l
}
