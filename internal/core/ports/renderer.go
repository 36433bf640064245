package ports

import (
	"context"
	"time"
)

// Renderer presents task progress. Telemetry feeds it: spans become task
// starts and completions, span writes become task output.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start begins rendering.
	Start(ctx context.Context) error
	// Stop flushes buffered output and stops accepting events.
	Stop() error
	// Wait blocks until the renderer has terminated.
	Wait() error

	// OnPlanEmit announces the tasks requested for this invocation.
	OnPlanEmit(tasks []string)
	// OnTaskStart is called when the task identified by spanID starts.
	// parentID is empty for top-level tasks.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)
	// OnTaskLog carries raw task output, possibly partial lines.
	OnTaskLog(spanID string, data []byte)
	// OnTaskComplete is called when the task finishes; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
