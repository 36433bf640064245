package ports

import (
	"context"
	"io"

	"go.trai.ch/composite/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given task inside dir.
	//
	// The env parameter contains additional environment variables in "KEY=VALUE" format.
	// Command output is written to stdout and stderr.
	//
	// It returns an error if the task execution fails.
	Execute(ctx context.Context, task *domain.Task, dir string, env []string, stdout, stderr io.Writer) error
}
