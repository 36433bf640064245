// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/composite/internal/core/domain"
)

// BuildLifecycleController drives one build through settings, configuration,
// task scheduling and execution. Implementations enforce their own ordering;
// callers sequence the calls.
//
//go:generate mockgen -source=lifecycle.go -destination=mocks/mock_lifecycle.go -package=mocks
type BuildLifecycleController interface {
	// LoadSettings loads the settings model of the build. Repeated calls return the same model.
	LoadSettings(ctx context.Context) (*domain.Settings, error)

	// ConfiguredBuild returns the configured build, configuring it on first use.
	ConfiguredBuild(ctx context.Context) (*domain.ConfiguredBuild, error)

	// ScheduleTasks adds the tasks at the given qualified paths to the build's task graph.
	ScheduleTasks(ctx context.Context, paths []string) error

	// ExecuteTasks runs every scheduled task that has not run yet.
	ExecuteTasks(ctx context.Context) error

	// FinishBuild runs build-finished cleanup. Errors are passed to collector.
	FinishBuild(ctx context.Context, failure error, collector func(error))

	// Stop releases the controller's resources.
	Stop() error

	// AddListener registers a listener for task events.
	AddListener(listener BuildListener)
}

// ControllerFactory creates the lifecycle controller of a build.
type ControllerFactory interface {
	// NewController creates a controller for the build. The definition is owned
	// by the controller and may be mutated by it.
	NewController(
		identity domain.BuildIdentity,
		definition domain.BuildDefinition,
		tree BuildTree,
	) (BuildLifecycleController, error)
}

// BuildListener receives task events from a running build.
type BuildListener interface {
	OnTaskStart(build domain.BuildID, path string)
	OnTaskComplete(build domain.BuildID, path string, status domain.TaskStatus, err error)
}
