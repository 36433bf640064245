package ports

import "go.trai.ch/composite/internal/core/domain"

// BuildLoader reads the build file of one build.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type BuildLoader interface {
	// LoadSettings reads the settings part of the build file in rootDir.
	LoadSettings(rootDir string) (*domain.Settings, error)

	// LoadGraph reads the tasks of the build file in rootDir and returns the validated task graph.
	LoadGraph(rootDir string) (*domain.Graph, error)
}
