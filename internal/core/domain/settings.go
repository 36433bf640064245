package domain

// IncludedBuildSpec declares a build included by another build.
type IncludedBuildSpec struct {
	Definition BuildDefinition
	Implicit   bool
}

// Settings is the loaded settings model of one build.
type Settings struct {
	Name           string
	IncludedBuilds []IncludedBuildSpec
	Plugins        []string
}

// ConfiguredBuild is the configured model of one build.
type ConfiguredBuild struct {
	Identity BuildIdentity
	Graph    *Graph
}
