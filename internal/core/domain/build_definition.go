package domain

import (
	"maps"
	"path/filepath"
	"slices"
)

// BuildDefinition is the declared shape of a build before it is loaded.
type BuildDefinition struct {
	// RootDir is the directory containing the build file.
	RootDir string
	// Name overrides the build name derived from RootDir.
	Name string
	// DependencySubstitutions maps a module coordinate ("group:module") to the
	// qualified task path in this build that produces it.
	DependencySubstitutions map[string]string
	// InjectedPluginRequests are plugin ids applied to the build's settings.
	InjectedPluginRequests []string
	// PluginBuild marks builds that contribute plugins to their owner.
	PluginBuild bool
}

// BuildName returns the explicit name, or the base name of the root directory.
func (d BuildDefinition) BuildName() string {
	if d.Name != "" {
		return d.Name
	}
	return filepath.Base(filepath.Clean(d.RootDir))
}

// HasInjectedSettingsPlugins reports whether plugin requests were injected.
func (d BuildDefinition) HasInjectedSettingsPlugins() bool {
	return len(d.InjectedPluginRequests) > 0
}

// Clone returns a deep copy. Controllers receive a clone because they may
// mutate their instance while the build runs.
func (d BuildDefinition) Clone() BuildDefinition {
	return BuildDefinition{
		RootDir:                 d.RootDir,
		Name:                    d.Name,
		DependencySubstitutions: maps.Clone(d.DependencySubstitutions),
		InjectedPluginRequests:  slices.Clone(d.InjectedPluginRequests),
		PluginBuild:             d.PluginBuild,
	}
}
