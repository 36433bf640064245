package config

// Buildfile represents the structure of the build.yaml configuration file.
type Buildfile struct {
	Version       string              `yaml:"version"`
	Name          string              `yaml:"name"`
	IncludeBuilds []IncludeDTO        `yaml:"includeBuilds"`
	PluginBuilds  []string            `yaml:"pluginBuilds"`
	Plugins       []string            `yaml:"plugins"`
	Tasks         map[string]*TaskDTO `yaml:"tasks"`
}

// IncludeDTO declares another build included by this one.
type IncludeDTO struct {
	Path          string            `yaml:"path"`
	Name          string            `yaml:"name"`
	Substitutions map[string]string `yaml:"substitutions"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Cmd            []string            `yaml:"cmd"`
	DependsOn      []string            `yaml:"dependsOn"`
	BuildDependsOn map[string][]string `yaml:"buildDependsOn"`
	Requires       []string            `yaml:"requires"`
	Environment    map[string]string   `yaml:"environment"`
	WorkingDir     string              `yaml:"workingDir"`
}
