// Package config provides the build file loader for composite builds.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.BuildLoader using a build.yaml file per build root.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// NewLoaderWithFS creates a Loader over the given filesystem.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

var validBuildNameRegex = regexp.MustCompile("^[a-zA-Z0-9_.-]+$")

// LoadSettings reads the settings part of the build file in rootDir: its name,
// the builds it includes and the plugins it requests. A buildSrc directory
// holding a build file is added as an implicit included build.
func (l *Loader) LoadSettings(rootDir string) (*domain.Settings, error) {
	rootDir = filepath.Clean(rootDir)

	var buildfile Buildfile
	if err := l.readBuildfile(rootDir, &buildfile); err != nil {
		return nil, err
	}

	settings := &domain.Settings{
		Name:    buildfile.Name,
		Plugins: slices.Clone(buildfile.Plugins),
	}

	for _, include := range buildfile.IncludeBuilds {
		spec, err := l.includedBuild(rootDir, include.Path, include.Name)
		if err != nil {
			return nil, err
		}
		spec.Definition.DependencySubstitutions = include.Substitutions
		settings.IncludedBuilds = append(settings.IncludedBuilds, spec)
	}

	for _, path := range buildfile.PluginBuilds {
		spec, err := l.includedBuild(rootDir, path, "")
		if err != nil {
			return nil, err
		}
		spec.Definition.PluginBuild = true
		settings.IncludedBuilds = append(settings.IncludedBuilds, spec)
	}

	buildSrc := filepath.Join(rootDir, domain.BuildSrcDirName)
	if l.FS.Exists(filepath.Join(buildSrc, domain.BuildFileName)) {
		settings.IncludedBuilds = append(settings.IncludedBuilds, domain.IncludedBuildSpec{
			Definition: domain.BuildDefinition{RootDir: buildSrc, Name: domain.BuildSrcDirName},
			Implicit:   true,
		})
	}

	return settings, nil
}

func (l *Loader) includedBuild(rootDir, path, name string) (domain.IncludedBuildSpec, error) {
	if path == "" {
		return domain.IncludedBuildSpec{}, domain.Annotate(domain.ErrConfigParseFailed, "include", "missing path")
	}

	dir := resolveDir(rootDir, path)
	if isDir, err := l.FS.IsDir(dir); err != nil || !isDir {
		err := domain.Annotate(domain.ErrConfigNotFound, "include", path)
		return domain.IncludedBuildSpec{}, zerr.With(err, "dir", dir)
	}
	if !l.FS.Exists(filepath.Join(dir, domain.BuildFileName)) {
		l.Logger.Warn(fmt.Sprintf("%s missing in included build %s", domain.BuildFileName, path))
	}

	definition := domain.BuildDefinition{RootDir: dir, Name: name}
	if !validBuildNameRegex.MatchString(definition.BuildName()) {
		err := domain.Annotate(domain.ErrInvalidBuildIdentity, "name", definition.BuildName())
		return domain.IncludedBuildSpec{}, zerr.With(err, "include", path)
	}
	return domain.IncludedBuildSpec{Definition: definition}, nil
}

// LoadGraph reads the tasks of the build file in rootDir into an unvalidated graph.
func (l *Loader) LoadGraph(rootDir string) (*domain.Graph, error) {
	rootDir = filepath.Clean(rootDir)

	var buildfile Buildfile
	if err := l.readBuildfile(rootDir, &buildfile); err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	g.SetRoot(rootDir)

	// Sorted so errors are reported for the same task on every run.
	names := make([]string, 0, len(buildfile.Tasks))
	for name := range buildfile.Tasks {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		dto := buildfile.Tasks[name]
		if dto == nil {
			dto = &TaskDTO{}
		}
		if err := validateTaskName(name); err != nil {
			return nil, err
		}

		for _, dep := range dto.DependsOn {
			if _, ok := buildfile.Tasks[dep]; !ok {
				err := domain.Annotate(domain.ErrMissingDependency, "missing_dependency", dep)
				return nil, zerr.With(err, "task", name)
			}
		}

		for buildName, paths := range dto.BuildDependsOn {
			for _, path := range paths {
				if err := domain.ValidateTaskPath(path); err != nil {
					return nil, zerr.With(zerr.With(err, "task", name), "build", buildName)
				}
			}
		}

		if err := g.AddTask(buildTask(name, dto, rootDir)); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (l *Loader) readBuildfile(rootDir string, target *Buildfile) error {
	path := filepath.Join(rootDir, domain.BuildFileName)
	if !l.FS.Exists(path) {
		return domain.Annotate(domain.ErrConfigNotFound, "dir", rootDir)
	}
	return readAndUnmarshalYAML(l.FS, path, target)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](fsys FileSystem, configPath string, target *T) error {
	configFile, err := fsys.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "file", configPath)
	}

	return nil
}

// validateTaskName rejects names that cannot be addressed as ":name".
func validateTaskName(name string) error {
	if name == "" {
		return domain.Annotate(domain.ErrInvalidTaskName, "task_name", name)
	}
	if strings.Contains(name, domain.PathSeparator) {
		err := domain.Annotate(domain.ErrInvalidTaskName, "invalid_character", domain.PathSeparator)
		return zerr.With(err, "task_name", name)
	}
	return nil
}

func buildTask(name string, dto *TaskDTO, rootDir string) *domain.Task {
	return &domain.Task{
		Name:              domain.NewInternedString(name),
		Command:           dto.Cmd,
		Dependencies:      domain.NewInternedStrings(dto.DependsOn),
		BuildDependencies: dto.BuildDependsOn,
		Requires:          dto.Requires,
		Environment:       dto.Environment,
		WorkingDir:        resolveDir(rootDir, dto.WorkingDir),
	}
}

// resolveDir resolves configured against baseDir.
// An empty value is baseDir itself; an absolute value is used as is.
func resolveDir(baseDir, configured string) string {
	if configured == "" {
		return baseDir
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(baseDir, configured))
}
