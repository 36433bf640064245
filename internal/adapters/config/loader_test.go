package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/adapters/config"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const appBuildfile = `
version: "1"
name: app
includeBuilds:
  - path: ../lib
    substitutions:
      "acme:lib": ":jar"
  - path: ../tools
    name: devtools
pluginBuilds:
  - ../plugins
plugins: [acme.lint]
tasks:
  build:
    cmd: ["sh", "-c", "echo build"]
    dependsOn: [compile]
    buildDependsOn:
      lib: [":jar"]
    requires: ["acme:lib"]
  compile:
    cmd: ["sh", "-c", "echo compile"]
    workingDir: src
    environment:
      GOFLAGS: "-mod=mod"
`

func newMapLoader(t *testing.T, files fstest.MapFS) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoaderWithFS(log, config.NewMapFSAdapter("/ws", files))
}

func workspace() fstest.MapFS {
	return fstest.MapFS{
		"app/build.yaml":          {Data: []byte(appBuildfile)},
		"app/buildSrc/build.yaml": {Data: []byte("tasks: {}\n")},
		"lib/build.yaml":          {Data: []byte("tasks:\n  jar:\n    cmd: [\"true\"]\n")},
		"tools/build.yaml":        {Data: []byte("tasks: {}\n")},
		"plugins/build.yaml":      {Data: []byte("tasks: {}\n")},
	}
}

func TestLoader_LoadSettings(t *testing.T) {
	loader := newMapLoader(t, workspace())

	settings, err := loader.LoadSettings("/ws/app")
	require.NoError(t, err)

	assert.Equal(t, "app", settings.Name)
	assert.Equal(t, []string{"acme.lint"}, settings.Plugins)
	require.Len(t, settings.IncludedBuilds, 4)

	lib := settings.IncludedBuilds[0]
	assert.Equal(t, "/ws/lib", lib.Definition.RootDir)
	assert.Equal(t, "lib", lib.Definition.BuildName())
	assert.Equal(t, map[string]string{"acme:lib": ":jar"}, lib.Definition.DependencySubstitutions)
	assert.False(t, lib.Implicit)

	tools := settings.IncludedBuilds[1]
	assert.Equal(t, "devtools", tools.Definition.BuildName())

	plugins := settings.IncludedBuilds[2]
	assert.True(t, plugins.Definition.PluginBuild)
	assert.Equal(t, "plugins", plugins.Definition.BuildName())

	buildSrc := settings.IncludedBuilds[3]
	assert.True(t, buildSrc.Implicit)
	assert.Equal(t, "/ws/app/buildSrc", buildSrc.Definition.RootDir)
	assert.Equal(t, domain.BuildSrcDirName, buildSrc.Definition.BuildName())
}

func TestLoader_LoadSettings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr error
	}{
		{
			name:    "missing build file",
			files:   fstest.MapFS{"app/other.yaml": {Data: []byte("")}},
			wantErr: domain.ErrConfigNotFound,
		},
		{
			name: "include does not exist",
			files: fstest.MapFS{
				"app/build.yaml": {Data: []byte("includeBuilds:\n  - path: ../missing\n")},
			},
			wantErr: domain.ErrConfigNotFound,
		},
		{
			name: "include without path",
			files: fstest.MapFS{
				"app/build.yaml": {Data: []byte("includeBuilds:\n  - name: lib\n")},
			},
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name: "include name with separator",
			files: fstest.MapFS{
				"app/build.yaml": {Data: []byte("includeBuilds:\n  - path: ../lib\n    name: a:b\n")},
				"lib/build.yaml": {Data: []byte("tasks: {}\n")},
			},
			wantErr: domain.ErrInvalidBuildIdentity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newMapLoader(t, tt.files).LoadSettings("/ws/app")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_LoadSettings_ParseError(t *testing.T) {
	loader := newMapLoader(t, fstest.MapFS{
		"app/build.yaml": {Data: []byte("tasks: [unclosed\n")},
	})

	_, err := loader.LoadSettings("/ws/app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestLoader_LoadSettings_WarnsOnIncludeWithoutBuildFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("build.yaml missing in included build ../lib").Times(1)

	loader := config.NewLoaderWithFS(log, config.NewMapFSAdapter("/ws", fstest.MapFS{
		"app/build.yaml": {Data: []byte("includeBuilds:\n  - path: ../lib\n")},
		"lib/README.md":  {Data: []byte("")},
	}))

	settings, err := loader.LoadSettings("/ws/app")
	require.NoError(t, err)
	require.Len(t, settings.IncludedBuilds, 1)
}

func TestLoader_LoadGraph(t *testing.T) {
	loader := newMapLoader(t, workspace())

	g, err := loader.LoadGraph("/ws/app")
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, "/ws/app", g.Root())
	assert.Equal(t, 2, g.TaskCount())

	var order []string
	for task := range g.Walk() {
		order = append(order, task.Name.String())
	}
	assert.Equal(t, []string{"compile", "build"}, order)

	build, ok := g.TaskByPath(":build")
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"lib": {":jar"}}, build.BuildDependencies)
	assert.Equal(t, []string{"acme:lib"}, build.Requires)
	assert.True(t, build.HasCrossBuildDependencies())
	assert.Equal(t, "/ws/app", build.WorkingDir)

	compile, ok := g.TaskByPath(":compile")
	require.True(t, ok)
	assert.Equal(t, "/ws/app/src", compile.WorkingDir)
	assert.Equal(t, "-mod=mod", compile.Environment["GOFLAGS"])
	assert.False(t, compile.HasCrossBuildDependencies())
}

func TestLoader_LoadGraph_Errors(t *testing.T) {
	tests := []struct {
		name      string
		buildfile string
		wantErr   error
	}{
		{
			name:      "missing dependency",
			buildfile: "tasks:\n  build:\n    dependsOn: [nope]\n",
			wantErr:   domain.ErrMissingDependency,
		},
		{
			name:      "task name with separator",
			buildfile: "tasks:\n  \"a:b\":\n    cmd: [\"true\"]\n",
			wantErr:   domain.ErrInvalidTaskName,
		},
		{
			name:      "unqualified cross-build path",
			buildfile: "tasks:\n  build:\n    buildDependsOn:\n      lib: [jar]\n",
			wantErr:   domain.ErrInvalidTaskPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newMapLoader(t, fstest.MapFS{"app/build.yaml": {Data: []byte(tt.buildfile)}})
			_, err := loader.LoadGraph("/ws/app")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_LoadGraph_EmptyTask(t *testing.T) {
	loader := newMapLoader(t, fstest.MapFS{"app/build.yaml": {Data: []byte("tasks:\n  noop:\n")}})

	g, err := loader.LoadGraph("/ws/app")
	require.NoError(t, err)

	noop, ok := g.TaskByPath(":noop")
	require.True(t, ok)
	assert.Empty(t, noop.Command)
}

func TestLoader_OSFS(t *testing.T) {
	root := t.TempDir()
	lib := filepath.Join(root, "lib")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app", domain.BuildSrcDirName), domain.DirPerm))
	require.NoError(t, os.MkdirAll(lib, domain.DirPerm))

	write := func(path, content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	write(filepath.Join(root, "app", domain.BuildFileName), "includeBuilds:\n  - path: ../lib\ntasks:\n  build:\n    cmd: [\"true\"]\n")
	write(filepath.Join(lib, domain.BuildFileName), "tasks: {}\n")

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	settings, err := loader.LoadSettings(filepath.Join(root, "app"))
	require.NoError(t, err)
	require.Len(t, settings.IncludedBuilds, 1, "buildSrc without a build file is not a build")
	assert.Equal(t, lib, settings.IncludedBuilds[0].Definition.RootDir)

	g, err := loader.LoadGraph(filepath.Join(root, "app"))
	require.NoError(t, err)
	assert.Equal(t, 1, g.TaskCount())
}
