package domain

import "path/filepath"

const (
	// BuildFileName is the name of the per-build configuration file.
	BuildFileName = "build.yaml"

	// BuildSrcDirName is the directory holding an implicit included build.
	BuildSrcDirName = "buildSrc"

	// ToolDirName is the name of the tool's metadata directory inside a root build.
	ToolDirName = ".composite"

	// OptionsFileName is the base name of the optional tool options file.
	OptionsFileName = "config"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750
)

// DefaultToolPath returns the metadata directory under root.
func DefaultToolPath(root string) string {
	return filepath.Join(root, ToolDirName)
}
