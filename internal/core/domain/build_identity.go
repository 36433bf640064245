package domain

import (
	"strings"
)

// BuildID addresses one build in a build tree. It is the string form of the
// build's identity path, so the root build is ":".
type BuildID string

// RootBuildID is the identifier of the root build of every tree.
const RootBuildID BuildID = PathSeparator

// BuildIdentity is the immutable identity of one build participant.
type BuildIdentity struct {
	Name         string
	IdentityPath Path
	RootDir      string
	Implicit     bool
	PluginBuild  bool
}

// ID returns the key used to address the build across the tree.
func (b BuildIdentity) ID() BuildID {
	return BuildID(b.IdentityPath.String())
}

// IsRoot reports whether this is the root build of the tree.
func (b BuildIdentity) IsRoot() bool {
	return b.IdentityPath.IsRoot()
}

// Importable reports whether the build was declared by the user rather than added by the system.
func (b BuildIdentity) Importable() bool {
	return !b.Implicit
}

// PrefixForChildBuilds is the path under which builds included by this build are addressed.
func (b BuildIdentity) PrefixForChildBuilds() Path {
	return b.IdentityPath
}

// IdentityPathForProject returns the tree-unique path of a project inside this build.
func (b BuildIdentity) IdentityPathForProject(projectPath Path) Path {
	return b.IdentityPath.Append(projectPath)
}

// Validate checks that the identity can be registered in a tree.
func (b BuildIdentity) Validate() error {
	if !b.IdentityPath.IsAbsolute() {
		return Annotate(ErrInvalidBuildIdentity, "identity_path", b.IdentityPath.String())
	}
	if b.IsRoot() {
		return nil
	}
	if b.Name == "" || strings.Contains(b.Name, PathSeparator) {
		return Annotate(ErrInvalidBuildIdentity, "name", b.Name)
	}
	return nil
}

// String returns the identity path.
func (b BuildIdentity) String() string {
	return b.IdentityPath.String()
}
