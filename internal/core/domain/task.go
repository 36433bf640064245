package domain

// Task represents a unit of work inside one build.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name         InternedString
	Command      []string
	Dependencies []InternedString
	// BuildDependencies maps an included build name to qualified task paths in that build.
	BuildDependencies map[string][]string
	// Requires lists module coordinates resolved through dependency substitution.
	Requires    []string
	Environment map[string]string
	WorkingDir  string
}

// Path returns the qualified path of the task within its build.
func (t *Task) Path() string {
	return PathSeparator + t.Name.String()
}

// HasCrossBuildDependencies reports whether the task depends on work in other builds.
func (t *Task) HasCrossBuildDependencies() bool {
	return len(t.BuildDependencies) > 0 || len(t.Requires) > 0
}
