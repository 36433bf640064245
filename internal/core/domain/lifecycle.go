package domain

// BuildLifecycleState is the phase a build participant has reached.
// States only move forward; Stopped is terminal and reachable from anywhere.
type BuildLifecycleState int

const (
	// StateCreated is the initial state.
	StateCreated BuildLifecycleState = iota
	// StateSettingsLoaded means the build file has been read.
	StateSettingsLoaded
	// StateConfigured means the task graph model exists.
	StateConfigured
	// StateTaskGraphPopulated means tasks have been scheduled.
	StateTaskGraphPopulated
	// StateExecuting means scheduled tasks have been (or are being) executed.
	StateExecuting
	// StateFinished means build-finished cleanup has run.
	StateFinished
	// StateStopped means the participant has released its resources.
	StateStopped
)

var stateNames = [...]string{
	StateCreated:            "Created",
	StateSettingsLoaded:     "SettingsLoaded",
	StateConfigured:         "Configured",
	StateTaskGraphPopulated: "TaskGraphPopulated",
	StateExecuting:          "Executing",
	StateFinished:           "Finished",
	StateStopped:            "Stopped",
}

// String returns the state name.
func (s BuildLifecycleState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// IsTerminal reports whether no further lifecycle work is allowed.
func (s BuildLifecycleState) IsTerminal() bool {
	return s == StateFinished || s == StateStopped
}

// Reached reports whether s is at or past other on the forward path.
func (s BuildLifecycleState) Reached(other BuildLifecycleState) bool {
	return s >= other
}
