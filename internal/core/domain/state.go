package domain

// ReconciliationState is the observed state of an image or builder before any action is taken.
type ReconciliationState int

const (
	// StateAbsent means the engine has no such image or container.
	StateAbsent ReconciliationState = iota
	// StatePresent means the image exists, or the container exists and exited with status 0.
	StatePresent
	// StatePresentFailed means the container exists and exited with a nonzero status.
	StatePresentFailed
)

// String returns the string representation of the state.
func (s ReconciliationState) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StatePresent:
		return "present"
	case StatePresentFailed:
		return "present-failed"
	default:
		return "unknown"
	}
}

// ContainerStatus is what the engine reports about a named container.
type ContainerStatus int

const (
	// ContainerMissing means no container has the name.
	ContainerMissing ContainerStatus = iota
	// ContainerCreated means the container exists but was never started.
	ContainerCreated
	// ContainerStarted means the container was started at least once.
	ContainerStarted
)

// BuilderState is the lifecycle state of a builder within one reconciliation call.
type BuilderState string

const (
	// BuilderNotStarted means no container run has been issued yet.
	BuilderNotStarted BuilderState = "not-started"
	// BuilderRunning means the container was started and has not terminated.
	BuilderRunning BuilderState = "running"
	// BuilderSucceeded means the container terminated with status 0.
	BuilderSucceeded BuilderState = "succeeded"
	// BuilderFailed means the container terminated with a nonzero status.
	BuilderFailed BuilderState = "failed"
)

// IsTerminal reports whether the state is Succeeded or Failed.
func (s BuilderState) IsTerminal() bool {
	return s == BuilderSucceeded || s == BuilderFailed
}

// BuilderReport maps builder names to their final state after reconciliation.
type BuilderReport map[string]BuilderState

// Succeeded reports whether the named builder finished successfully.
func (r BuilderReport) Succeeded(name string) bool {
	return r[name] == BuilderSucceeded
}
