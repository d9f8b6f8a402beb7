package step

// Status represents the outcome state of a step within a run.
type Status string

const (
	// StatusPending indicates the step has not reached a terminal state.
	StatusPending Status = "pending"
	// StatusSucceeded indicates the step's Apply completed without error.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the step's Check or Apply returned an error.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the step was not applied: already satisfied,
	// a dependency failed, the run was halted, or this was a dry run.
	// The result detail says which.
	StatusSkipped Status = "skipped"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// ParseStatus converts a string into a Status.
// Unrecognized values map to StatusPending.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusSucceeded, StatusFailed, StatusSkipped:
		return Status(s)
	}
	return StatusPending
}
