package step

import "time"

// Standard result details recorded by the runner.
const (
	DetailSatisfied        = "already satisfied"
	DetailDependencyFailed = "dependency failed"
	DetailRunHalted        = "run halted by earlier failure"
	DetailDryRun           = "dry run: apply not invoked"
)

// Result captures the outcome of one step in one run.
// Results are immutable once created and are appended to the run log.
type Result struct {
	stepID    ID
	status    Status
	detail    string
	err       error
	timestamp time.Time
	duration  time.Duration
}

// NewResult creates a new Result.
func NewResult(stepID ID, status Status, detail string, at time.Time) Result {
	return Result{
		stepID:    stepID,
		status:    status,
		detail:    detail,
		timestamp: at,
	}
}

// StepID returns the ID of the step the result belongs to.
func (r Result) StepID() ID {
	return r.stepID
}

// Status returns the terminal status of the step.
func (r Result) Status() Status {
	return r.status
}

// Detail returns free-text context for the status: an error message for
// failures, or the skip reason.
func (r Result) Detail() string {
	return r.detail
}

// Err returns the error that caused a failure, if any.
func (r Result) Err() error {
	return r.err
}

// Timestamp returns when the result was recorded.
func (r Result) Timestamp() time.Time {
	return r.timestamp
}

// Duration returns how long Check and Apply took for this step.
func (r Result) Duration() time.Duration {
	return r.duration
}

// Failed returns true if the step failed.
func (r Result) Failed() bool {
	return r.status == StatusFailed
}

// WithErr returns a copy of the Result with the causing error attached.
func (r Result) WithErr(err error) Result {
	r.err = err
	return r
}

// WithDuration returns a copy of the Result with duration set.
func (r Result) WithDuration(d time.Duration) Result {
	r.duration = d
	return r
}
