package step

import (
	"errors"
	"fmt"
)

// Errors for registry and planning operations.
var (
	// ErrDuplicateStep is returned when registering a step whose ID is
	// already present.
	ErrDuplicateStep = errors.New("step with this ID already registered")
	// ErrUnknownStep is returned when a requested step ID is not registered.
	ErrUnknownStep = errors.New("no step registered with this ID")
	// ErrUnknownDependency is returned when a step depends on an
	// unregistered ID.
	ErrUnknownDependency = errors.New("step depends on unregistered step")
	// ErrCyclicDependency is returned when the dependency graph contains
	// a cycle.
	ErrCyclicDependency = errors.New("cyclic dependency detected")
)

// ExecutionError wraps a failure raised by a step's Check or Apply.
// It is captured per step and never aborts the overall run; dependents
// of the failed step are skipped instead.
type ExecutionError struct {
	StepID ID
	Phase  string // "check" or "apply"
	Err    error
}

// Error returns the formatted error message.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("step %q: %s failed: %v", e.StepID.String(), e.Phase, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
