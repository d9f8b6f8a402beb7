// Package step defines the provisioning step model: steps, their
// identifiers and statuses, execution results, and the step registry.
package step

import "context"

// Step is an idempotent unit of provisioning work.
// Each step can report whether the system already satisfies its goal
// and can bring the system into the satisfied state.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() ID

	// DependsOn returns the IDs of steps that must succeed before this one.
	DependsOn() []ID

	// Check reports whether the system already satisfies this step's goal.
	// It must not mutate system state.
	Check(ctx context.Context) (bool, error)

	// Apply brings the system into the satisfied state.
	// Apply must be safe to call even if a previous run was interrupted
	// partway through - idempotence is a contract, not enforced here.
	Apply(ctx context.Context) error

	// Summary returns a one-line human-readable description.
	Summary() string
}
