package planner

import "github.com/geozeke/shipshape/internal/domain/step"

// Plan is an ordered sequence of steps, a topological sort of the
// dependency graph over the selected subset.
type Plan struct {
	steps []step.Step
}

// NewPlan creates a Plan from an already ordered step list.
func NewPlan(steps []step.Step) *Plan {
	return &Plan{steps: steps}
}

// Steps returns the steps in execution order.
func (p *Plan) Steps() []step.Step {
	return p.steps
}

// IDs returns the step IDs in execution order.
func (p *Plan) IDs() []string {
	ids := make([]string, len(p.steps))
	for i, s := range p.steps {
		ids[i] = s.ID().String()
	}
	return ids
}

// Len returns the number of steps in the plan.
func (p *Plan) Len() int {
	return len(p.steps)
}

// IsEmpty returns true if there are no steps.
func (p *Plan) IsEmpty() bool {
	return len(p.steps) == 0
}
