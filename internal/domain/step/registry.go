package step

import (
	"fmt"
	"sort"
)

// Registry holds the fixed catalog of available steps.
// Steps are registered once at startup and consumed per run.
type Registry struct {
	steps map[string]Step
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		steps: make(map[string]Step),
	}
}

// Register adds a step to the registry.
// Returns ErrDuplicateStep if a step with the same ID is already present.
func (r *Registry) Register(s Step) error {
	id := s.ID().String()
	if _, exists := r.steps[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStep, id)
	}
	r.steps[id] = s
	return nil
}

// Get retrieves a step by ID.
func (r *Registry) Get(id ID) (Step, bool) {
	s, ok := r.steps[id.String()]
	return s, ok
}

// Len returns the number of registered steps.
func (r *Registry) Len() int {
	return len(r.steps)
}

// All returns every registered step, ordered by ascending ID.
func (r *Registry) All() []Step {
	steps := make([]Step, 0, len(r.steps))
	for _, s := range r.steps {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool {
		return steps[i].ID().String() < steps[j].ID().String()
	})
	return steps
}

// IDs returns every registered step ID in ascending order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.steps))
	for id := range r.steps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
