// Package planner orders registered steps into a dependency-respecting,
// deterministic execution plan.
package planner

import (
	"fmt"
	"sort"

	"github.com/geozeke/shipshape/internal/domain/step"
)

// Planner converts a step registry into a valid execution order.
type Planner struct{}

// New creates a new Planner.
func New() *Planner {
	return &Planner{}
}

// Plan returns an ordered Plan over the selected step IDs such that every
// step's dependencies appear earlier. An empty selection means all
// registered steps. The selection is closed transitively over
// dependencies: selecting a step pulls in its ancestors.
//
// Ordering is deterministic: among steps whose dependencies are all met,
// the one with the lowest ID runs first.
//
// Returns an error wrapping step.ErrUnknownStep if a selected ID is not
// registered, step.ErrUnknownDependency if a step depends on an
// unregistered ID, or step.ErrCyclicDependency (naming the steps stuck in
// the cycle) if the graph is not acyclic.
func (p *Planner) Plan(reg *step.Registry, selected []string) (*Plan, error) {
	chosen, err := p.selectSteps(reg, selected)
	if err != nil {
		return nil, err
	}

	// Kahn's algorithm with a sorted ready list for reproducible runs.
	inDegree := make(map[string]int, len(chosen))
	dependedBy := make(map[string][]string, len(chosen))
	for id, s := range chosen {
		inDegree[id] += 0
		for _, dep := range s.DependsOn() {
			depID := dep.String()
			if _, ok := chosen[depID]; !ok {
				return nil, fmt.Errorf("%w: step %q depends on %q",
					step.ErrUnknownDependency, id, depID)
			}
			inDegree[id]++
			dependedBy[depID] = append(dependedBy[depID], id)
		}
	}

	ready := make([]string, 0, len(chosen))
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	ordered := make([]step.Step, 0, len(chosen))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		ordered = append(ordered, chosen[id])

		unblocked := make([]string, 0)
		for _, dependent := range dependedBy[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				unblocked = append(unblocked, dependent)
			}
		}
		if len(unblocked) > 0 {
			ready = append(ready, unblocked...)
			sort.Strings(ready)
		}
	}

	if len(ordered) != len(chosen) {
		return nil, fmt.Errorf("%w: %v", step.ErrCyclicDependency, cycleMembers(inDegree))
	}

	return NewPlan(ordered), nil
}

// selectSteps resolves the selection to a set of steps, closing over
// dependencies.
func (p *Planner) selectSteps(reg *step.Registry, selected []string) (map[string]step.Step, error) {
	chosen := make(map[string]step.Step)

	if len(selected) == 0 {
		for _, s := range reg.All() {
			chosen[s.ID().String()] = s
		}
		return chosen, nil
	}

	// Walk the dependency closure of the selection. Unknown dependencies
	// are reported during the sort so that the error names the dependent.
	queue := make([]string, 0, len(selected))
	for _, id := range selected {
		stepID, err := step.NewID(id)
		if err != nil {
			return nil, fmt.Errorf("selection %q: %w", id, err)
		}
		s, ok := reg.Get(stepID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", step.ErrUnknownStep, id)
		}
		if _, seen := chosen[id]; !seen {
			chosen[id] = s
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dep := range chosen[id].DependsOn() {
			depID := dep.String()
			if _, seen := chosen[depID]; seen {
				continue
			}
			s, ok := reg.Get(dep)
			if !ok {
				return nil, fmt.Errorf("%w: step %q depends on %q",
					step.ErrUnknownDependency, id, depID)
			}
			chosen[depID] = s
			queue = append(queue, depID)
		}
	}
	return chosen, nil
}

// cycleMembers returns the sorted IDs of steps still blocked when the
// sort stalls, which are exactly the steps participating in or downstream
// of a cycle.
func cycleMembers(inDegree map[string]int) []string {
	members := make([]string, 0)
	for id, degree := range inDegree {
		if degree > 0 {
			members = append(members, id)
		}
	}
	sort.Strings(members)
	return members
}
