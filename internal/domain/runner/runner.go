// Package runner executes a plan sequentially, skipping satisfied steps,
// cascading skips from failed dependencies, and recording every outcome
// in an append-only run log.
package runner

import (
	"context"
	"time"

	"github.com/geozeke/shipshape/internal/domain/planner"
	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
)

// Options control a single run.
type Options struct {
	// DryRun reports what would be applied without invoking Apply.
	DryRun bool
	// StopOnFailure stops scheduling any further steps after the first
	// failure. When false, the failed step's dependents are skipped,
	// transitively; unrelated steps still run.
	StopOnFailure bool
}

// ResultSink receives results the moment they are produced. Records must
// be durable before Append returns so an interrupted run loses nothing.
type ResultSink interface {
	Append(r step.Result) error
}

// NopSink discards results.
type NopSink struct{}

// Append implements ResultSink.
func (NopSink) Append(step.Result) error { return nil }

// Runner executes plans one step at a time on a single goroutine.
// Steps share host-level resources like the dpkg lock, so there is
// nothing to gain from parallelism.
type Runner struct {
	sink   ResultSink
	logger ports.Logger
	now    func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithSink sets the result sink (default: discard).
func WithSink(sink ResultSink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger ports.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock overrides the time source for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		sink: NopSink{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every step in plan order and returns one terminal Result
// per step reached. Step failures are captured per step and never abort
// the run; a cancelled context stops the loop between steps, returning
// the results produced so far together with the context's error.
func (r *Runner) Run(ctx context.Context, plan *planner.Plan, opts Options) ([]step.Result, error) {
	results := make([]step.Result, 0, plan.Len())
	blocked := make(map[string]bool)
	halted := false

	for _, s := range plan.Steps() {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result := r.runStep(ctx, s, opts, blocked, halted)
		if result.Failed() {
			blocked[s.ID().String()] = true
			if opts.StopOnFailure {
				halted = true
			}
		}
		// A skip caused by a broken dependency chain blocks dependents
		// too: the step's goal was never brought about.
		if result.Status() == step.StatusSkipped && result.Detail() == step.DetailDependencyFailed {
			blocked[s.ID().String()] = true
		}

		if err := r.sink.Append(result); err != nil {
			return results, err
		}
		results = append(results, result)
		r.logResult(ctx, result)
	}

	return results, nil
}

// runStep produces the terminal result for a single step. blocked holds
// the IDs of steps that failed or were skipped off a failed ancestor.
func (r *Runner) runStep(ctx context.Context, s step.Step, opts Options, blocked map[string]bool, halted bool) step.Result {
	id := s.ID()

	for _, dep := range s.DependsOn() {
		if blocked[dep.String()] {
			return step.NewResult(id, step.StatusSkipped, step.DetailDependencyFailed, r.now())
		}
	}

	if halted {
		return step.NewResult(id, step.StatusSkipped, step.DetailRunHalted, r.now())
	}

	start := r.now()
	satisfied, err := s.Check(ctx)
	if err != nil {
		execErr := &step.ExecutionError{StepID: id, Phase: "check", Err: err}
		return step.NewResult(id, step.StatusFailed, execErr.Error(), r.now()).
			WithErr(execErr).
			WithDuration(r.now().Sub(start))
	}
	if satisfied {
		return step.NewResult(id, step.StatusSkipped, step.DetailSatisfied, r.now())
	}

	if opts.DryRun {
		return step.NewResult(id, step.StatusSkipped, step.DetailDryRun, r.now())
	}

	if err := s.Apply(ctx); err != nil {
		execErr := &step.ExecutionError{StepID: id, Phase: "apply", Err: err}
		return step.NewResult(id, step.StatusFailed, execErr.Error(), r.now()).
			WithErr(execErr).
			WithDuration(r.now().Sub(start))
	}

	return step.NewResult(id, step.StatusSucceeded, "", r.now()).
		WithDuration(r.now().Sub(start))
}

// logResult emits a structured log line for a result, if a logger is set.
func (r *Runner) logResult(ctx context.Context, result step.Result) {
	if r.logger == nil {
		return
	}
	fields := []ports.Field{
		ports.F("step", result.StepID().String()),
		ports.F("status", result.Status().String()),
	}
	if result.Detail() != "" {
		fields = append(fields, ports.F("detail", result.Detail()))
	}
	switch result.Status() {
	case step.StatusFailed:
		r.logger.Error(ctx, "step failed", fields...)
	case step.StatusSkipped:
		r.logger.Debug(ctx, "step skipped", fields...)
	default:
		r.logger.Info(ctx, "step succeeded", fields...)
	}
}

// AnyFailed reports whether any result in the list failed. Used for the
// process exit code.
func AnyFailed(results []step.Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}
