package app

import (
	"fmt"
	"time"

	"github.com/geozeke/shipshape/internal/domain/planner"
	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/runlog"
)

// PrintPlan outputs the execution order without applying anything.
func (s *Shipshape) PrintPlan(plan *planner.Plan) {
	s.printf("\n%s\n\n", s.styles.Title.Render("Execution plan"))

	if plan.IsEmpty() {
		s.printf("Nothing to do. The manifest compiled to zero steps.\n")
		return
	}

	for i, st := range plan.Steps() {
		s.printf("  %2d. %s %s\n", i+1, st.ID().String(),
			s.styles.Muted.Render(st.Summary()))
	}

	s.printf("\n%d steps. Run 'shipshape run' to apply.\n", plan.Len())
}

// PrintResults outputs one line per result plus a summary tally.
func (s *Shipshape) PrintResults(results []step.Result, dryRun bool) {
	title := "Run results"
	if dryRun {
		title = "Run results (dry run)"
	}
	s.printf("\n%s\n\n", s.styles.Title.Render(title))

	var succeeded, failed, skipped int
	for _, r := range results {
		switch r.Status() {
		case step.StatusSucceeded:
			succeeded++
			s.printf("  %s %s\n", s.styles.Success.Render("✔"), r.StepID().String())
		case step.StatusFailed:
			failed++
			s.printf("  %s %s: %s\n", s.styles.Error.Render("✘"),
				r.StepID().String(), r.Detail())
		case step.StatusSkipped:
			skipped++
			s.printf("  %s %s %s\n", s.styles.Muted.Render("-"),
				r.StepID().String(), s.styles.Muted.Render("("+r.Detail()+")"))
		case step.StatusPending:
			s.printf("  ? %s\n", r.StepID().String())
		}
	}

	s.printf("\n%d succeeded, %d failed, %d skipped\n", succeeded, failed, skipped)
	if failed > 0 {
		s.printf("%s\n", s.styles.Warning.Render(
			"Some steps failed. Fix the cause and re-run; finished steps will be skipped."))
	}
}

// PrintSteps lists every registered step with its dependencies.
func (s *Shipshape) PrintSteps(reg *step.Registry) {
	s.printf("\n%s\n\n", s.styles.Title.Render("Available steps"))

	for _, st := range reg.All() {
		s.printf("  %s %s\n", st.ID().String(), s.styles.Muted.Render(st.Summary()))
		if deps := st.DependsOn(); len(deps) > 0 {
			for _, dep := range deps {
				s.printf("      %s %s\n", s.styles.Muted.Render("needs"), dep.String())
			}
		}
	}

	s.printf("\n%d steps.\n", reg.Len())
}

// PrintHistory outputs run log entries, oldest first.
func (s *Shipshape) PrintHistory(entries []runlog.Entry) {
	if len(entries) == 0 {
		s.printf("No run history.\n")
		return
	}

	for _, e := range entries {
		var mark string
		switch e.Status {
		case step.StatusSucceeded:
			mark = s.styles.Success.Render("✔")
		case step.StatusFailed:
			mark = s.styles.Error.Render("✘")
		default:
			mark = s.styles.Muted.Render("-")
		}
		line := fmt.Sprintf("%s  %s %-9s %s",
			e.Timestamp.Format(time.RFC3339), mark, e.Status.String(), e.StepID)
		if e.Detail != "" {
			line += "  " + s.styles.Muted.Render(e.Detail)
		}
		s.printf("%s\n", line)
	}
}

// printf writes to the output writer, ignoring errors.
func (s *Shipshape) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
