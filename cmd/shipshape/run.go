package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/geozeke/shipshape/internal/app"
	"github.com/geozeke/shipshape/internal/domain/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply the manifest to this machine",
	Long: `Run compiles the manifest into steps, orders them by dependency,
and applies each one that is not already satisfied.

Every outcome is appended to the run log. A failed run can simply be
re-run: satisfied steps skip themselves on re-check.

Use --dry-run to see what would be applied without changing anything.
Use --steps to run a subset; dependencies are pulled in automatically.`,
	RunE: runRun,
}

var (
	runDryRun        bool
	runSteps         []string
	runStopOnFailure bool
	runLogFile       string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "show what would be applied without making changes")
	runCmd.Flags().StringSliceVar(&runSteps, "steps", nil, "step IDs to run (default: all)")
	runCmd.Flags().BoolVar(&runStopOnFailure, "stop-on-failure", true, "stop scheduling steps after the first failure")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "run log location (default: ~/.local/state/shipshape/run.log)")
}

func runRun(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shipshape := newApp()

	plan, err := shipshape.Plan(cfgFile, runSteps)
	if err != nil {
		return err
	}

	results, runErr := shipshape.Run(ctx, plan, app.RunOptions{
		DryRun:        runDryRun,
		StopOnFailure: runStopOnFailure,
		LogPath:       runLogFile,
	})
	shipshape.PrintResults(results, runDryRun)
	if runErr != nil {
		return runErr
	}

	if runner.AnyFailed(results) {
		return fmt.Errorf("one or more steps failed")
	}
	return nil
}
