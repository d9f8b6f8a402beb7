package main

import (
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the execution order without applying anything",
	Long: `Plan compiles the manifest and prints the steps in the order a run
would execute them. Nothing is checked or applied.`,
	RunE: runPlan,
}

var planSteps []string

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringSliceVar(&planSteps, "steps", nil, "step IDs to plan (default: all)")
}

func runPlan(_ *cobra.Command, _ []string) error {
	shipshape := newApp()

	plan, err := shipshape.Plan(cfgFile, planSteps)
	if err != nil {
		return err
	}

	shipshape.PrintPlan(plan)
	return nil
}
