package main

import (
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List every step the manifest compiles to",
	RunE:  listSteps,
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func listSteps(_ *cobra.Command, _ []string) error {
	shipshape := newApp()

	reg, err := shipshape.Compile(cfgFile)
	if err != nil {
		return err
	}

	shipshape.PrintSteps(reg)
	return nil
}
