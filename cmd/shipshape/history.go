package main

import (
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show results from previous runs",
	Long: `History prints the run log: one line per step result, oldest first.
The log is append-only; every run adds a header line and one record
per step it reached.`,
	RunE: runHistory,
}

var (
	historyCount   int
	historyLogFile string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyCount, "number", "n", 20, "number of entries to show (0 for all)")
	historyCmd.Flags().StringVar(&historyLogFile, "log-file", "", "run log location (default: ~/.local/state/shipshape/run.log)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	shipshape := newApp()

	entries, err := shipshape.History(historyLogFile, historyCount)
	if err != nil {
		return err
	}

	shipshape.PrintHistory(entries)
	return nil
}
