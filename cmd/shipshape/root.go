package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geozeke/shipshape/internal/adapters/logging"
	"github.com/geozeke/shipshape/internal/app"
	"github.com/geozeke/shipshape/internal/config"
	"github.com/geozeke/shipshape/internal/ports"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "shipshape",
	Short: "Idempotent system provisioning from a declarative manifest",
	Long: `Shipshape provisions a machine from a YAML manifest of steps:
packages, files, desktop settings, Docker, arbitrary commands.

Every step knows how to check whether it is already satisfied, so runs
are idempotent and a failed run can simply be re-run: finished steps
skip themselves and the rest continue.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultFile, "path to the manifest")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit log lines as JSON")

	rootCmd.AddCommand(versionCmd)
}

// newApp builds the application with a logger configured from the
// global flags.
func newApp() *app.Shipshape {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	logger := logging.NewConsole(
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonLog),
	)
	return app.New(os.Stdout, logger)
}
