// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunInput behaves like Run with input fed to the command's stdin.
	// Needed for commands like "dconf load" that only read settings from
	// standard input.
	RunInput(ctx context.Context, input string, command string, args ...string) (CommandResult, error)
}
