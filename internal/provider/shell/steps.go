package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
)

// CommandStep runs one manifest-defined command through sh -c.
type CommandStep struct {
	cmd       Command
	creates   string
	id        step.ID
	dependsOn []step.ID
	runner    ports.CommandRunner
	fs        ports.FileSystem
}

// NewCommandStep creates a new CommandStep. creates must already be
// resolved; it is empty when the command declares no creates path.
func NewCommandStep(cmd Command, creates string, id step.ID, dependsOn []step.ID,
	runner ports.CommandRunner, fs ports.FileSystem) *CommandStep {
	return &CommandStep{
		cmd:       cmd,
		creates:   creates,
		id:        id,
		dependsOn: dependsOn,
		runner:    runner,
		fs:        fs,
	}
}

// ID returns the step identifier.
func (s *CommandStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *CommandStep) DependsOn() []step.ID {
	return s.dependsOn
}

// Check consults the creates path first, then the probe command. A
// command with neither always runs.
func (s *CommandStep) Check(ctx context.Context) (bool, error) {
	if s.creates != "" {
		return s.fs.Exists(s.creates), nil
	}
	if s.cmd.Check != "" {
		result, err := s.runner.Run(ctx, "sh", "-c", s.cmd.Check)
		if err != nil {
			return false, err
		}
		return result.Success(), nil
	}
	return false, nil
}

// Apply runs the command.
func (s *CommandStep) Apply(ctx context.Context) error {
	var result ports.CommandResult
	var err error
	if s.cmd.Sudo {
		result, err = s.runner.Run(ctx, "sudo", "sh", "-c", s.cmd.Run)
	} else {
		result, err = s.runner.Run(ctx, "sh", "-c", s.cmd.Run)
	}
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("command %q failed: %s", s.cmd.Run, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *CommandStep) Summary() string {
	return fmt.Sprintf("Run %s", s.cmd.Run)
}
