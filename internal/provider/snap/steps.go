package snap

import (
	"context"
	"fmt"
	"strings"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/validation"
)

// RefreshStep refreshes all installed snaps.
type RefreshStep struct {
	runner ports.CommandRunner
}

// NewRefreshStep creates a new RefreshStep.
func NewRefreshStep(runner ports.CommandRunner) *RefreshStep {
	return &RefreshStep{runner: runner}
}

// ID returns the step identifier.
func (s *RefreshStep) ID() step.ID {
	return step.MustNewID("snap:refresh")
}

// DependsOn returns the step dependencies.
func (s *RefreshStep) DependsOn() []step.ID {
	return nil
}

// Check reports unsatisfied: snaps are refreshed every run. A refresh
// with nothing to do is a no-op.
func (s *RefreshStep) Check(_ context.Context) (bool, error) {
	return false, nil
}

// Apply refreshes installed snaps.
func (s *RefreshStep) Apply(ctx context.Context) error {
	result, err := s.runner.Run(ctx, "sudo", "snap", "refresh")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("snap refresh failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *RefreshStep) Summary() string {
	return "Refresh installed snaps"
}

// InstallStep installs one snap.
type InstallStep struct {
	name   string
	id     step.ID
	runner ports.CommandRunner
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(name string, runner ports.CommandRunner) *InstallStep {
	return &InstallStep{
		name:   name,
		id:     step.MustNewID("snap:install:" + name),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *InstallStep) DependsOn() []step.ID {
	return nil
}

// Check determines if the snap is already installed.
func (s *InstallStep) Check(ctx context.Context) (bool, error) {
	result, err := s.runner.Run(ctx, "snap", "list", s.name)
	if err != nil {
		return false, err
	}
	return result.Success(), nil
}

// Apply installs the snap.
func (s *InstallStep) Apply(ctx context.Context) error {
	if err := validation.ValidateSnapName(s.name); err != nil {
		return fmt.Errorf("invalid snap name: %w", err)
	}

	result, err := s.runner.Run(ctx, "sudo", "snap", "install", s.name)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("snap install %s failed: %s", s.name, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *InstallStep) Summary() string {
	return fmt.Sprintf("Install snap %s", s.name)
}

// RemoveStep removes one snap.
type RemoveStep struct {
	name   string
	id     step.ID
	runner ports.CommandRunner
}

// NewRemoveStep creates a new RemoveStep.
func NewRemoveStep(name string, runner ports.CommandRunner) *RemoveStep {
	return &RemoveStep{
		name:   name,
		id:     step.MustNewID("snap:remove:" + name),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *RemoveStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *RemoveStep) DependsOn() []step.ID {
	return nil
}

// Check determines if the snap is already absent.
func (s *RemoveStep) Check(ctx context.Context) (bool, error) {
	result, err := s.runner.Run(ctx, "snap", "list", s.name)
	if err != nil {
		return false, err
	}
	return !result.Success(), nil
}

// Apply removes the snap.
func (s *RemoveStep) Apply(ctx context.Context) error {
	if err := validation.ValidateSnapName(s.name); err != nil {
		return fmt.Errorf("invalid snap name: %w", err)
	}

	result, err := s.runner.Run(ctx, "sudo", "snap", "remove", s.name)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("snap remove %s failed: %s", s.name, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *RemoveStep) Summary() string {
	return fmt.Sprintf("Remove snap %s", s.name)
}
