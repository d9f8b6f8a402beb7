package apt

import (
	"context"
	"fmt"
	"strings"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/validation"
)

// UpdateStepID identifies the package index update step. Package steps
// depend on it when the manifest enables updating.
var UpdateStepID = step.MustNewID("apt:update")

// UpdateStep refreshes the apt package index.
type UpdateStep struct {
	runner ports.CommandRunner
}

// NewUpdateStep creates a new UpdateStep.
func NewUpdateStep(runner ports.CommandRunner) *UpdateStep {
	return &UpdateStep{runner: runner}
}

// ID returns the step identifier.
func (s *UpdateStep) ID() step.ID {
	return UpdateStepID
}

// DependsOn returns the step dependencies.
func (s *UpdateStep) DependsOn() []step.ID {
	return nil
}

// Check reports unsatisfied: the index is refreshed every run. Running
// apt-get update twice is harmless, so idempotence holds in effect.
func (s *UpdateStep) Check(_ context.Context) (bool, error) {
	return false, nil
}

// Apply refreshes the package index.
func (s *UpdateStep) Apply(ctx context.Context) error {
	result, err := s.runner.Run(ctx, "sudo", "apt-get", "update")
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get update failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *UpdateStep) Summary() string {
	return "Update the apt package index"
}

// PackageStep installs one apt package.
type PackageStep struct {
	pkg       string
	id        step.ID
	dependsOn []step.ID
	runner    ports.CommandRunner
}

// NewPackageStep creates a new PackageStep.
func NewPackageStep(pkg string, dependsOn []step.ID, runner ports.CommandRunner) *PackageStep {
	return &PackageStep{
		pkg:       pkg,
		id:        step.MustNewID("apt:package:" + pkg),
		dependsOn: dependsOn,
		runner:    runner,
	}
}

// ID returns the step identifier.
func (s *PackageStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *PackageStep) DependsOn() []step.ID {
	return s.dependsOn
}

// Check determines if the package is already installed.
func (s *PackageStep) Check(ctx context.Context) (bool, error) {
	result, err := s.runner.Run(ctx, "dpkg-query", "-W", "-f=${db:Status-Status}", s.pkg)
	if err != nil {
		return false, err
	}

	// dpkg-query exits 1 if the package is not in the database.
	if !result.Success() {
		return false, nil
	}
	return strings.TrimSpace(result.Stdout) == "installed", nil
}

// Apply installs the package.
func (s *PackageStep) Apply(ctx context.Context) error {
	if err := validation.ValidatePackageName(s.pkg); err != nil {
		return fmt.Errorf("invalid package name: %w", err)
	}

	result, err := s.runner.Run(ctx, "sudo", "apt-get", "install", "-y", s.pkg)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install %s failed: %s", s.pkg, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *PackageStep) Summary() string {
	return fmt.Sprintf("Install apt package %s", s.pkg)
}

// RemoveStep removes one apt package.
type RemoveStep struct {
	pkg    string
	id     step.ID
	runner ports.CommandRunner
}

// NewRemoveStep creates a new RemoveStep.
func NewRemoveStep(pkg string, runner ports.CommandRunner) *RemoveStep {
	return &RemoveStep{
		pkg:    pkg,
		id:     step.MustNewID("apt:remove:" + pkg),
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

// Check determines if the package is already absent.
func (s *RemoveStep) Check(ctx context.Context) (bool, error) {
	result, err := s.runner.Run(ctx, "dpkg-query", "-W", "-f=${db:Status-Status}", s.pkg)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return true, nil
	}
	return strings.TrimSpace(result.Stdout) != "installed", nil
}

// Apply removes the package.
func (s *RemoveStep) Apply(ctx context.Context) error {
	if err := validation.ValidatePackageName(s.pkg); err != nil {
		return fmt.Errorf("invalid package name: %w", err)
	}

	result, err := s.runner.Run(ctx, "sudo", "apt-get", "remove", "-y", s.pkg)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get remove %s failed: %s", s.pkg, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *RemoveStep) Summary() string {
	return fmt.Sprintf("Remove apt package %s", s.pkg)
}
