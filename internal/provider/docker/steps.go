package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/validation"
)

const (
	keyringPath  = "/usr/share/keyrings/docker-archive-keyring.gpg"
	repoListPath = "/etc/apt/sources.list.d/docker.list"
	gpgKeyURL    = "https://download.docker.com/linux/ubuntu/gpg"
)

// Step IDs, exported so manifests can depend on docker provisioning.
var (
	KeyringStepID = step.MustNewID("docker:keyring")
	RepoStepID    = step.MustNewID("docker:repo")
	UpdateStepID  = step.MustNewID("docker:apt-update")
	EngineStepID  = step.MustNewID("docker:engine")
	ComposeStepID = step.MustNewID("docker:compose")
	GroupStepID   = step.MustNewID("docker:group")
)

// KeyringStep installs Docker's signing key into the apt keyring.
type KeyringStep struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewKeyringStep creates a new KeyringStep.
func NewKeyringStep(runner ports.CommandRunner, fs ports.FileSystem) *KeyringStep {
	return &KeyringStep{runner: runner, fs: fs}
}

// ID returns the step identifier.
func (s *KeyringStep) ID() step.ID {
	return KeyringStepID
}

// DependsOn returns the step dependencies.
func (s *KeyringStep) DependsOn() []step.ID {
	return nil
}

// Check determines if the keyring file already exists.
func (s *KeyringStep) Check(_ context.Context) (bool, error) {
	return s.fs.Exists(keyringPath), nil
}

// Apply fetches the armored key and dearmors it into the keyring.
func (s *KeyringStep) Apply(ctx context.Context) error {
	result, err := s.runner.Run(ctx, "curl", "-fsSL", gpgKeyURL)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("fetching %s failed: %s", gpgKeyURL, strings.TrimSpace(result.Stderr))
	}

	result, err = s.runner.RunInput(ctx, result.Stdout,
		"sudo", "gpg", "--dearmor", "-o", keyringPath)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("writing keyring failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *KeyringStep) Summary() string {
	return "Install the Docker apt signing key"
}

// RepoStep writes the Docker apt source list.
type RepoStep struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewRepoStep creates a new RepoStep.
func NewRepoStep(runner ports.CommandRunner, fs ports.FileSystem) *RepoStep {
	return &RepoStep{runner: runner, fs: fs}
}

// ID returns the step identifier.
func (s *RepoStep) ID() step.ID {
	return RepoStepID
}

// DependsOn returns the step dependencies.
func (s *RepoStep) DependsOn() []step.ID {
	return []step.ID{KeyringStepID}
}

// Check determines if the source list already exists.
func (s *RepoStep) Check(_ context.Context) (bool, error) {
	return s.fs.Exists(repoListPath), nil
}

// Apply composes the source line for this host's architecture and
// release, and writes it with tee so the write runs under sudo.
func (s *RepoStep) Apply(ctx context.Context) error {
	arch, err := s.hostValue(ctx, "dpkg", "--print-architecture")
	if err != nil {
		return err
	}
	codename, err := s.hostValue(ctx, "lsb_release", "-cs")
	if err != nil {
		return err
	}

	line := fmt.Sprintf("deb [arch=%s signed-by=%s] https://download.docker.com/linux/ubuntu %s stable\n",
		arch, keyringPath, codename)

	result, err := s.runner.RunInput(ctx, line, "sudo", "tee", repoListPath)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("writing %s failed: %s", repoListPath, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *RepoStep) Summary() string {
	return "Configure the Docker apt repository"
}

func (s *RepoStep) hostValue(ctx context.Context, command string, args ...string) (string, error) {
	result, err := s.runner.Run(ctx, command, args...)
	if err != nil {
		return "", err
	}
	if !result.Success() {
		return "", fmt.Errorf("%s failed: %s", command, strings.TrimSpace(result.Stderr))
	}
	return strings.TrimSpace(result.Stdout), nil
}

// UpdateStep refreshes the apt index after the repo is configured.
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
	return []step.ID{RepoStepID}
}

// Check reports unsatisfied: the index must pick up the new repo.
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
	return "Update the apt package index for Docker"
}

// PackagesStep installs a set of apt packages for the Docker stack.
type PackagesStep struct {
	id        step.ID
	packages  []string
	dependsOn []step.ID
	summary   string
	runner    ports.CommandRunner
}

// NewEngineStep creates the step that installs the Docker engine.
func NewEngineStep(runner ports.CommandRunner) *PackagesStep {
	return &PackagesStep{
		id:        EngineStepID,
		packages:  []string{"docker-ce", "docker-ce-cli", "containerd.io"},
		dependsOn: []step.ID{UpdateStepID},
		summary:   "Install the Docker engine",
		runner:    runner,
	}
}

// NewComposeStep creates the step that installs the compose plugin.
func NewComposeStep(runner ports.CommandRunner) *PackagesStep {
	return &PackagesStep{
		id:        ComposeStepID,
		packages:  []string{"docker-compose-plugin"},
		dependsOn: []step.ID{EngineStepID},
		summary:   "Install the Docker compose plugin",
		runner:    runner,
	}
}

// ID returns the step identifier.
func (s *PackagesStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *PackagesStep) DependsOn() []step.ID {
	return s.dependsOn
}

// Check determines if every package is already installed.
func (s *PackagesStep) Check(ctx context.Context) (bool, error) {
	for _, pkg := range s.packages {
		result, err := s.runner.Run(ctx, "dpkg-query", "-W", "-f=${db:Status-Status}", pkg)
		if err != nil {
			return false, err
		}
		if !result.Success() || strings.TrimSpace(result.Stdout) != "installed" {
			return false, nil
		}
	}
	return true, nil
}

// Apply installs the packages.
func (s *PackagesStep) Apply(ctx context.Context) error {
	for _, pkg := range s.packages {
		if err := validation.ValidatePackageName(pkg); err != nil {
			return fmt.Errorf("invalid package name: %w", err)
		}
	}

	args := append([]string{"apt-get", "install", "-y"}, s.packages...)
	result, err := s.runner.Run(ctx, "sudo", args...)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("apt-get install failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *PackagesStep) Summary() string {
	return s.summary
}

// GroupStep adds a user to the docker group.
type GroupStep struct {
	user   string
	runner ports.CommandRunner
}

// NewGroupStep creates a new GroupStep.
func NewGroupStep(user string, runner ports.CommandRunner) *GroupStep {
	return &GroupStep{user: user, runner: runner}
}

// ID returns the step identifier.
func (s *GroupStep) ID() step.ID {
	return GroupStepID
}

// DependsOn returns the step dependencies.
func (s *GroupStep) DependsOn() []step.ID {
	return []step.ID{EngineStepID}
}

// Check determines if the user is already in the docker group.
func (s *GroupStep) Check(ctx context.Context) (bool, error) {
	result, err := s.runner.Run(ctx, "id", "-nG", s.user)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, fmt.Errorf("id -nG %s failed: %s", s.user, strings.TrimSpace(result.Stderr))
	}
	for _, group := range strings.Fields(result.Stdout) {
		if group == "docker" {
			return true, nil
		}
	}
	return false, nil
}

// Apply adds the user to the docker group. Membership takes effect on
// the user's next login.
func (s *GroupStep) Apply(ctx context.Context) error {
	if err := validation.ValidateUsername(s.user); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	result, err := s.runner.Run(ctx, "sudo", "usermod", "-aG", "docker", s.user)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("usermod failed: %s", strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *GroupStep) Summary() string {
	return fmt.Sprintf("Add %s to the docker group", s.user)
}
