// Package docker provides steps that install the Docker engine from
// Docker's apt repository and manage group membership.
package docker

import (
	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
)

// Provider compiles the docker section of a manifest into steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new docker Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "docker"
}

// Compile transforms docker configuration into executable steps. The
// keyring, repo, index update and engine steps form a fixed chain;
// compose and group membership hang off the engine.
func (p *Provider) Compile(ctx provider.CompileContext) ([]step.Step, error) {
	rawConfig := ctx.GetSection("docker")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := []step.Step{
		NewKeyringStep(p.runner, p.fs),
		NewRepoStep(p.runner, p.fs),
		NewUpdateStep(p.runner),
		NewEngineStep(p.runner),
	}

	if cfg.Compose {
		steps = append(steps, NewComposeStep(p.runner))
	}
	if cfg.User != "" {
		steps = append(steps, NewGroupStep(cfg.User, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements provider.Provider.
var _ provider.Provider = (*Provider)(nil)
