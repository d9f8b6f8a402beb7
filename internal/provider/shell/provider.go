// Package shell provides manifest-defined command steps for everything
// the dedicated providers don't cover.
package shell

import (
	"fmt"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
)

// Provider compiles the shell section of a manifest into steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new shell Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "shell"
}

// Compile transforms shell configuration into executable steps.
func (p *Provider) Compile(ctx provider.CompileContext) ([]step.Step, error) {
	rawConfig := ctx.GetSection("shell")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]step.Step, 0, len(cfg.Commands))
	for _, cmd := range cfg.Commands {
		id, err := step.NewID(cmd.ID)
		if err != nil {
			return nil, fmt.Errorf("command id %q: %w", cmd.ID, err)
		}

		var deps []step.ID
		for _, raw := range cmd.DependsOn {
			dep, err := step.NewID(raw)
			if err != nil {
				return nil, fmt.Errorf("command %q depends_on %q: %w", cmd.ID, raw, err)
			}
			deps = append(deps, dep)
		}

		var creates string
		if cmd.Creates != "" {
			creates = ctx.ResolveTarget(cmd.Creates)
		}

		steps = append(steps, NewCommandStep(cmd, creates, id, deps, p.runner, p.fs))
	}

	return steps, nil
}

// Ensure Provider implements provider.Provider.
var _ provider.Provider = (*Provider)(nil)
