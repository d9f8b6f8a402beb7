package snap

import (
	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
)

// Provider compiles snap configuration into executable steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new snap Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "snap"
}

// Compile transforms snap configuration into executable steps.
func (p *Provider) Compile(ctx provider.CompileContext) ([]step.Step, error) {
	rawConfig := ctx.GetSection("snap")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]step.Step, 0, len(cfg.Install)+len(cfg.Remove)+1)

	if cfg.Refresh {
		steps = append(steps, NewRefreshStep(p.runner))
	}
	for _, name := range cfg.Install {
		steps = append(steps, NewInstallStep(name, p.runner))
	}
	for _, name := range cfg.Remove {
		steps = append(steps, NewRemoveStep(name, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements provider.Provider.
var _ provider.Provider = (*Provider)(nil)
