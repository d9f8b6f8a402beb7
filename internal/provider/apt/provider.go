package apt

import (
	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
)

// Provider compiles apt configuration into executable steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new apt Provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "apt"
}

// Compile transforms apt configuration into executable steps.
func (p *Provider) Compile(ctx provider.CompileContext) ([]step.Step, error) {
	rawConfig := ctx.GetSection("apt")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]step.Step, 0, len(cfg.Packages)+len(cfg.Remove)+1)

	var pkgDeps []step.ID
	if cfg.Update {
		steps = append(steps, NewUpdateStep(p.runner))
		pkgDeps = []step.ID{UpdateStepID}
	}

	for _, pkg := range cfg.Packages {
		steps = append(steps, NewPackageStep(pkg, pkgDeps, p.runner))
	}

	for _, pkg := range cfg.Remove {
		steps = append(steps, NewRemoveStep(pkg, p.runner))
	}

	return steps, nil
}

// Ensure Provider implements provider.Provider.
var _ provider.Provider = (*Provider)(nil)
