// Package gnome provides gsettings and dconf desktop configuration steps.
package gnome

import (
	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
)

// Provider compiles the gnome section of a manifest into steps.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new gnome Provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "gnome"
}

// Compile transforms gnome configuration into executable steps.
func (p *Provider) Compile(ctx provider.CompileContext) ([]step.Step, error) {
	rawConfig := ctx.GetSection("gnome")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]step.Step, 0, len(cfg.Settings)+len(cfg.Keyfiles))

	for _, setting := range cfg.Settings {
		steps = append(steps, NewSettingStep(setting, p.runner))
	}

	for _, kf := range cfg.Keyfiles {
		src := ctx.ResolveSource(kf.Src)
		steps = append(steps, NewKeyfileStep(kf, src, p.runner, p.fs))
	}

	return steps, nil
}

// Ensure Provider implements provider.Provider.
var _ provider.Provider = (*Provider)(nil)
