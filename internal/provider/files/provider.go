// Package files provides directory creation and file copy steps.
package files

import (
	"fmt"
	"path/filepath"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
)

// Provider compiles the files section of a manifest into steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new files provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "files"
}

// Compile transforms the files config section into steps. Copy steps
// gain an implicit dependency on the directory step that owns their
// target, when the manifest declares one.
func (p *Provider) Compile(ctx provider.CompileContext) ([]step.Step, error) {
	section := ctx.GetSection("files")
	if section == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(section)
	if err != nil {
		return nil, fmt.Errorf("invalid files config: %w", err)
	}

	var steps []step.Step

	// files:dir:<id>, keyed by resolved path for dependency lookup.
	dirSteps := make(map[string]step.ID)
	for _, d := range cfg.Directories {
		dest := ctx.ResolveTarget(d)
		ds := NewDirStep(dest, d, p.fs)
		dirSteps[dest] = ds.ID()
		steps = append(steps, ds)
	}

	for _, cp := range cfg.Copies {
		src := ctx.ResolveSource(cp.Src)
		dest := ctx.ResolveTarget(cp.Dest)

		var deps []step.ID
		for _, raw := range cp.DependsOn {
			id, err := step.NewID(raw)
			if err != nil {
				return nil, fmt.Errorf("copy %q depends_on %q: %w", cp.Dest, raw, err)
			}
			deps = append(deps, id)
		}

		if cp.IsGlob() {
			// A glob target is the destination directory itself.
			if id, ok := dirSteps[dest]; ok {
				deps = appendDep(deps, id)
			}
			steps = append(steps, NewGlobStep(cp, src, dest, deps, p.fs))
			continue
		}

		if id, ok := dirSteps[filepath.Dir(dest)]; ok {
			deps = appendDep(deps, id)
		}
		steps = append(steps, NewCopyStep(cp, src, dest, deps, p.fs))
	}

	return steps, nil
}

// Ensure Provider implements provider.Provider.
var _ provider.Provider = (*Provider)(nil)

func appendDep(deps []step.ID, id step.ID) []step.ID {
	for _, d := range deps {
		if d.Equals(id) {
			return deps
		}
	}
	return append(deps, id)
}
