// Package provider defines the step provider contract and the compiler
// that turns a manifest into a populated step registry.
package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/geozeke/shipshape/internal/domain/step"
)

// Provider compiles a section of the manifest into executable steps.
// Each provider handles a specific kind of resource (apt, files, gnome...).
type Provider interface {
	// Name returns the provider's identifier and manifest section key.
	Name() string

	// Compile transforms the provider's manifest section into steps.
	// Cross-provider dependencies are expressed through Step.DependsOn.
	Compile(ctx CompileContext) ([]step.Step, error)
}

// CompileContext provides manifest data and path context to providers.
type CompileContext struct {
	config     map[string]interface{}
	configRoot string
	home       string
}

// NewCompileContext creates a CompileContext over the given manifest data.
func NewCompileContext(config map[string]interface{}, configRoot, home string) CompileContext {
	return CompileContext{
		config:     config,
		configRoot: configRoot,
		home:       home,
	}
}

// GetSection returns a section of the manifest by key.
// Returns nil if the section doesn't exist or isn't a map.
func (c CompileContext) GetSection(key string) map[string]interface{} {
	if c.config == nil {
		return nil
	}
	section, ok := c.config[key]
	if !ok {
		return nil
	}
	sectionMap, ok := section.(map[string]interface{})
	if !ok {
		return nil
	}
	return sectionMap
}

// ConfigRoot returns the directory containing the manifest.
func (c CompileContext) ConfigRoot() string {
	return c.configRoot
}

// Home returns the invoking user's home directory.
func (c CompileContext) Home() string {
	return c.home
}

// ResolveSource resolves a manifest source path: absolute paths pass
// through, ~ expands to the home directory, everything else is relative
// to the config root.
func (c CompileContext) ResolveSource(path string) string {
	if path == "~" {
		return c.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(c.home, path[2:])
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.configRoot, path)
}

// ResolveTarget resolves a manifest target path: only ~ expansion, no
// config-root joining - targets name locations on the host.
func (c CompileContext) ResolveTarget(path string) string {
	if path == "~" {
		return c.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(c.home, path[2:])
	}
	return path
}

// Compiler aggregates providers and builds the step registry.
type Compiler struct {
	providers []Provider
}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		providers: make([]Provider, 0),
	}
}

// RegisterProvider adds a provider. Providers are compiled in
// registration order.
func (c *Compiler) RegisterProvider(p Provider) {
	c.providers = append(c.providers, p)
}

// Providers returns all registered providers.
func (c *Compiler) Providers() []Provider {
	return c.providers
}

// Compile runs every provider against the manifest and registers the
// resulting steps. Returns an error if any provider fails or if two
// steps share an ID.
func (c *Compiler) Compile(ctx CompileContext) (*step.Registry, error) {
	reg := step.NewRegistry()

	for _, p := range c.providers {
		steps, err := p.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", p.Name(), err)
		}
		for _, s := range steps {
			if err := reg.Register(s); err != nil {
				return nil, fmt.Errorf("provider %q: %w", p.Name(), err)
			}
		}
	}

	return reg, nil
}
