package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozeke/shipshape/internal/domain/step"
)

// stubStep is a minimal Step for compiler tests.
type stubStep struct {
	id step.ID
}

func (s *stubStep) ID() step.ID                         { return s.id }
func (s *stubStep) DependsOn() []step.ID                { return nil }
func (s *stubStep) Check(context.Context) (bool, error) { return false, nil }
func (s *stubStep) Apply(context.Context) error         { return nil }
func (s *stubStep) Summary() string                     { return s.id.String() }

// stubProvider emits a fixed step list.
type stubProvider struct {
	name  string
	steps []step.Step
	err   error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Compile(CompileContext) ([]step.Step, error) {
	return p.steps, p.err
}

func TestCompilerAggregatesProviders(t *testing.T) {
	c := NewCompiler()
	c.RegisterProvider(&stubProvider{name: "apt", steps: []step.Step{
		&stubStep{id: step.MustNewID("apt:update")},
	}})
	c.RegisterProvider(&stubProvider{name: "snap", steps: []step.Step{
		&stubStep{id: step.MustNewID("snap:refresh")},
	}})

	reg, err := c.Compile(NewCompileContext(nil, "/cfg", "/home/user"))
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"apt:update", "snap:refresh"}, reg.IDs())
}

func TestCompilerDuplicateIDs(t *testing.T) {
	c := NewCompiler()
	c.RegisterProvider(&stubProvider{name: "one", steps: []step.Step{
		&stubStep{id: step.MustNewID("a:x")},
	}})
	c.RegisterProvider(&stubProvider{name: "two", steps: []step.Step{
		&stubStep{id: step.MustNewID("a:x")},
	}})

	_, err := c.Compile(NewCompileContext(nil, "/cfg", "/home/user"))
	require.Error(t, err)
	assert.ErrorIs(t, err, step.ErrDuplicateStep)
	assert.Contains(t, err.Error(), `provider "two"`)
}

func TestCompilerProviderError(t *testing.T) {
	boom := errors.New("bad section")
	c := NewCompiler()
	c.RegisterProvider(&stubProvider{name: "apt", err: boom})

	_, err := c.Compile(NewCompileContext(nil, "/cfg", "/home/user"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `provider "apt"`)
}

func TestCompileContextGetSection(t *testing.T) {
	ctx := NewCompileContext(map[string]interface{}{
		"apt":    map[string]interface{}{"update": true},
		"broken": "not a map",
	}, "/cfg", "/home/user")

	section := ctx.GetSection("apt")
	require.NotNil(t, section)
	assert.Equal(t, true, section["update"])

	assert.Nil(t, ctx.GetSection("missing"))
	assert.Nil(t, ctx.GetSection("broken"))

	empty := NewCompileContext(nil, "/cfg", "/home/user")
	assert.Nil(t, empty.GetSection("apt"))
}

func TestResolveSource(t *testing.T) {
	ctx := NewCompileContext(nil, "/cfg", "/home/user")

	assert.Equal(t, "/cfg/dotfiles/bashrc", ctx.ResolveSource("dotfiles/bashrc"))
	assert.Equal(t, "/home/user/keys", ctx.ResolveSource("~/keys"))
	assert.Equal(t, "/home/user", ctx.ResolveSource("~"))
	assert.Equal(t, "/etc/hosts", ctx.ResolveSource("/etc/hosts"))
}

func TestResolveTarget(t *testing.T) {
	ctx := NewCompileContext(nil, "/cfg", "/home/user")

	assert.Equal(t, "/home/user/.bashrc", ctx.ResolveTarget("~/.bashrc"))
	assert.Equal(t, "/home/user", ctx.ResolveTarget("~"))
	assert.Equal(t, "/etc/hosts", ctx.ResolveTarget("/etc/hosts"))
	// Relative targets are left alone: they name host locations, not
	// manifest files.
	assert.Equal(t, "relative/path", ctx.ResolveTarget("relative/path"))
}
