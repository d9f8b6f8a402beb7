package apt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
	"github.com/geozeke/shipshape/internal/testutil/mocks"
)

func TestCompile(t *testing.T) {
	runner := mocks.NewCommandRunner()
	p := NewProvider(runner)

	ctx := provider.NewCompileContext(map[string]interface{}{
		"apt": map[string]interface{}{
			"update": true,
			"packages": []interface{}{
				"vim",
				"tree",
			},
			"remove": []interface{}{
				"nano",
			},
		},
	}, "/cfg", "/home/user")

	steps, err := p.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 4)

	assert.Equal(t, "apt:update", steps[0].ID().String())
	assert.Equal(t, "apt:package:vim", steps[1].ID().String())
	assert.Equal(t, "apt:package:tree", steps[2].ID().String())
	assert.Equal(t, "apt:remove:nano", steps[3].ID().String())

	// Package steps depend on the index update when update is enabled.
	require.Len(t, steps[1].DependsOn(), 1)
	assert.True(t, steps[1].DependsOn()[0].Equals(UpdateStepID))
	assert.Empty(t, steps[3].DependsOn())
}

func TestCompileWithoutUpdate(t *testing.T) {
	p := NewProvider(mocks.NewCommandRunner())

	ctx := provider.NewCompileContext(map[string]interface{}{
		"apt": map[string]interface{}{
			"packages": []interface{}{"vim"},
		},
	}, "/cfg", "/home/user")

	steps, err := p.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "apt:package:vim", steps[0].ID().String())
	assert.Empty(t, steps[0].DependsOn())
}

func TestCompileNoSection(t *testing.T) {
	p := NewProvider(mocks.NewCommandRunner())

	steps, err := p.Compile(provider.NewCompileContext(map[string]interface{}{}, "/cfg", "/home/user"))
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestPackageStepCheck(t *testing.T) {
	runner := mocks.NewCommandRunner()
	s := NewPackageStep("vim", nil, runner)

	runner.AddResult("dpkg-query", []string{"-W", "-f=${db:Status-Status}", "vim"},
		ports.CommandResult{ExitCode: 0, Stdout: "installed\n"})
	satisfied, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, satisfied)

	runner.Reset()
	runner.AddResult("dpkg-query", []string{"-W", "-f=${db:Status-Status}", "vim"},
		ports.CommandResult{ExitCode: 1, Stderr: "no packages found matching vim"})
	satisfied, err = s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, satisfied)
}

func TestPackageStepApply(t *testing.T) {
	runner := mocks.NewCommandRunner()
	s := NewPackageStep("vim", nil, runner)

	runner.AddResult("sudo", []string{"apt-get", "install", "-y", "vim"},
		ports.CommandResult{ExitCode: 0})
	require.NoError(t, s.Apply(context.Background()))

	runner.Reset()
	runner.AddResult("sudo", []string{"apt-get", "install", "-y", "vim"},
		ports.CommandResult{ExitCode: 100, Stderr: "E: Unable to locate package vim"})
	err := s.Apply(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-get install vim failed")
}

func TestPackageStepApplyRejectsBadName(t *testing.T) {
	s := NewPackageStep("vim", nil, mocks.NewCommandRunner())
	s.pkg = "vim; rm -rf /"

	err := s.Apply(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid package name")
}

func TestRemoveStepCheck(t *testing.T) {
	runner := mocks.NewCommandRunner()
	s := NewRemoveStep("nano", runner)

	// Not in the dpkg database at all: already absent.
	runner.AddResult("dpkg-query", []string{"-W", "-f=${db:Status-Status}", "nano"},
		ports.CommandResult{ExitCode: 1})
	satisfied, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, satisfied)

	runner.Reset()
	runner.AddResult("dpkg-query", []string{"-W", "-f=${db:Status-Status}", "nano"},
		ports.CommandResult{ExitCode: 0, Stdout: "installed\n"})
	satisfied, err = s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, satisfied)
}

func TestUpdateStepAlwaysRuns(t *testing.T) {
	s := NewUpdateStep(mocks.NewCommandRunner())
	satisfied, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, satisfied)
}
