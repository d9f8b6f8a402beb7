package docker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
	"github.com/geozeke/shipshape/internal/testutil/mocks"
)

func TestCompileFull(t *testing.T) {
	p := NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem())

	ctx := provider.NewCompileContext(map[string]interface{}{
		"docker": map[string]interface{}{
			"compose": true,
			"user":    "vmuser",
		},
	}, "/cfg", "/home/user")

	steps, err := p.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 6)

	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID().String()
	}
	assert.Equal(t, []string{
		"docker:keyring",
		"docker:repo",
		"docker:apt-update",
		"docker:engine",
		"docker:compose",
		"docker:group",
	}, ids)

	// The chain: repo needs keyring, update needs repo, engine needs
	// update, compose and group hang off the engine.
	assert.True(t, steps[1].DependsOn()[0].Equals(KeyringStepID))
	assert.True(t, steps[2].DependsOn()[0].Equals(RepoStepID))
	assert.True(t, steps[3].DependsOn()[0].Equals(UpdateStepID))
	assert.True(t, steps[4].DependsOn()[0].Equals(EngineStepID))
	assert.True(t, steps[5].DependsOn()[0].Equals(EngineStepID))
}

func TestCompileMinimal(t *testing.T) {
	p := NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem())

	ctx := provider.NewCompileContext(map[string]interface{}{
		"docker": map[string]interface{}{},
	}, "/cfg", "/home/user")

	steps, err := p.Compile(ctx)
	require.NoError(t, err)
	require.Len(t, steps, 4, "no compose or group steps without config")
}

func TestCompileNoSection(t *testing.T) {
	p := NewProvider(mocks.NewCommandRunner(), mocks.NewFileSystem())

	steps, err := p.Compile(provider.NewCompileContext(nil, "/cfg", "/home/user"))
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestKeyringStep(t *testing.T) {
	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	s := NewKeyringStep(runner, fs)

	satisfied, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, satisfied)

	fs.AddFile(keyringPath, "binary keyring")
	satisfied, err = s.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, satisfied)

	runner.AddResult("curl", []string{"-fsSL", gpgKeyURL},
		ports.CommandResult{ExitCode: 0, Stdout: "-----BEGIN PGP PUBLIC KEY BLOCK-----"})
	runner.AddResult("sudo", []string{"gpg", "--dearmor", "-o", keyringPath},
		ports.CommandResult{ExitCode: 0})
	require.NoError(t, s.Apply(context.Background()))

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Contains(t, calls[1].Input, "PGP PUBLIC KEY", "fetched key must be piped into gpg")
}

func TestRepoStepApply(t *testing.T) {
	runner := mocks.NewCommandRunner()
	s := NewRepoStep(runner, mocks.NewFileSystem())

	runner.AddResult("dpkg", []string{"--print-architecture"},
		ports.CommandResult{ExitCode: 0, Stdout: "amd64\n"})
	runner.AddResult("lsb_release", []string{"-cs"},
		ports.CommandResult{ExitCode: 0, Stdout: "noble\n"})
	runner.AddResult("sudo", []string{"tee", repoListPath},
		ports.CommandResult{ExitCode: 0})

	require.NoError(t, s.Apply(context.Background()))

	calls := runner.Calls()
	require.Len(t, calls, 3)
	assert.Contains(t, calls[2].Input, "deb [arch=amd64 signed-by="+keyringPath+"]")
	assert.Contains(t, calls[2].Input, "noble stable")
}

func TestEngineStepCheck(t *testing.T) {
	runner := mocks.NewCommandRunner()
	s := NewEngineStep(runner)

	// All packages installed.
	for _, pkg := range []string{"docker-ce", "docker-ce-cli", "containerd.io"} {
		runner.AddResult("dpkg-query", []string{"-W", "-f=${db:Status-Status}", pkg},
			ports.CommandResult{ExitCode: 0, Stdout: "installed\n"})
	}
	satisfied, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, satisfied)

	// One package missing.
	runner.Reset()
	runner.AddResult("dpkg-query", []string{"-W", "-f=${db:Status-Status}", "docker-ce"},
		ports.CommandResult{ExitCode: 1})
	satisfied, err = s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, satisfied)
}

func TestGroupStep(t *testing.T) {
	runner := mocks.NewCommandRunner()
	s := NewGroupStep("vmuser", runner)

	runner.AddResult("id", []string{"-nG", "vmuser"},
		ports.CommandResult{ExitCode: 0, Stdout: "vmuser adm sudo docker\n"})
	satisfied, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, satisfied)

	runner.Reset()
	runner.AddResult("id", []string{"-nG", "vmuser"},
		ports.CommandResult{ExitCode: 0, Stdout: "vmuser adm sudo\n"})
	satisfied, err = s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, satisfied)

	runner.AddResult("sudo", []string{"usermod", "-aG", "docker", "vmuser"},
		ports.CommandResult{ExitCode: 0})
	require.NoError(t, s.Apply(context.Background()))
}

func TestGroupStepRejectsBadUsername(t *testing.T) {
	s := NewGroupStep("vm user", mocks.NewCommandRunner())

	err := s.Apply(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username")
}
