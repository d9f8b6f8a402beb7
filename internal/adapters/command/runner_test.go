package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	r := NewRealRunner()

	result, err := r.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
}

func TestRunNonZeroExit(t *testing.T) {
	r := NewRealRunner()

	result, err := r.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.NoError(t, err, "non-zero exit is a result, not an error")
	assert.Equal(t, 3, result.ExitCode)
	assert.False(t, result.Success())
	assert.Equal(t, "oops\n", result.Stderr)
}

func TestRunMissingBinary(t *testing.T) {
	r := NewRealRunner()

	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-4821")
	require.Error(t, err)
}

func TestRunInput(t *testing.T) {
	r := NewRealRunner()

	result, err := r.RunInput(context.Background(), "line one\nline two\n", "cat")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", result.Stdout)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRealRunner()
	result, err := r.Run(ctx, "sleep", "10")
	if err == nil {
		// CommandContext kills the process; some platforms surface this
		// as a non-zero exit instead of an error.
		assert.False(t, result.Success())
	} else {
		assert.True(t, strings.Contains(err.Error(), "context") || result.ExitCode != 0)
	}
}
