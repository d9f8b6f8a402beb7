package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geozeke/shipshape/internal/ports"
)

func TestConsoleTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(WithOutput(&buf))

	l.Info(context.Background(), "step succeeded", ports.F("step", "apt:update"))

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "step succeeded")
	assert.Contains(t, line, "step=apt:update")
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(WithOutput(&buf), WithLevel(ports.LevelInfo))

	l.Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(ports.LevelDebug)
	l.Debug(context.Background(), "visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestConsoleJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(WithOutput(&buf), WithJSONFormat(true))

	l.Error(context.Background(), "step failed",
		ports.F("step", "apt:package:vim"),
		ports.F("detail", "apply failed"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "step failed", entry["msg"])
	assert.Equal(t, "apt:package:vim", entry["step"])
}

func TestConsoleWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(WithOutput(&buf))

	child := l.With(ports.F("run", "abc123"))
	child.Info(context.Background(), "started")

	assert.Contains(t, buf.String(), "run=abc123")

	// The parent is unaffected.
	buf.Reset()
	l.Info(context.Background(), "no fields")
	assert.False(t, strings.Contains(buf.String(), "run=abc123"))
}

func TestNopLoggerDiscards(t *testing.T) {
	l := NewNop()
	// Must not panic and must keep satisfying the interface through With.
	l.Info(context.Background(), "ignored")
	l.With(ports.F("k", "v")).Error(context.Background(), "ignored")
}
