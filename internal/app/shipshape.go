// Package app wires adapters, providers, planner and runner into the
// shipshape application.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/geozeke/shipshape/internal/adapters/command"
	"github.com/geozeke/shipshape/internal/adapters/filesystem"
	"github.com/geozeke/shipshape/internal/config"
	"github.com/geozeke/shipshape/internal/domain/planner"
	"github.com/geozeke/shipshape/internal/domain/runner"
	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/provider"
	"github.com/geozeke/shipshape/internal/provider/apt"
	"github.com/geozeke/shipshape/internal/provider/docker"
	"github.com/geozeke/shipshape/internal/provider/files"
	"github.com/geozeke/shipshape/internal/provider/gnome"
	"github.com/geozeke/shipshape/internal/provider/shell"
	"github.com/geozeke/shipshape/internal/provider/snap"
	"github.com/geozeke/shipshape/internal/runlog"
)

// Shipshape is the main application orchestrator.
type Shipshape struct {
	compiler *provider.Compiler
	planner  *planner.Planner
	logger   ports.Logger
	out      io.Writer
	styles   styles
}

// New creates a new Shipshape application writing human output to out.
func New(out io.Writer, logger ports.Logger) *Shipshape {
	cmdRunner := command.NewRealRunner()
	fs := filesystem.NewReal()

	comp := provider.NewCompiler()
	comp.RegisterProvider(apt.NewProvider(cmdRunner))
	comp.RegisterProvider(snap.NewProvider(cmdRunner))
	comp.RegisterProvider(files.NewProvider(fs))
	comp.RegisterProvider(gnome.NewProvider(cmdRunner, fs))
	comp.RegisterProvider(docker.NewProvider(cmdRunner, fs))
	comp.RegisterProvider(shell.NewProvider(cmdRunner, fs))

	return &Shipshape{
		compiler: comp,
		planner:  planner.New(),
		logger:   logger,
		out:      out,
		styles:   defaultStyles(),
	}
}

// Compile loads the manifest and compiles it into a step registry.
func (s *Shipshape) Compile(configPath string) (*step.Registry, error) {
	manifest, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	ctx := provider.NewCompileContext(manifest.Raw(), manifest.Root(), home)
	reg, err := s.compiler.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile manifest: %w", err)
	}
	return reg, nil
}

// Plan compiles the manifest and orders the selected steps. An empty
// selection plans every step.
func (s *Shipshape) Plan(configPath string, selected []string) (*planner.Plan, error) {
	reg, err := s.Compile(configPath)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.Plan(reg, selected)
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}
	return plan, nil
}

// RunOptions control a Run invocation.
type RunOptions struct {
	DryRun        bool
	StopOnFailure bool

	// LogPath overrides the run log location. Empty means the default
	// (~/.local/state/shipshape/run.log).
	LogPath string
}

// Run executes the plan, appending every result to the run log.
func (s *Shipshape) Run(ctx context.Context, plan *planner.Plan, opts RunOptions) ([]step.Result, error) {
	logPath := opts.LogPath
	if logPath == "" {
		var err error
		logPath, err = runlog.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	writer, err := runlog.NewWriter(logPath, opts.DryRun)
	if err != nil {
		return nil, err
	}
	defer func() { _ = writer.Close() }()

	run := runner.New(
		runner.WithSink(writer),
		runner.WithLogger(s.logger),
	)

	return run.Run(ctx, plan, runner.Options{
		DryRun:        opts.DryRun,
		StopOnFailure: opts.StopOnFailure,
	})
}

// History reads the last n run log entries. n <= 0 means all.
func (s *Shipshape) History(logPath string, n int) ([]runlog.Entry, error) {
	if logPath == "" {
		var err error
		logPath, err = runlog.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return runlog.Tail(logPath, n)
}
