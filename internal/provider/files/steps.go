package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/validation"
)

// DirStep creates a directory (and parents) on the host.
type DirStep struct {
	dest string
	id   step.ID
	fs   ports.FileSystem
}

// NewDirStep creates a new DirStep. dest must already be resolved.
func NewDirStep(dest, rawDest string, fs ports.FileSystem) *DirStep {
	return &DirStep{
		dest: dest,
		id:   step.MustNewID("files:dir:" + pathID(rawDest)),
		fs:   fs,
	}
}

// ID returns the step identifier.
func (s *DirStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *DirStep) DependsOn() []step.ID {
	return nil
}

// Check determines if the directory already exists.
func (s *DirStep) Check(_ context.Context) (bool, error) {
	return s.fs.IsDir(s.dest), nil
}

// Apply creates the directory and any missing parents.
func (s *DirStep) Apply(_ context.Context) error {
	if err := s.fs.MkdirAll(s.dest, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.dest, err)
	}
	return nil
}

// Summary returns a one-line description.
func (s *DirStep) Summary() string {
	return fmt.Sprintf("Create directory %s", s.dest)
}

// CopyStep copies one file into place, with an optional mode.
type CopyStep struct {
	cp        Copy
	src       string
	dest      string
	id        step.ID
	dependsOn []step.ID
	fs        ports.FileSystem
}

// NewCopyStep creates a new CopyStep. src and dest must already be
// resolved.
func NewCopyStep(cp Copy, src, dest string, dependsOn []step.ID, fs ports.FileSystem) *CopyStep {
	return &CopyStep{
		cp:        cp,
		src:       src,
		dest:      dest,
		id:        step.MustNewID("files:copy:" + pathID(cp.Dest)),
		dependsOn: dependsOn,
		fs:        fs,
	}
}

// ID returns the step identifier.
func (s *CopyStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *CopyStep) DependsOn() []step.ID {
	return s.dependsOn
}

// Check compares content hashes of source and destination.
func (s *CopyStep) Check(_ context.Context) (bool, error) {
	if !s.fs.Exists(s.dest) {
		return false, nil
	}

	srcHash, err := s.fs.FileHash(s.src)
	if err != nil {
		return false, err
	}
	destHash, err := s.fs.FileHash(s.dest)
	if err != nil {
		return false, err
	}
	if srcHash != destHash {
		return false, nil
	}

	if s.cp.Mode != "" {
		mode, err := parseMode(s.cp.Mode)
		if err != nil {
			return false, err
		}
		info, err := s.fs.GetFileInfo(s.dest)
		if err != nil {
			return false, err
		}
		if info.Mode.Perm() != mode {
			return false, nil
		}
	}

	return true, nil
}

// Apply copies the file and sets its mode.
func (s *CopyStep) Apply(_ context.Context) error {
	if err := validation.ValidatePath(s.cp.Src); err != nil {
		return fmt.Errorf("invalid source path: %w", err)
	}
	if err := validation.ValidatePath(s.cp.Dest); err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	if err := s.fs.CopyFile(s.src, s.dest); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", s.src, s.dest, err)
	}

	if s.cp.Mode != "" {
		mode, err := parseMode(s.cp.Mode)
		if err != nil {
			return err
		}
		if err := s.fs.Chmod(s.dest, mode); err != nil {
			return fmt.Errorf("failed to chmod %s: %w", s.dest, err)
		}
	}
	return nil
}

// Summary returns a one-line description.
func (s *CopyStep) Summary() string {
	return fmt.Sprintf("Copy %s to %s", s.cp.Src, s.cp.Dest)
}

// GlobStep copies every file matching a pattern into a directory.
type GlobStep struct {
	cp        Copy
	pattern   string
	destDir   string
	id        step.ID
	dependsOn []step.ID
	fs        ports.FileSystem
}

// NewGlobStep creates a new GlobStep. pattern and destDir must already
// be resolved.
func NewGlobStep(cp Copy, pattern, destDir string, dependsOn []step.ID, fs ports.FileSystem) *GlobStep {
	return &GlobStep{
		cp:        cp,
		pattern:   pattern,
		destDir:   destDir,
		id:        step.MustNewID("files:glob:" + pathID(cp.Dest)),
		dependsOn: dependsOn,
		fs:        fs,
	}
}

// ID returns the step identifier.
func (s *GlobStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *GlobStep) DependsOn() []step.ID {
	return s.dependsOn
}

// Check reports satisfied when every matched file already exists at the
// destination with identical content.
func (s *GlobStep) Check(_ context.Context) (bool, error) {
	matches, err := s.fs.Glob(s.pattern)
	if err != nil {
		return false, err
	}
	if len(matches) == 0 {
		return false, fmt.Errorf("no files match %s", s.cp.Src)
	}

	for _, src := range matches {
		dest := filepath.Join(s.destDir, filepath.Base(src))
		if !s.fs.Exists(dest) {
			return false, nil
		}
		srcHash, err := s.fs.FileHash(src)
		if err != nil {
			return false, err
		}
		destHash, err := s.fs.FileHash(dest)
		if err != nil {
			return false, err
		}
		if srcHash != destHash {
			return false, nil
		}
	}
	return true, nil
}

// Apply copies every matched file into the destination directory.
func (s *GlobStep) Apply(_ context.Context) error {
	if err := validation.ValidatePath(s.cp.Dest); err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	matches, err := s.fs.Glob(s.pattern)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %s", s.cp.Src)
	}

	for _, src := range matches {
		dest := filepath.Join(s.destDir, filepath.Base(src))
		if err := s.fs.CopyFile(src, dest); err != nil {
			return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
		}
	}
	return nil
}

// Summary returns a one-line description.
func (s *GlobStep) Summary() string {
	return fmt.Sprintf("Copy %s into %s", s.cp.Src, s.cp.Dest)
}

func parseMode(s string) (os.FileMode, error) {
	mode, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", s, err)
	}
	return os.FileMode(mode), nil
}
