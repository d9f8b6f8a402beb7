// Package filesystem provides file system adapters.
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/geozeke/shipshape/internal/ports"
)

// Real implements ports.FileSystem using actual file system operations.
type Real struct{}

// NewReal creates a new Real file system.
func NewReal() *Real {
	return &Real{}
}

// ReadFile reads a file and returns its contents.
func (fs *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file.
func (fs *Real) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Exists checks if a file or directory exists.
func (fs *Real) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir checks if a path is a directory.
func (fs *Real) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// MkdirAll creates a directory and all necessary parents.
func (fs *Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// CopyFile copies a file from src to dest, preserving the source mode.
func (fs *Real) CopyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dest, data, info.Mode())
}

// Chmod changes the mode of a file.
func (fs *Real) Chmod(path string, perm os.FileMode) error {
	return os.Chmod(path, perm)
}

// Remove removes a file or empty directory.
func (fs *Real) Remove(path string) error {
	return os.Remove(path)
}

// Glob returns the names of files matching pattern.
func (fs *Real) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// FileHash returns a SHA256 hash of a file's contents.
func (fs *Real) FileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// GetFileInfo returns metadata about a file.
func (fs *Real) GetFileInfo(path string) (ports.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.FileInfo{}, err
	}

	return ports.FileInfo{
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// Ensure Real implements ports.FileSystem.
var _ ports.FileSystem = (*Real)(nil)
