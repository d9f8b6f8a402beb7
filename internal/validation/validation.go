// Package validation provides input validation utilities to prevent
// command injection and path traversal through manifest values.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidSnapName    = errors.New("invalid snap name")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidSchemaKey   = errors.New("invalid gsettings schema or key")
	ErrInvalidDconfPath   = errors.New("invalid dconf path")
	ErrPathTraversal      = errors.New("path traversal detected")
	ErrInvalidPath        = errors.New("invalid path")
)

// Compiled regex patterns for validation.
var (
	// packageNameRegex matches valid apt package names.
	// Examples: "git", "build-essential", "python3.11", "g++"
	packageNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.+-]*$`)

	// snapNameRegex matches valid snap names.
	snapNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

	// usernameRegex matches valid POSIX usernames.
	usernameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

	// schemaKeyRegex matches gsettings schema names and keys.
	// Examples: "org.gnome.desktop.session", "idle-delay"
	schemaKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

	// dconfPathRegex matches dconf directory paths. Colons appear in
	// relocatable schema paths like /org/gnome/terminal/legacy/profiles:/.
	dconfPathRegex = regexp.MustCompile(`^/([a-zA-Z0-9_:-]+/)+$`)
)

// ValidatePackageName validates an apt package name.
func ValidatePackageName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	return nil
}

// ValidateSnapName validates a snap package name.
func ValidateSnapName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !snapNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSnapName, name)
	}
	return nil
}

// ValidateUsername validates a POSIX username.
func ValidateUsername(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !usernameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, name)
	}
	return nil
}

// ValidateSchemaKey validates a gsettings schema name or key.
func ValidateSchemaKey(s string) error {
	if s == "" {
		return ErrEmptyInput
	}
	if !schemaKeyRegex.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaKey, s)
	}
	return nil
}

// ValidateDconfPath validates a dconf directory path. Paths must be
// absolute and end with a slash, as dconf load/dump require.
func ValidateDconfPath(p string) error {
	if p == "" {
		return ErrEmptyInput
	}
	if !dconfPathRegex.MatchString(p) {
		return fmt.Errorf("%w: %q", ErrInvalidDconfPath, p)
	}
	return nil
}

// ValidatePath rejects empty paths, NUL bytes, and parent-directory
// traversal in manifest-supplied relative paths.
func ValidatePath(p string) error {
	if p == "" {
		return ErrEmptyInput
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return fmt.Errorf("%w: %q", ErrPathTraversal, p)
		}
	}
	return nil
}
