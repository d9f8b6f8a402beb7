// Package config loads the shipshape manifest.
//
// The manifest is a single YAML file whose top-level keys are provider
// sections (apt, snap, files, gnome, docker, shell). Each provider parses
// its own section; this package only loads the raw document and resolves
// the config root for relative paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the manifest looked for when --config is not given.
const DefaultFile = "shipshape.yaml"

// Manifest is a loaded provisioning manifest.
type Manifest struct {
	raw  map[string]interface{}
	root string
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}

	return &Manifest{raw: raw, root: root}, nil
}

// Raw returns the parsed manifest document.
func (m *Manifest) Raw() map[string]interface{} {
	return m.raw
}

// Root returns the directory containing the manifest. Relative source
// paths in the manifest are resolved against it.
func (m *Manifest) Root() string {
	return m.root
}
