// Package files provides the files provider for directories and
// dotfile copies.
package files

import (
	"fmt"
	"strings"
)

// Config represents the files section of the manifest.
type Config struct {
	Directories []string
	Copies      []Copy
}

// Copy represents a file (or glob of files) to copy.
type Copy struct {
	Src       string   // Source path, relative to the config root; may contain a glob in the last element
	Dest      string   // Destination path; a directory when Src is a glob
	Mode      string   // Optional file mode (e.g., "0644") applied to the destination
	DependsOn []string // Optional explicit step dependencies
}

// IsGlob reports whether the source names multiple files.
func (c Copy) IsGlob() bool {
	return strings.ContainsAny(c.Src, "*?[")
}

// ParseConfig parses the files configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Directories: make([]string, 0),
		Copies:      make([]Copy, 0),
	}

	if dirs, ok := raw["directories"]; ok {
		list, ok := dirs.([]interface{})
		if !ok {
			return nil, fmt.Errorf("directories must be a list")
		}
		for _, item := range list {
			dir, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("directories entries must be strings")
			}
			cfg.Directories = append(cfg.Directories, dir)
		}
	}

	if copies, ok := raw["copies"]; ok {
		list, ok := copies.([]interface{})
		if !ok {
			return nil, fmt.Errorf("copies must be a list")
		}
		for _, item := range list {
			cp, err := parseCopy(item)
			if err != nil {
				return nil, err
			}
			cfg.Copies = append(cfg.Copies, cp)
		}
	}

	return cfg, nil
}

func parseCopy(item interface{}) (Copy, error) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return Copy{}, fmt.Errorf("copies entries must be maps with source and target")
	}

	cp := Copy{}

	src, ok := m["source"].(string)
	if !ok || src == "" {
		return Copy{}, fmt.Errorf("copy entry missing source")
	}
	cp.Src = src

	dest, ok := m["target"].(string)
	if !ok || dest == "" {
		return Copy{}, fmt.Errorf("copy entry missing target")
	}
	cp.Dest = dest

	if mode, ok := m["mode"]; ok {
		s, ok := mode.(string)
		if !ok {
			return Copy{}, fmt.Errorf("copy mode must be a string like \"0644\"")
		}
		cp.Mode = s
	}

	if deps, ok := m["depends_on"]; ok {
		list, ok := deps.([]interface{})
		if !ok {
			return Copy{}, fmt.Errorf("depends_on must be a list")
		}
		for _, d := range list {
			id, ok := d.(string)
			if !ok {
				return Copy{}, fmt.Errorf("depends_on entries must be strings")
			}
			cp.DependsOn = append(cp.DependsOn, id)
		}
	}

	return cp, nil
}

// pathID turns a destination path into a readable step ID suffix:
// "~/.vim/colors" becomes "vim/colors".
func pathID(p string) string {
	p = strings.TrimPrefix(p, "~/")
	p = strings.TrimPrefix(p, "~")
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimLeft(p, "./")
	if p == "" {
		return "root"
	}
	return p
}
