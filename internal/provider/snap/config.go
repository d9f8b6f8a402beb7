// Package snap provides the snap provider for snap package management
// on Ubuntu.
package snap

import "fmt"

// Config represents the snap section of the manifest.
type Config struct {
	Refresh bool
	Install []string
	Remove  []string
}

// ParseConfig parses the snap configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Install: make([]string, 0),
		Remove:  make([]string, 0),
	}

	if refresh, ok := raw["refresh"]; ok {
		b, ok := refresh.(bool)
		if !ok {
			return nil, fmt.Errorf("refresh must be a boolean")
		}
		cfg.Refresh = b
	}

	for _, key := range []string{"install", "remove"} {
		value, ok := raw[key]
		if !ok {
			continue
		}
		list, ok := value.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s must be a list", key)
		}
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings", key)
			}
			if key == "install" {
				cfg.Install = append(cfg.Install, name)
			} else {
				cfg.Remove = append(cfg.Remove, name)
			}
		}
	}

	return cfg, nil
}
