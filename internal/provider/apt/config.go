// Package apt provides the apt provider for package management on
// Debian/Ubuntu.
package apt

import (
	"fmt"
)

// Config represents the apt section of the manifest.
type Config struct {
	Update   bool
	Packages []string
	Remove   []string
}

// ParseConfig parses the apt configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{
		Packages: make([]string, 0),
		Remove:   make([]string, 0),
	}

	if update, ok := raw["update"]; ok {
		b, ok := update.(bool)
		if !ok {
			return nil, fmt.Errorf("update must be a boolean")
		}
		cfg.Update = b
	}

	packages, err := parseNameList(raw, "packages")
	if err != nil {
		return nil, err
	}
	cfg.Packages = packages

	remove, err := parseNameList(raw, "remove")
	if err != nil {
		return nil, err
	}
	cfg.Remove = remove

	return cfg, nil
}

func parseNameList(raw map[string]interface{}, key string) ([]string, error) {
	names := make([]string, 0)
	value, ok := raw[key]
	if !ok {
		return names, nil
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
		names = append(names, name)
	}
	return names, nil
}
