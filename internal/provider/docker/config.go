package docker

import (
	"fmt"
)

// Config holds the docker section of a manifest.
type Config struct {
	// Compose installs the compose plugin alongside the engine.
	Compose bool

	// User is added to the docker group. Empty skips group membership.
	User string
}

// ParseConfig extracts docker configuration from raw manifest data.
func ParseConfig(raw map[string]interface{}) (Config, error) {
	var cfg Config

	if v, ok := raw["compose"]; ok {
		b, ok := v.(bool)
		if !ok {
			return cfg, fmt.Errorf("compose must be a boolean")
		}
		cfg.Compose = b
	}

	if v, ok := raw["user"]; ok {
		s, ok := v.(string)
		if !ok {
			return cfg, fmt.Errorf("user must be a string")
		}
		cfg.User = s
	}

	return cfg, nil
}
