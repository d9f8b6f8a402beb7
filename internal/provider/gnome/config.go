package gnome

import (
	"fmt"
)

// Setting is a single gsettings key assignment.
type Setting struct {
	Schema string
	Key    string
	Value  string
}

// Keyfile is a dconf subtree loaded from a keyfile on disk.
type Keyfile struct {
	Path string
	Src  string
}

// Config holds the gnome section of a manifest.
type Config struct {
	Settings []Setting
	Keyfiles []Keyfile
}

// ParseConfig extracts gnome configuration from raw manifest data.
func ParseConfig(raw map[string]interface{}) (Config, error) {
	var cfg Config

	if rawSettings, ok := raw["gsettings"]; ok {
		list, ok := rawSettings.([]interface{})
		if !ok {
			return cfg, fmt.Errorf("gsettings must be a list")
		}
		for i, item := range list {
			setting, err := parseSetting(item)
			if err != nil {
				return cfg, fmt.Errorf("gsettings[%d]: %w", i, err)
			}
			cfg.Settings = append(cfg.Settings, setting)
		}
	}

	if rawKeyfiles, ok := raw["dconf"]; ok {
		list, ok := rawKeyfiles.([]interface{})
		if !ok {
			return cfg, fmt.Errorf("dconf must be a list")
		}
		for i, item := range list {
			kf, err := parseKeyfile(item)
			if err != nil {
				return cfg, fmt.Errorf("dconf[%d]: %w", i, err)
			}
			cfg.Keyfiles = append(cfg.Keyfiles, kf)
		}
	}

	return cfg, nil
}

func parseSetting(item interface{}) (Setting, error) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return Setting{}, fmt.Errorf("entry must be a map")
	}

	schema, ok := m["schema"].(string)
	if !ok || schema == "" {
		return Setting{}, fmt.Errorf("schema is required")
	}
	key, ok := m["key"].(string)
	if !ok || key == "" {
		return Setting{}, fmt.Errorf("key is required")
	}
	value, ok := m["value"]
	if !ok {
		return Setting{}, fmt.Errorf("value is required")
	}

	return Setting{
		Schema: schema,
		Key:    key,
		Value:  fmt.Sprintf("%v", value),
	}, nil
}

func parseKeyfile(item interface{}) (Keyfile, error) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return Keyfile{}, fmt.Errorf("entry must be a map")
	}

	path, ok := m["path"].(string)
	if !ok || path == "" {
		return Keyfile{}, fmt.Errorf("path is required")
	}
	src, ok := m["keyfile"].(string)
	if !ok || src == "" {
		return Keyfile{}, fmt.Errorf("keyfile is required")
	}

	return Keyfile{Path: path, Src: src}, nil
}
