package shell

import (
	"fmt"
)

// Command is a single manifest-defined shell step.
type Command struct {
	// ID names the step. Required so other steps can depend on it.
	ID string

	// Run is the command line, executed with sh -c.
	Run string

	// Check is an optional probe command. Exit 0 marks the step
	// satisfied. Ignored when Creates is set.
	Check string

	// Creates is an optional path. The step is satisfied once it exists.
	Creates string

	// Sudo runs the command under sudo.
	Sudo bool

	DependsOn []string
}

// Config holds the shell section of a manifest.
type Config struct {
	Commands []Command
}

// ParseConfig extracts shell configuration from raw manifest data.
func ParseConfig(raw map[string]interface{}) (Config, error) {
	var cfg Config

	rawCommands, ok := raw["commands"]
	if !ok {
		return cfg, nil
	}
	list, ok := rawCommands.([]interface{})
	if !ok {
		return cfg, fmt.Errorf("commands must be a list")
	}

	for i, item := range list {
		cmd, err := parseCommand(item)
		if err != nil {
			return cfg, fmt.Errorf("commands[%d]: %w", i, err)
		}
		cfg.Commands = append(cfg.Commands, cmd)
	}

	return cfg, nil
}

func parseCommand(item interface{}) (Command, error) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return Command{}, fmt.Errorf("entry must be a map")
	}

	var cmd Command

	id, ok := m["id"].(string)
	if !ok || id == "" {
		return cmd, fmt.Errorf("id is required")
	}
	cmd.ID = id

	run, ok := m["run"].(string)
	if !ok || run == "" {
		return cmd, fmt.Errorf("run is required")
	}
	cmd.Run = run

	if v, ok := m["check"]; ok {
		s, ok := v.(string)
		if !ok {
			return cmd, fmt.Errorf("check must be a string")
		}
		cmd.Check = s
	}

	if v, ok := m["creates"]; ok {
		s, ok := v.(string)
		if !ok {
			return cmd, fmt.Errorf("creates must be a string")
		}
		cmd.Creates = s
	}

	if v, ok := m["sudo"]; ok {
		b, ok := v.(bool)
		if !ok {
			return cmd, fmt.Errorf("sudo must be a boolean")
		}
		cmd.Sudo = b
	}

	if v, ok := m["depends_on"]; ok {
		list, ok := v.([]interface{})
		if !ok {
			return cmd, fmt.Errorf("depends_on must be a list")
		}
		for _, dep := range list {
			s, ok := dep.(string)
			if !ok || s == "" {
				return cmd, fmt.Errorf("depends_on entries must be non-empty strings")
			}
			cmd.DependsOn = append(cmd.DependsOn, s)
		}
	}

	return cmd, nil
}
