package gnome

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/geozeke/shipshape/internal/domain/step"
	"github.com/geozeke/shipshape/internal/ports"
	"github.com/geozeke/shipshape/internal/validation"
)

// SettingStep sets one gsettings key.
type SettingStep struct {
	setting Setting
	id      step.ID
	runner  ports.CommandRunner
}

// NewSettingStep creates a new SettingStep.
func NewSettingStep(setting Setting, runner ports.CommandRunner) *SettingStep {
	return &SettingStep{
		setting: setting,
		id:      step.MustNewID("gnome:gsettings:" + setting.Schema + ":" + setting.Key),
		runner:  runner,
	}
}

// ID returns the step identifier.
func (s *SettingStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *SettingStep) DependsOn() []step.ID {
	return nil
}

// Check determines if the key already holds the desired value.
func (s *SettingStep) Check(ctx context.Context) (bool, error) {
	result, err := s.runner.Run(ctx, "gsettings", "get", s.setting.Schema, s.setting.Key)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, fmt.Errorf("gsettings get %s %s failed: %s",
			s.setting.Schema, s.setting.Key, strings.TrimSpace(result.Stderr))
	}
	return strings.TrimSpace(result.Stdout) == s.setting.Value, nil
}

// Apply sets the key.
func (s *SettingStep) Apply(ctx context.Context) error {
	if err := validation.ValidateSchemaKey(s.setting.Schema); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	if err := validation.ValidateSchemaKey(s.setting.Key); err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}

	result, err := s.runner.Run(ctx, "gsettings", "set", s.setting.Schema, s.setting.Key, s.setting.Value)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("gsettings set %s %s failed: %s",
			s.setting.Schema, s.setting.Key, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *SettingStep) Summary() string {
	return fmt.Sprintf("Set %s %s to %s", s.setting.Schema, s.setting.Key, s.setting.Value)
}

// KeyfileStep loads a dconf keyfile into a settings subtree.
type KeyfileStep struct {
	kf     Keyfile
	src    string
	id     step.ID
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewKeyfileStep creates a new KeyfileStep. src must already be resolved.
func NewKeyfileStep(kf Keyfile, src string, runner ports.CommandRunner, fs ports.FileSystem) *KeyfileStep {
	return &KeyfileStep{
		kf:     kf,
		src:    src,
		id:     step.MustNewID("gnome:dconf:" + dconfID(kf.Path)),
		runner: runner,
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *KeyfileStep) ID() step.ID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *KeyfileStep) DependsOn() []step.ID {
	return nil
}

// Check dumps the current subtree and reports satisfied when every key
// in the keyfile already holds its desired value. Keys outside the
// keyfile are ignored, matching dconf load semantics.
func (s *KeyfileStep) Check(ctx context.Context) (bool, error) {
	desired, err := s.loadDesired()
	if err != nil {
		return false, err
	}

	result, err := s.runner.Run(ctx, "dconf", "dump", s.kf.Path)
	if err != nil {
		return false, err
	}
	if !result.Success() {
		return false, fmt.Errorf("dconf dump %s failed: %s", s.kf.Path, strings.TrimSpace(result.Stderr))
	}

	current, err := ini.Load([]byte(result.Stdout))
	if err != nil {
		return false, fmt.Errorf("failed to parse dconf dump output: %w", err)
	}

	for _, section := range desired.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		got, err := current.GetSection(section.Name())
		if err != nil {
			return false, nil
		}
		for _, key := range section.Keys() {
			gotKey, err := got.GetKey(key.Name())
			if err != nil {
				return false, nil
			}
			if gotKey.Value() != key.Value() {
				return false, nil
			}
		}
	}
	return true, nil
}

// Apply feeds the keyfile to dconf load.
func (s *KeyfileStep) Apply(ctx context.Context) error {
	if err := validation.ValidateDconfPath(s.kf.Path); err != nil {
		return fmt.Errorf("invalid dconf path: %w", err)
	}

	data, err := s.fs.ReadFile(s.src)
	if err != nil {
		return fmt.Errorf("failed to read keyfile %s: %w", s.src, err)
	}

	result, err := s.runner.RunInput(ctx, string(data), "dconf", "load", s.kf.Path)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("dconf load %s failed: %s", s.kf.Path, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Summary returns a one-line description.
func (s *KeyfileStep) Summary() string {
	return fmt.Sprintf("Load dconf keyfile %s into %s", s.kf.Src, s.kf.Path)
}

func (s *KeyfileStep) loadDesired() (*ini.File, error) {
	data, err := s.fs.ReadFile(s.src)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyfile %s: %w", s.src, err)
	}
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keyfile %s: %w", s.src, err)
	}
	return f, nil
}

// dconfID turns a dconf path into a step ID fragment. Slashes are kept
// as segment separators; colons (relocatable schema markers) are dropped.
func dconfID(p string) string {
	p = strings.Trim(p, "/")
	p = strings.ReplaceAll(p, ":", "")
	p = strings.Trim(p, "/")
	if p == "" {
		return "root"
	}
	return p
}
