// Package config handles dotkit configuration files.
//
// Settings are read from, in order: an explicit path, the nearest
// .dotkit.yaml above the working directory, and the user config at
// $XDG_CONFIG_HOME/dotkit/config.yaml. Built-in defaults fill anything unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/jaspreet-dot-casa/dotkit/pkg/project"
)

const (
	// ConfigDirName is the name of the user config directory.
	ConfigDirName = "dotkit"
	// ConfigFileName is the name of the user config file.
	ConfigFileName = "config.yaml"
)

// ErrExists is returned by Save when the file exists and overwrite is false.
var ErrExists = errors.New("config file already exists")

// Config holds the defaults applied to every command.
type Config struct {
	Target                string   `yaml:"target" default:".env"`
	Source                string   `yaml:"source" default:".env.example"`
	Length                int      `yaml:"length" default:"32"`
	Format                string   `yaml:"format" default:"hex"`
	OverwriteEmptyValues  *bool    `yaml:"overwrite_empty_values" default:"true"`
	SkipEmptySourceValues bool     `yaml:"skip_empty_source_values"`
	Only                  []string `yaml:"only,omitempty"`
	Generate              []string `yaml:"generate,omitempty"`

	path string
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config: bad defaults: %v", err))
	}
	return cfg
}

// Path returns the file the config was loaded from, or "" for built-in defaults.
func (c *Config) Path() string {
	return c.path
}

// OverwriteEmpty returns the effective overwrite_empty_values setting.
func (c *Config) OverwriteEmpty() bool {
	return c.OverwriteEmptyValues == nil || *c.OverwriteEmptyValues
}

// UserConfigPath returns $XDG_CONFIG_HOME/dotkit/config.yaml.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, ConfigDirName, ConfigFileName)
}

// Load loads the config. An empty explicit path searches the project and
// user locations and falls back to Default when neither exists.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		return ReadFile(explicit)
	}

	path, err := project.FindConfigFromCwd()
	if err == nil {
		return ReadFile(path)
	}
	if !errors.Is(err, project.ErrNotFound) {
		return nil, fmt.Errorf("failed to search for project config: %w", err)
	}

	userPath := UserConfigPath()
	if _, err := os.Stat(userPath); err == nil {
		return ReadFile(userPath)
	}

	return Default(), nil
}

// ReadFile parses the config file at path.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	cfg.path = path
	return cfg, nil
}

// Save writes the config to path. Existing files are kept unless overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.path = path
	return nil
}
