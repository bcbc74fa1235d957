// Package config loads launcher settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	appName   = "compass"
	envPrefix = "COMPASS_"

	// DefaultTemplate is the cookiecutter template used for new projects
	DefaultTemplate = "https://github.com/roman-right/py-template"
)

// Config holds every recognised option
type Config struct {
	IDECommands  []string  `koanf:"ide_commands" yaml:"ide_commands"`
	ProjectsPath string    `koanf:"projects_path" yaml:"projects_path"`
	Cookiecutter string    `koanf:"cookiecutter" yaml:"cookiecutter"`
	CreateVenv   bool      `koanf:"create_venv" yaml:"create_venv"`
	DatabasePath string    `koanf:"database_path" yaml:"database_path"`
	Log          LogConfig `koanf:"log" yaml:"log"`
}

// LogConfig controls the log file
type LogConfig struct {
	Path  string `koanf:"path" yaml:"path"`
	Level string `koanf:"level" yaml:"level"`
}

// BaseDir returns the directory holding the config file, database and logs.
// XDG_CONFIG_HOME is honoured; otherwise ~/.config is used.
func BaseDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// DefaultPath returns the config file path from the COMPASS_CONFIG env var,
// falling back to config.yaml under BaseDir.
func DefaultPath() string {
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p
	}
	return filepath.Join(BaseDir(), "config.yaml")
}

// Default returns the built-in configuration
func Default() *Config {
	base := BaseDir()
	return &Config{
		IDECommands:  []string{"pycharm"},
		ProjectsPath: "~/Projects",
		Cookiecutter: DefaultTemplate,
		CreateVenv:   true,
		DatabasePath: filepath.Join(base, "data.db"),
		Log: LogConfig{
			Path:  filepath.Join(base, "logs", appName+".log"),
			Level: "info",
		},
	}
}

// Load reads configuration with precedence (highest first):
//  1. COMPASS_* environment variables (COMPASS_PROJECTS_PATH, COMPASS_LOG_LEVEL, ...)
//  2. the YAML file at path (skipped when it does not exist)
//  3. Default()
//
// An empty path means DefaultPath().
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	k := koanf.New(".")

	defaults, err := yamlv3.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envKey maps COMPASS_LOG_LEVEL to log.level and COMPASS_IDE_COMMANDS to
// ide_commands. List values are comma separated.
func envKey(key, value string) (string, any) {
	name := strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if name == "config" {
		return "", nil
	}
	if rest, ok := strings.CutPrefix(name, "log_"); ok {
		name = "log." + rest
	}
	if name == "ide_commands" {
		var commands []string
		for _, c := range strings.Split(value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				commands = append(commands, c)
			}
		}
		return name, commands
	}
	return name, value
}

func (c *Config) expandPaths() error {
	var err error
	if c.ProjectsPath, err = ExpandPath(c.ProjectsPath); err != nil {
		return fmt.Errorf("projects_path: %w", err)
	}
	if c.DatabasePath, err = ExpandPath(c.DatabasePath); err != nil {
		return fmt.Errorf("database_path: %w", err)
	}
	if c.Log.Path, err = ExpandPath(c.Log.Path); err != nil {
		return fmt.Errorf("log.path: %w", err)
	}
	return nil
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if len(c.IDECommands) == 0 {
		return errors.New("ide_commands must list at least one command")
	}
	for i, cmd := range c.IDECommands {
		if strings.TrimSpace(cmd) == "" {
			return fmt.Errorf("ide_commands[%d] is empty", i)
		}
	}
	if c.DatabasePath == "" {
		return errors.New("database_path is required")
	}
	return nil
}

// ExpandPath resolves "~", "~/..." and the literal "HOME" to the user's home
// directory. Other paths are returned unchanged.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	if path == "~" || path == "HOME" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		if path == "~" || path == "HOME" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}

	if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("~username expansion is not supported: %s", path)
	}
	return path, nil
}

// WriteDefault writes the built-in configuration to path. An existing file is
// only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s: %w", path, os.ErrExist)
		}
	}

	content, err := yamlv3.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
