// Package config loads memfs settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"memfs/internal/fs"
	"memfs/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("config")
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	// FileName is looked up in the working directory when no path is given.
	FileName = "memfs.yaml"
	// EnvConfig names an explicit config file.
	EnvConfig = "MEMFS_CONFIG"
)

// Color modes for shell output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings of one memfs session.
type Config struct {
	RootName string `yaml:"root_name"`
	Prompt   string `yaml:"prompt"`
	Color    string `yaml:"color"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		RootName: fs.DefaultRootName,
		Prompt:   "memfs> ",
		Color:    ColorAuto,
	}
}

// ResolvePath picks the config file: the explicit path if set, then
// $MEMFS_CONFIG, then memfs.yaml in the working directory. A leading ~ is
// expanded and relative paths are resolved against the working directory.
func ResolvePath(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = FileName
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand config path %q: %w", path, err)
	}

	if !filepath.IsAbs(expanded) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		expanded = filepath.Join(cwd, expanded)
	}
	logger.Debug("Resolved config path: %s", expanded)
	return expanded, nil
}

// Load reads the config file at path. Fields missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	logger.Debug("Loaded config from %s", path)
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		logger.Debug("No config at %s, using defaults", path)
		return Default(), nil
	}
	return cfg, err
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	if c.RootName == "" {
		c.RootName = fs.DefaultRootName
	}
	return nil
}
