// Package config loads the optional diffrec configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jamesharris-garmin/diffrec/fs"
	"gopkg.in/yaml.v3"
)

// Config holds user-level settings. Flags override file values.
type Config struct {
	// GitBin is the git executable name or path.
	GitBin string `yaml:"git_bin"`

	// Model is the Gemini model used for summaries.
	Model string `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{GitBin: "git"}
}

// DefaultPath returns the standard location of the config file.
func DefaultPath() string {
	return filepath.Join(fs.DefaultConfigDir(), "config.yaml")
}

// Load reads the config file at path. A missing file is not an error
// and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.GitBin == "" {
		cfg.GitBin = "git"
	}
	return cfg, nil
}
