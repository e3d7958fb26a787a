// Package config loads luci's optional .lucirc file and layers LUCI_*
// environment variable overrides on top of it. This is a separate concern
// from the CLI flags internal/maincmd.Cmd parses via mainer.Parser: flags
// given explicitly on the command line always win, and mainer's own
// EnvVars/EnvPrefix handling already covers flag-backed settings, so
// Config only carries settings that have no CLI flag equivalent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// FileName is the config file luci looks for, first in the current
// directory and then in the user's home directory.
const FileName = ".lucirc"

// Config holds settings sourced from a .lucirc YAML file, each overridable
// by its LUCI_* environment variable.
type Config struct {
	// MaxSteps bounds the number of bytecode instructions a single Thread
	// will execute before aborting, guarding the REPL and one-shot runs
	// against runaway loops. Zero means unbounded.
	MaxSteps uint64 `yaml:"max_steps" env:"LUCI_MAX_STEPS"`
	// HistoryFile is the readline history file path used by the REPL.
	HistoryFile string `yaml:"history_file" env:"LUCI_HISTORY_FILE"`
	// HistorySize caps the number of lines readline keeps in that history.
	HistorySize int `yaml:"history_size" env:"LUCI_HISTORY_SIZE"`
}

// Resolve returns the first of ./.lucirc and $HOME/.lucirc that exists, or
// "" if neither does, in which case Load returns the zero Config (still
// subject to LUCI_* overrides).
func Resolve() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads the YAML config file at path, if any, then applies LUCI_*
// environment variable overrides. An empty path (no .lucirc found) is not
// an error: the zero Config is used as the env-override base.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: applying environment overrides: %w", err)
	}
	return &cfg, nil
}
