// Package config handles javelin.toml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file name.
const FileName = "javelin.toml"

// Config is a parsed javelin.toml.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Explore ExploreConfig `toml:"explore"`
	Trace   TraceConfig   `toml:"trace"`
	Hooks   HooksConfig   `toml:"hooks"`

	// Dir is the directory containing the config file (set at load time).
	Dir string `toml:"-"`
}

// EngineConfig configures the execution engine.
type EngineConfig struct {
	// StrictTranslation makes untranslatable statements fatal.
	StrictTranslation bool `toml:"strict-translation"`
	// WordBits is the machine word width.
	WordBits uint `toml:"word-bits"`
}

// ExploreConfig configures path exploration.
type ExploreConfig struct {
	MaxSteps int `toml:"max-steps"`
	Workers  int `toml:"workers"`
}

// TraceConfig configures the telemetry store.
type TraceConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// HooksConfig configures built-in procedure substitution.
type HooksConfig struct {
	// Disabled lists class names whose substitutes are not installed.
	Disabled []string `toml:"disabled"`
}

// Default returns the configuration used when no javelin.toml exists.
func Default() Config {
	return Config{
		Engine:  EngineConfig{WordBits: 64},
		Explore: ExploreConfig{MaxSteps: 10000},
		Trace:   TraceConfig{Path: "javelin-trace.db"},
	}
}

// Load parses a javelin.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	if c.Engine.WordBits == 0 {
		c.Engine.WordBits = 64
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find a javelin.toml, then loads
// it. Returns the defaults if no config file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			c := Default()
			return &c, nil
		}
		dir = parent
	}
}
