// Package config loads the translator's project-level settings from a
// nodetranslator.toml manifest, the way cmd/surge locates and parses
// surge.toml: walk upward from a starting directory looking for the file,
// then decode it with BurntSushi/toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const manifestName = "nodetranslator.toml"

// Config is the decoded manifest.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Build  BuildConfig  `toml:"build"`
	Output OutputConfig `toml:"output"`
}

// CacheConfig controls the on-disk cache of translated layouts.
type CacheConfig struct {
	Dir     string `toml:"dir"`
	Disable bool   `toml:"disable"`
}

// BuildConfig controls how a batch of structs is translated.
type BuildConfig struct {
	Jobs           int `toml:"jobs"`
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// OutputConfig controls rendering of translated layouts.
type OutputConfig struct {
	Color string `toml:"color"` // auto|on|off
	Table bool   `toml:"table"`
}

// Default returns the configuration used when no manifest is found.
func Default() *Config {
	return &Config{
		Build: BuildConfig{Jobs: 0, MaxDiagnostics: 100},
		Output: OutputConfig{Color: "auto"},
	}
}

// Find walks upward from startDir looking for nodetranslator.toml, the same
// way findSurgeToml walks for surge.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the manifest reachable from startDir, falling back
// to Default() if none exists.
func Load(startDir string) (*Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, "", fmt.Errorf("decode %q: %w", path, err)
	}
	return cfg, path, nil
}
