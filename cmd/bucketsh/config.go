package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds REPL defaults loadable from a HuJSON file.
type Config struct {
	DefaultCapacity int    `json:"default_capacity"`
	HashSeed        uint64 `json:"hash_seed"`
}

// ConfigFileName is the default config file name, checked in the working
// directory the same way sloty checks .tk.json.
const ConfigFileName = ".bucketsh.json"

// DefaultConfig returns the configuration used when no config file is found.
func DefaultConfig() Config {
	return Config{
		DefaultCapacity: 16,
		HashSeed:        14695981039346656037, // FNV-1a offset basis
	}
}

// LoadConfig reads ConfigFileName from workDir if present, overlaying it on
// top of the defaults. A missing file is not an error.
func LoadConfig(workDir string) (Config, string, error) {
	cfg := DefaultConfig()

	path := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is a fixed, user-controlled dotfile name
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, "", nil
		}

		return Config{}, "", fmt.Errorf("reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("invalid JSONC in %s: %w", path, err)
	}

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, "", fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return cfg, path, nil
}
