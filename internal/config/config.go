// Package config reads and writes the repository metadata file,
// .gitlet/config, a small TOML document recording the on-disk format
// version and the default branch name.
package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/NahomAnteneh/gitlet/core"
)

// FormatVersion is the object/state layout version this build writes.
const FormatVersion = 1

// DefaultBranch is the branch created at init.
const DefaultBranch = "master"

// Config is the persisted repository metadata.
type Config struct {
	Format        int    `toml:"format"`
	DefaultBranch string `toml:"defaultBranch"`
}

// Default returns the configuration written by init.
func Default() Config {
	return Config{
		Format:        FormatVersion,
		DefaultBranch: DefaultBranch,
	}
}

// Write persists the configuration atomically.
func Write(repo *core.Repository, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := core.WriteFileAtomic(repo.ConfigFile, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Load reads the repository configuration.
func Load(repo *core.Repository) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(repo.ConfigFile, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// Validate loads the configuration and rejects layouts written by a newer
// build than this one understands.
func Validate(repo *core.Repository) error {
	cfg, err := Load(repo)
	if err != nil {
		return err
	}
	if cfg.Format != FormatVersion {
		return fmt.Errorf("unsupported repository format %d (this build supports %d)", cfg.Format, FormatVersion)
	}
	return nil
}
