// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sshkeys.
//
// go-sshkeys is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package config loads the CLI configuration from a YAML file with
// environment variable overrides. Every value has a default, so the
// file is optional.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete CLI configuration
type Config struct {
	Keys     KeysConfig     `yaml:"keys"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Generate GenerateConfig `yaml:"generate"`
}

// KeysConfig controls where key files live
type KeysConfig struct {
	// Dir is the directory relative key names resolve against
	Dir string `yaml:"dir"`
}

// OutputConfig controls how command results are rendered
type OutputConfig struct {
	Format string `yaml:"format"` // text, json
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// GenerateConfig carries the defaults for new keys
type GenerateConfig struct {
	// Type is the key type tag for new keys
	Type string `yaml:"type"`

	// Bits is the RSA modulus size; other key types ignore it
	Bits int `yaml:"bits"`

	// Rounds is the bcrypt KDF work factor for encrypted keys
	Rounds int `yaml:"rounds"`
}

// DefaultConfig returns a Config with the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Keys: KeysConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Generate: GenerateConfig{
			Type:   "ssh-ed25519",
			Bits:   4096,
			Rounds: 16,
		},
	}
}

// LoadFile reads configuration from a YAML file over the defaults and
// applies environment variable overrides. An empty path skips the file
// and loads defaults plus environment only.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		// #nosec G304 - Config file path is provided by admin/user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	if dir := os.Getenv("SSHKEYS_DIR"); dir != "" {
		cfg.Keys.Dir = dir
	}
	if format := os.Getenv("SSHKEYS_OUTPUT"); format != "" {
		cfg.Output.Format = format
	}
	if debug := os.Getenv("SSHKEYS_DEBUG"); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			log.Printf("Warning: invalid SSHKEYS_DEBUG value %q, using default %t: %v",
				debug, cfg.Logging.Debug, err)
		} else {
			cfg.Logging.Debug = v
		}
	}
	if keyType := os.Getenv("SSHKEYS_TYPE"); keyType != "" {
		cfg.Generate.Type = keyType
	}
	if bits := os.Getenv("SSHKEYS_BITS"); bits != "" {
		n, err := strconv.Atoi(bits)
		if err != nil {
			log.Printf("Warning: invalid SSHKEYS_BITS value %q, using default %d: %v",
				bits, cfg.Generate.Bits, err)
		} else {
			cfg.Generate.Bits = n
		}
	}
	if rounds := os.Getenv("SSHKEYS_ROUNDS"); rounds != "" {
		n, err := strconv.Atoi(rounds)
		if err != nil {
			log.Printf("Warning: invalid SSHKEYS_ROUNDS value %q, using default %d: %v",
				rounds, cfg.Generate.Rounds, err)
		} else {
			cfg.Generate.Rounds = n
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Keys.Dir == "" {
		return fmt.Errorf("keys dir must be specified")
	}

	validFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		return fmt.Errorf("invalid output format: %s (must be text or json)", c.Output.Format)
	}

	validTypes := map[string]bool{
		"ssh-rsa":             true,
		"ssh-ed25519":         true,
		"ssh-dss":             true,
		"ecdsa-sha2-nistp256": true,
		"ecdsa-sha2-nistp384": true,
		"ecdsa-sha2-nistp521": true,
	}
	if !validTypes[c.Generate.Type] {
		return fmt.Errorf("invalid key type: %s", c.Generate.Type)
	}

	if c.Generate.Bits != 0 && (c.Generate.Bits < 1024 || c.Generate.Bits > 16384) {
		return fmt.Errorf("invalid RSA bits: %d (must be 1024-16384)", c.Generate.Bits)
	}

	if c.Generate.Rounds < 1 {
		return fmt.Errorf("invalid bcrypt rounds: %d (must be at least 1)", c.Generate.Rounds)
	}

	return nil
}
