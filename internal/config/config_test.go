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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Keys.Dir)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Logging.Debug)
	assert.Equal(t, "ssh-ed25519", cfg.Generate.Type)
	assert.Equal(t, 4096, cfg.Generate.Bits)
	assert.Equal(t, 16, cfg.Generate.Rounds)
}

func TestLoadFile_Success(t *testing.T) {
	path := writeConfig(t, `
keys:
  dir: /home/user/.ssh

output:
  format: json

logging:
  debug: true

generate:
  type: ssh-rsa
  bits: 2048
  rounds: 24
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/home/user/.ssh", cfg.Keys.Dir)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "ssh-rsa", cfg.Generate.Type)
	assert.Equal(t, 2048, cfg.Generate.Bits)
	assert.Equal(t, 24, cfg.Generate.Rounds)
}

func TestLoadFile_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
output:
  format: json
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, ".", cfg.Keys.Dir)
	assert.Equal(t, "ssh-ed25519", cfg.Generate.Type)
	assert.Equal(t, 16, cfg.Generate.Rounds)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "output: [unterminated")

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("SSHKEYS_DIR", "/env/keys")
	t.Setenv("SSHKEYS_OUTPUT", "json")
	t.Setenv("SSHKEYS_DEBUG", "true")
	t.Setenv("SSHKEYS_TYPE", "ecdsa-sha2-nistp384")
	t.Setenv("SSHKEYS_ROUNDS", "32")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "/env/keys", cfg.Keys.Dir)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "ecdsa-sha2-nistp384", cfg.Generate.Type)
	assert.Equal(t, 32, cfg.Generate.Rounds)
}

func TestLoadFile_InvalidEnvValueKeepsDefault(t *testing.T) {
	t.Setenv("SSHKEYS_BITS", "not-a-number")

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Generate.Bits)
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
keys:
  dir: /file/keys
`)
	t.Setenv("SSHKEYS_DIR", "/env/keys")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/keys", cfg.Keys.Dir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "empty keys dir",
			mutate:  func(c *Config) { c.Keys.Dir = "" },
			wantErr: "keys dir",
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "invalid output format",
		},
		{
			name:    "bad key type",
			mutate:  func(c *Config) { c.Generate.Type = "ssh-kyber" },
			wantErr: "invalid key type",
		},
		{
			name:    "certificate type rejected",
			mutate:  func(c *Config) { c.Generate.Type = "ssh-ed25519-cert-v01@openssh.com" },
			wantErr: "invalid key type",
		},
		{
			name:    "bits too small",
			mutate:  func(c *Config) { c.Generate.Bits = 512 },
			wantErr: "invalid RSA bits",
		},
		{
			name:    "bits too large",
			mutate:  func(c *Config) { c.Generate.Bits = 32768 },
			wantErr: "invalid RSA bits",
		},
		{
			name:    "zero bits allowed",
			mutate:  func(c *Config) { c.Generate.Bits = 0 },
			wantErr: "",
		},
		{
			name:    "zero rounds rejected",
			mutate:  func(c *Config) { c.Generate.Rounds = 0 },
			wantErr: "invalid bcrypt rounds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
