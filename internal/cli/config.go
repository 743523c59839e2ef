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

package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeremyhahn/go-sshkeys/internal/config"
	"github.com/jeremyhahn/go-sshkeys/pkg/logging"
	"github.com/jeremyhahn/go-sshkeys/pkg/storage"
	"github.com/jeremyhahn/go-sshkeys/pkg/storage/file"
	"github.com/spf13/cobra"
)

// Options holds the global flag values before they are merged with the
// config file.
type Options struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// KeyDir overrides the configured key directory when non-empty
	KeyDir string

	// OutputFormat overrides the configured output format when non-empty
	OutputFormat string

	// Debug enables debug logging
	Debug bool
}

// Settings is the merged view of the config file and command-line
// flags. Flags win over file values.
type Settings struct {
	KeyDir       string
	OutputFormat string
	Generate     config.GenerateConfig
	Logger       *logging.Logger
}

// settings loads the config file and applies flag overrides
func settings() (*Settings, error) {
	cfg, err := config.LoadFile(configPath())
	if err != nil {
		return nil, err
	}

	s := &Settings{
		KeyDir:       cfg.Keys.Dir,
		OutputFormat: cfg.Output.Format,
		Generate:     cfg.Generate,
	}
	if globalOpts.KeyDir != "" {
		s.KeyDir = globalOpts.KeyDir
	}
	if globalOpts.OutputFormat != "" {
		s.OutputFormat = globalOpts.OutputFormat
	}
	s.Logger = logging.NewLogger(cfg.Logging.Debug || globalOpts.Debug)

	return s, nil
}

// configPath returns the config file to load: the --config flag when
// set, $HOME/.sshkeys.yaml when it exists, otherwise nothing.
func configPath() string {
	if globalOpts.ConfigFile != "" {
		return globalOpts.ConfigFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".sshkeys.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// store resolves a key path argument to a storage backend and key.
// Absolute paths are rooted at their own directory; relative names
// resolve under the configured key directory.
func (s *Settings) store(arg string) (storage.Backend, string, error) {
	if arg == "" {
		return nil, "", fmt.Errorf("key path cannot be empty")
	}

	root := s.KeyDir
	key := filepath.ToSlash(arg)
	if filepath.IsAbs(arg) {
		root = filepath.Dir(arg)
		key = filepath.Base(arg)
	}

	backend, err := file.New(root)
	if err != nil {
		return nil, "", err
	}
	return backend, key, nil
}

// readKey reads the file behind a key path argument
func (s *Settings) readKey(arg string) ([]byte, error) {
	backend, key, err := s.store(arg)
	if err != nil {
		return nil, err
	}
	defer func() { s.Logger.MaybeError(backend.Close()) }()

	data, err := backend.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", arg, err)
	}
	return data, nil
}

// writeKey writes the file behind a key path argument
func (s *Settings) writeKey(arg string, data []byte) error {
	backend, key, err := s.store(arg)
	if err != nil {
		return err
	}
	defer func() { s.Logger.MaybeError(backend.Close()) }()

	if err := backend.Put(key, data, nil); err != nil {
		return fmt.Errorf("%s: %w", arg, err)
	}
	return nil
}

// keyExists reports whether the file behind a key path argument exists
func (s *Settings) keyExists(arg string) (bool, error) {
	backend, key, err := s.store(arg)
	if err != nil {
		return false, err
	}
	defer func() { s.Logger.MaybeError(backend.Close()) }()

	exists, err := backend.Exists(key)
	if err != nil {
		return false, fmt.Errorf("%s: %w", arg, err)
	}
	return exists, nil
}

// addPassphraseFlags registers the passphrase source flags on cmd
func addPassphraseFlags(cmd *cobra.Command) {
	cmd.Flags().String("passphrase", "", "Passphrase for the private key")
	cmd.Flags().String("passphrase-env", "", "Environment variable holding the passphrase")
	cmd.Flags().String("passphrase-file", "", "File holding the passphrase")
}

// passphraseFrom resolves the passphrase for a command from its flags.
// --passphrase wins, then --passphrase-env, then --passphrase-file.
// A nil return means no passphrase was given.
func passphraseFrom(cmd *cobra.Command) ([]byte, error) {
	if v, _ := cmd.Flags().GetString("passphrase"); v != "" {
		return []byte(v), nil
	}
	if name, _ := cmd.Flags().GetString("passphrase-env"); name != "" {
		v, ok := os.LookupEnv(name)
		if !ok {
			return nil, fmt.Errorf("environment variable %s is not set", name)
		}
		return []byte(v), nil
	}
	if path, _ := cmd.Flags().GetString("passphrase-file"); path != "" {
		// #nosec G304 - Passphrase file path is provided by the user
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read passphrase file: %w", err)
		}
		return bytes.TrimRight(data, "\r\n"), nil
	}
	return nil, nil
}
