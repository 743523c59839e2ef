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
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flag values, merged with the config file in settings()
	globalOpts Options
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sshkeys",
	Short: "sshkeys - OpenSSH private key file toolkit",
	Long: `sshkeys parses, generates, converts, and fingerprints OpenSSH
private and public key files (the openssh-key-v1 container format).

Supported key types:
  - ssh-ed25519, ssh-rsa, ssh-dss
  - ecdsa-sha2-nistp256, ecdsa-sha2-nistp384, ecdsa-sha2-nistp521
  - sk-ssh-ed25519@openssh.com, sk-ecdsa-sha2-nistp256@openssh.com
  - certificate variants (*-cert-v01@openssh.com, public only)

Encrypted containers use the bcrypt KDF with AES-256-CTR.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigFile, "config", "",
		"config file (default is $HOME/.sshkeys.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.KeyDir, "key-dir", "",
		"directory relative key names resolve against (default from config)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.OutputFormat, "output", "o", "",
		"output format (text, json; default from config)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Debug, "debug", false,
		"enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(fingerprintCmd)
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	format := globalOpts.OutputFormat
	if format == "" {
		format = "text"
	}
	printer := NewPrinter(format, os.Stderr)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
	os.Exit(1)
}
