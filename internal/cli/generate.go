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
	"fmt"
	"os"

	"github.com/jeremyhahn/go-sshkeys/pkg/cipher"
	"github.com/jeremyhahn/go-sshkeys/pkg/export"
	"github.com/jeremyhahn/go-sshkeys/pkg/kdf"
	"github.com/jeremyhahn/go-sshkeys/pkg/keyfile"
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/spf13/cobra"
)

// generateCmd creates a new key pair
var generateCmd = &cobra.Command{
	Use:   "generate <key-path>",
	Short: "Generate a new key pair",
	Long: `Generate a new private key and write it as an armored openssh-key-v1
file, with the matching public key next to it in <key-path>.pub.

With a passphrase the private section is encrypted with AES-256-CTR
under a bcrypt-derived key; without one the container is written in
plaintext.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := settings()
		if err != nil {
			handleError(err)
			return
		}
		passphrase, err := passphraseFrom(cmd)
		if err != nil {
			handleError(err)
			return
		}

		opts := generateOptions{Passphrase: passphrase}
		opts.Type, _ = cmd.Flags().GetString("type")
		opts.Bits, _ = cmd.Flags().GetInt("bits")
		opts.Rounds, _ = cmd.Flags().GetInt("rounds")
		opts.Comment, _ = cmd.Flags().GetString("comment")
		opts.Force, _ = cmd.Flags().GetBool("force")

		printer := NewPrinter(s.OutputFormat, os.Stdout)
		if err := runGenerate(s, printer, args[0], opts); err != nil {
			handleError(err)
		}
	},
}

func init() {
	generateCmd.Flags().StringP("type", "t", "", "Key type (default from config)")
	generateCmd.Flags().StringP("comment", "C", "", "Comment for the new key")
	generateCmd.Flags().IntP("bits", "b", 0, "RSA modulus size in bits (default from config)")
	generateCmd.Flags().IntP("rounds", "a", 0, "bcrypt KDF rounds for encrypted keys (default from config)")
	generateCmd.Flags().BoolP("force", "f", false, "Overwrite existing files")
	addPassphraseFlags(generateCmd)
}

// generateOptions carries the generate command's inputs after flag and
// config defaults are merged.
type generateOptions struct {
	Type       string
	Bits       int
	Rounds     int
	Comment    string
	Passphrase []byte
	Force      bool
}

func runGenerate(s *Settings, printer *Printer, path string, opts generateOptions) error {
	if opts.Type == "" {
		opts.Type = s.Generate.Type
	}
	if opts.Bits == 0 {
		opts.Bits = s.Generate.Bits
	}
	if opts.Rounds == 0 {
		opts.Rounds = s.Generate.Rounds
	}

	pubPath := path + ".pub"
	if !opts.Force {
		for _, p := range []string{path, pubPath} {
			exists, err := s.keyExists(p)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	codec, err := keytype.Lookup(opts.Type)
	if err != nil {
		return err
	}

	s.Logger.Debugf("generating %s key", opts.Type)
	params, err := codec.Generate(keytype.GenerateOptions{Bits: opts.Bits})
	if err != nil {
		return err
	}

	pair := keyfile.NewPair(keyfile.NewPrivateKey(params, opts.Comment))

	cipherName, kdfName := cipher.NameNone, kdf.NameNone
	if len(opts.Passphrase) > 0 {
		cipherName, kdfName = cipher.NameAES256CTR, kdf.NameBcrypt
	}
	list, err := keyfile.NewList([]keyfile.KeyPair{pair}, cipherName, kdfName)
	if err != nil {
		return err
	}
	if kdfName == kdf.NameBcrypt {
		list.KDFOptions.Rounds = uint32(opts.Rounds)
	}

	armored, err := list.EncodeArmored(opts.Passphrase)
	if err != nil {
		return err
	}
	if err := s.writeKey(path, armored); err != nil {
		return err
	}

	line, err := keyfile.FormatPublicLine(pair.Public, opts.Comment)
	if err != nil {
		return err
	}
	if err := s.writeKey(pubPath, []byte(line+"\n")); err != nil {
		return err
	}

	public := params.Public()
	fingerprint, err := export.FingerprintSHA256(public)
	if err != nil {
		return err
	}
	s.Logger.Debugf("wrote %s and %s", path, pubPath)

	return printer.PrintGenerated(&GeneratedInfo{
		KeyType:     opts.Type,
		Bits:        keyBits(public),
		Fingerprint: fingerprint,
		PrivatePath: path,
		PublicPath:  pubPath,
		Encrypted:   len(opts.Passphrase) > 0,
	})
}
