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
	"io"
	"os"

	"github.com/jeremyhahn/go-sshkeys/pkg/cipher"
	"github.com/jeremyhahn/go-sshkeys/pkg/export"
	"github.com/jeremyhahn/go-sshkeys/pkg/kdf"
	"github.com/jeremyhahn/go-sshkeys/pkg/keyfile"
	"github.com/spf13/cobra"
)

// Convert target formats.
const (
	targetOpenSSH        = "openssh"
	targetPKCS8          = "pkcs8"
	targetPKIX           = "pkix"
	targetJWK            = "jwk"
	targetAuthorizedKeys = "authorized-keys"
)

// convertCmd rewrites a private key file in another format
var convertCmd = &cobra.Command{
	Use:   "convert <key-file>",
	Short: "Convert a key to another format",
	Long: `Convert an openssh-key-v1 private key file to another format, or
rewrite it under a different passphrase.

Targets:

  openssh          openssh-key-v1, encrypted with --new-passphrase
                   (omit it to strip the passphrase)
  pkcs8            PKCS#8 PEM, encrypted when --new-passphrase is set
  pkix             PKIX/SubjectPublicKeyInfo PEM (public key only)
  jwk              JSON Web Key (--public for the public half)
  authorized-keys  authorized_keys line (public key only)

Multi-key containers need --key to pick a key, except for the openssh
target which keeps every key unless --key is given. The result goes to
stdout, or to --out.`,
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

		opts := convertOptions{Passphrase: passphrase}
		opts.To, _ = cmd.Flags().GetString("to")
		opts.KeyIndex, _ = cmd.Flags().GetInt("key")
		opts.Out, _ = cmd.Flags().GetString("out")
		opts.Public, _ = cmd.Flags().GetBool("public")
		opts.KeyID, _ = cmd.Flags().GetString("kid")
		opts.NewPassphrase, _ = cmd.Flags().GetString("new-passphrase")
		opts.Rounds, _ = cmd.Flags().GetInt("rounds")

		if err := runConvert(s, os.Stdout, args[0], opts); err != nil {
			handleError(err)
			return
		}
		if opts.Out != "" {
			printer := NewPrinter(s.OutputFormat, os.Stdout)
			if err := printer.PrintSuccess(fmt.Sprintf("Successfully converted key to: %s", opts.Out)); err != nil {
				handleError(err)
			}
		}
	},
}

func init() {
	convertCmd.Flags().String("to", targetOpenSSH, "Target format: openssh, pkcs8, pkix, jwk or authorized-keys")
	convertCmd.Flags().Int("key", -1, "Key index for multi-key containers, as shown by inspect")
	convertCmd.Flags().String("out", "", "Write the result to this path instead of stdout")
	convertCmd.Flags().Bool("public", false, "Emit the public half for the jwk target")
	convertCmd.Flags().String("kid", "", "Key ID to embed for the jwk target")
	convertCmd.Flags().String("new-passphrase", "", "Passphrase for the converted key (omit to strip encryption)")
	convertCmd.Flags().IntP("rounds", "a", 0, "bcrypt KDF rounds when re-encrypting (default from config)")
	addPassphraseFlags(convertCmd)
}

// convertOptions carries the convert command's inputs.
type convertOptions struct {
	To            string
	KeyIndex      int
	Out           string
	Public        bool
	KeyID         string
	NewPassphrase string
	Rounds        int
	Passphrase    []byte
}

func runConvert(s *Settings, stdout io.Writer, path string, opts convertOptions) error {
	data, err := s.readKey(path)
	if err != nil {
		return err
	}

	var list *keyfile.PrivateKeyList
	switch {
	case keyfile.IsArmored(data):
		list, err = keyfile.ParsePrivateArmored(data, opts.Passphrase)
	case keyfile.IsRawContainer(data):
		list, err = keyfile.ParsePrivate(data, opts.Passphrase)
	default:
		return fmt.Errorf("%s: not an openssh-key-v1 private key file", path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out, err := convertList(s, list, opts)
	if err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}

	if opts.Out != "" {
		if err := s.writeKey(opts.Out, out); err != nil {
			return err
		}
		s.Logger.Debugf("wrote %s", opts.Out)
		return nil
	}
	_, err = stdout.Write(out)
	return err
}

func convertList(s *Settings, list *keyfile.PrivateKeyList, opts convertOptions) ([]byte, error) {
	if opts.To == targetOpenSSH {
		return reencodeOpenSSH(s, list, opts)
	}

	pair, err := selectKey(list, opts.KeyIndex)
	if err != nil {
		return nil, err
	}

	switch opts.To {
	case targetPKCS8:
		return export.EncodePKCS8PEM(pair.Private.Params, []byte(opts.NewPassphrase))
	case targetPKIX:
		return export.EncodePKIXPEM(pair.Public.Params)
	case targetJWK:
		if opts.Public {
			return export.EncodePublicJWK(pair.Public.Params, opts.KeyID)
		}
		return export.EncodeJWK(pair.Private.Params, opts.KeyID)
	case targetAuthorizedKeys:
		line := keyfile.PublicKeyLine{Key: pair.Public, Comment: pair.Private.Comment()}
		return keyfile.FormatAuthorizedKeys([]keyfile.PublicKeyLine{line})
	}
	return nil, fmt.Errorf("unsupported target format %q (want openssh, pkcs8, pkix, jwk or authorized-keys)", opts.To)
}

// reencodeOpenSSH rebuilds the container, encrypted under the new
// passphrase or stripped to plaintext when none is given.
func reencodeOpenSSH(s *Settings, list *keyfile.PrivateKeyList, opts convertOptions) ([]byte, error) {
	pairs := list.Pairs
	if opts.KeyIndex >= 0 {
		pair, err := selectKey(list, opts.KeyIndex)
		if err != nil {
			return nil, err
		}
		pairs = []keyfile.KeyPair{pair}
	}

	newPass := []byte(opts.NewPassphrase)
	cipherName, kdfName := cipher.NameNone, kdf.NameNone
	if len(newPass) > 0 {
		cipherName, kdfName = cipher.NameAES256CTR, kdf.NameBcrypt
	}
	out, err := keyfile.NewList(pairs, cipherName, kdfName)
	if err != nil {
		return nil, err
	}
	if kdfName == kdf.NameBcrypt {
		rounds := opts.Rounds
		if rounds == 0 {
			rounds = s.Generate.Rounds
		}
		out.KDFOptions.Rounds = uint32(rounds)
	}
	return out.EncodeArmored(newPass)
}

// selectKey picks the pair a single-key target operates on: the --key
// index when given, the only key otherwise.
func selectKey(list *keyfile.PrivateKeyList, index int) (keyfile.KeyPair, error) {
	if index >= 0 {
		if index >= len(list.Pairs) {
			return keyfile.KeyPair{}, fmt.Errorf("key index %d out of range for %d keys", index, len(list.Pairs))
		}
		return list.Pairs[index], nil
	}
	if len(list.Pairs) != 1 {
		return keyfile.KeyPair{}, fmt.Errorf("container holds %d keys, pick one with --key", len(list.Pairs))
	}
	return list.Pairs[0], nil
}
