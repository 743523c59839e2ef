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
	"strings"

	"github.com/jeremyhahn/go-sshkeys/pkg/cipher"
	"github.com/jeremyhahn/go-sshkeys/pkg/export"
	"github.com/jeremyhahn/go-sshkeys/pkg/keyfile"
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/spf13/cobra"
)

// inspectCmd prints the structure of a key file
var inspectCmd = &cobra.Command{
	Use:   "inspect <key-file>",
	Short: "Print the structure of a private or public key file",
	Long: `Inspect a private key container or a public key file and print its
structure: cipher and KDF configuration, key types, fingerprints, and
comments.

Encrypted containers are shown from their unencrypted outer layer when
no passphrase is given; supply one to decrypt the private section and
see the comments.`,
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

		printer := NewPrinter(s.OutputFormat, os.Stdout)
		if err := runInspect(s, printer, args[0], passphrase); err != nil {
			handleError(err)
		}
	},
}

func init() {
	addPassphraseFlags(inspectCmd)
}

func runInspect(s *Settings, printer *Printer, path string, passphrase []byte) error {
	data, err := s.readKey(path)
	if err != nil {
		return err
	}

	switch {
	case keyfile.IsArmored(data):
		outer, err := keyfile.ParsePublicListArmored(data)
		if err != nil {
			return err
		}
		return inspectContainer(s, printer, path, outer, passphrase, func() (*keyfile.PrivateKeyList, error) {
			return keyfile.ParsePrivateArmored(data, passphrase)
		})

	case keyfile.IsRawContainer(data):
		outer, err := keyfile.ParsePublicList(data)
		if err != nil {
			return err
		}
		return inspectContainer(s, printer, path, outer, passphrase, func() (*keyfile.PrivateKeyList, error) {
			return keyfile.ParsePrivate(data, passphrase)
		})

	default:
		entries, err := keyfile.ParseAuthorizedKeys(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("%s: no keys found", path)
		}
		keys := make([]KeyInfo, 0, len(entries))
		for i, entry := range entries {
			keys = append(keys, keyInfoFor(i, entry.Key.Params, entry.Comment))
		}
		s.Logger.Debugf("parsed %d public keys from %s", len(keys), path)
		return printer.PrintPublicKeys(path, keys)
	}
}

// inspectContainer prints a container from its outer layer, decrypting
// the private section when that is possible.
func inspectContainer(s *Settings, printer *Printer, path string, outer *keyfile.PublicList,
	passphrase []byte, parse func() (*keyfile.PrivateKeyList, error)) error {

	encrypted := outer.CipherName != cipher.NameNone
	info := &ContainerInfo{
		Path:      path,
		Cipher:    outer.CipherName,
		KDF:       outer.KDFName,
		Rounds:    outer.KDFOptions.Rounds,
		Encrypted: encrypted,
	}

	if !encrypted || len(passphrase) > 0 {
		list, err := parse()
		if err != nil {
			return err
		}
		s.Logger.Debugf("decoded private section: %d keys", len(list.Pairs))
		for i, pair := range list.Pairs {
			info.Keys = append(info.Keys, keyInfoFor(i, pair.Public.Params, pair.Private.Comment()))
		}
		return printer.PrintContainer(info)
	}

	s.Logger.Debugf("no passphrase given, showing outer layer only")
	for i, pub := range outer.Publics {
		info.Keys = append(info.Keys, keyInfoFor(i, pub.Params, ""))
	}
	return printer.PrintContainer(info)
}

// keyInfoFor builds the display record for one key
func keyInfoFor(index int, params keytype.PublicParams, comment string) KeyInfo {
	info := KeyInfo{
		Index:   index,
		KeyType: params.Tag(),
		Bits:    keyBits(params),
		Comment: comment,
	}
	if fp, err := export.FingerprintSHA256(params); err == nil {
		info.Fingerprint = fp
	}
	return info
}

// keyBits reports the key size in bits for display. Zero means the
// size is not meaningful for the type.
func keyBits(params keytype.PublicParams) int {
	fields := params.Fields()
	if v, ok := fields.Get("n"); ok {
		if n, ok := v.AsMPInt(); ok {
			return n.BitLen()
		}
	}
	if v, ok := fields.Get("p"); ok {
		if p, ok := v.AsMPInt(); ok {
			return p.BitLen()
		}
	}

	tag := params.Tag()
	switch {
	case strings.Contains(tag, "nistp256"):
		return 256
	case strings.Contains(tag, "nistp384"):
		return 384
	case strings.Contains(tag, "nistp521"):
		return 521
	case strings.Contains(tag, "ed25519"):
		return 256
	}
	return 0
}
