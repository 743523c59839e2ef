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

	"github.com/jeremyhahn/go-sshkeys/pkg/export"
	"github.com/jeremyhahn/go-sshkeys/pkg/keyfile"
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/spf13/cobra"
)

// fingerprintCmd prints key fingerprints, one line per key
var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <key-file>...",
	Short: "Show key fingerprints",
	Long: `Show the fingerprint of every key in the given files.

Private key files are read through the unencrypted outer layer, so no
passphrase is needed even for encrypted containers. Public key files
are read line by line.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := settings()
		if err != nil {
			handleError(err)
			return
		}
		hash, _ := cmd.Flags().GetString("hash")

		printer := NewPrinter(s.OutputFormat, os.Stdout)
		if err := runFingerprint(s, printer, args, hash); err != nil {
			handleError(err)
		}
	},
}

func init() {
	fingerprintCmd.Flags().StringP("hash", "E", "sha256", "Fingerprint hash: sha256 or md5")
}

func runFingerprint(s *Settings, printer *Printer, paths []string, hash string) error {
	fingerprint := export.FingerprintSHA256
	switch hash {
	case "sha256":
	case "md5":
		fingerprint = export.FingerprintLegacyMD5
	default:
		return fmt.Errorf("unsupported hash %q (want sha256 or md5)", hash)
	}

	var lines []FingerprintInfo
	for _, path := range paths {
		data, err := s.readKey(path)
		if err != nil {
			return err
		}

		var outer *keyfile.PublicList
		switch {
		case keyfile.IsArmored(data):
			outer, err = keyfile.ParsePublicListArmored(data)
		case keyfile.IsRawContainer(data):
			outer, err = keyfile.ParsePublicList(data)
		default:
			entries, err := keyfile.ParseAuthorizedKeys(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("%s: no keys found", path)
			}
			for _, entry := range entries {
				line, err := fingerprintLine(fingerprint, entry.Key.Params, entry.Comment)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				lines = append(lines, line)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		s.Logger.Debugf("%s: %d keys in container", path, len(outer.Publics))
		for _, pub := range outer.Publics {
			line, err := fingerprintLine(fingerprint, pub.Params, "")
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			lines = append(lines, line)
		}
	}

	return printer.PrintFingerprints(lines)
}

func fingerprintLine(fingerprint func(keytype.PublicParams) (string, error),
	params keytype.PublicParams, comment string) (FingerprintInfo, error) {

	fp, err := fingerprint(params)
	if err != nil {
		return FingerprintInfo{}, err
	}
	return FingerprintInfo{
		Bits:        keyBits(params),
		Fingerprint: fp,
		Comment:     comment,
		KeyType:     params.Tag(),
	}, nil
}
