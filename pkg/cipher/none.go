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

package cipher

import "fmt"

// noneBlockSize is the padding alignment OpenSSH applies to unencrypted
// private sections. It differs from the AES block size and must be
// reproduced exactly for byte-identical repacking.
const noneBlockSize = 8

// NoneCipher is the identity transform used by unencrypted key files.
type NoneCipher struct{}

// Name returns "none".
func (NoneCipher) Name() string {
	return NameNone
}

// BlockSize returns 8, the padding alignment for unencrypted sections.
func (NoneCipher) BlockSize() int {
	return noneBlockSize
}

// KeyLength returns 0.
func (NoneCipher) KeyLength() int {
	return 0
}

// IVLength returns 0.
func (NoneCipher) IVLength() int {
	return 0
}

// Encrypt returns data unchanged.
func (NoneCipher) Encrypt(key, iv, data []byte) ([]byte, error) {
	if err := checkNoneKey(key, iv); err != nil {
		return nil, err
	}
	return data, nil
}

// Decrypt returns data unchanged.
func (NoneCipher) Decrypt(key, iv, data []byte) ([]byte, error) {
	if err := checkNoneKey(key, iv); err != nil {
		return nil, err
	}
	return data, nil
}

func checkNoneKey(key, iv []byte) error {
	if len(key) != 0 {
		return fmt.Errorf("cipher: cipher %q takes no key, got %d bytes: %w",
			NameNone, len(key), ErrInvalidKeyLength)
	}
	if len(iv) != 0 {
		return fmt.Errorf("cipher: cipher %q takes no iv, got %d bytes: %w",
			NameNone, len(iv), ErrInvalidIVLength)
	}
	return nil
}
