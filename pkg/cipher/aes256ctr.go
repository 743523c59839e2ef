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

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

const (
	aes256KeyLength = 32
	aes256IVLength  = 16
)

// AES256CTRCipher implements the aes256-ctr cipher. The KDF-derived IV
// seeds the initial counter block. Counter mode is a stream, so encryption
// and decryption are the same XOR against the keystream.
type AES256CTRCipher struct{}

// Name returns "aes256-ctr".
func (AES256CTRCipher) Name() string {
	return NameAES256CTR
}

// BlockSize returns the AES block size, 16.
func (AES256CTRCipher) BlockSize() int {
	return aes.BlockSize
}

// KeyLength returns 32.
func (AES256CTRCipher) KeyLength() int {
	return aes256KeyLength
}

// IVLength returns 16.
func (AES256CTRCipher) IVLength() int {
	return aes256IVLength
}

// Encrypt applies the AES-256-CTR keystream to data.
func (c AES256CTRCipher) Encrypt(key, iv, data []byte) ([]byte, error) {
	return c.xorKeyStream(key, iv, data)
}

// Decrypt applies the AES-256-CTR keystream to data.
func (c AES256CTRCipher) Decrypt(key, iv, data []byte) ([]byte, error) {
	return c.xorKeyStream(key, iv, data)
}

func (AES256CTRCipher) xorKeyStream(key, iv, data []byte) ([]byte, error) {
	if len(key) != aes256KeyLength {
		return nil, fmt.Errorf("cipher: cipher %q requires a %d byte key, got %d: %w",
			NameAES256CTR, aes256KeyLength, len(key), ErrInvalidKeyLength)
	}
	if len(iv) != aes256IVLength {
		return nil, fmt.Errorf("cipher: cipher %q requires a %d byte iv, got %d: %w",
			NameAES256CTR, aes256IVLength, len(iv), ErrInvalidIVLength)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher: aes init: %w", err)
	}
	out := make([]byte, len(data))
	cipher.NewCTR(block, iv).XORKeyStream(out, data)
	return out, nil
}
