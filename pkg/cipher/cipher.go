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

// Package cipher implements the symmetric ciphers named by the
// openssh-key-v1 container header. The cipher transforms the private
// section; it performs no integrity checking of its own, so wrong keys are
// detected downstream by the container's check integers.
package cipher

import (
	"fmt"
	"sort"
)

// Cipher names as they appear in the container header.
const (
	NameNone      = "none"
	NameAES256CTR = "aes256-ctr"
)

// Cipher is the capability interface implemented by each supported
// symmetric cipher. BlockSize also sets the padding alignment of the
// private section, including for the none cipher.
type Cipher interface {
	// Name returns the header name of the cipher.
	Name() string

	// BlockSize returns the alignment unit for private-section padding.
	BlockSize() int

	// KeyLength returns the key size in bytes, zero for unkeyed ciphers.
	KeyLength() int

	// IVLength returns the initialization vector size in bytes.
	IVLength() int

	// Encrypt transforms plaintext into ciphertext.
	Encrypt(key, iv, data []byte) ([]byte, error)

	// Decrypt transforms ciphertext into plaintext.
	Decrypt(key, iv, data []byte) ([]byte, error)
}

var ciphers = map[string]Cipher{
	NameNone:      NoneCipher{},
	NameAES256CTR: AES256CTRCipher{},
}

// Lookup returns the Cipher registered under name.
func Lookup(name string) (Cipher, error) {
	c, ok := ciphers[name]
	if !ok {
		return nil, fmt.Errorf("cipher: unsupported cipher %q: %w", name, ErrUnsupportedCipher)
	}
	return c, nil
}

// Names returns the supported cipher names in sorted order.
func Names() []string {
	names := make([]string, 0, len(ciphers))
	for name := range ciphers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
