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

import "errors"

var (
	// ErrUnsupportedCipher indicates a cipher name this package does not
	// implement.
	ErrUnsupportedCipher = errors.New("cipher: unsupported cipher")

	// ErrInvalidKeyLength indicates key material of the wrong size for
	// the cipher.
	ErrInvalidKeyLength = errors.New("cipher: invalid key length")

	// ErrInvalidIVLength indicates an initialization vector of the wrong
	// size for the cipher.
	ErrInvalidIVLength = errors.New("cipher: invalid iv length")
)
