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

package kdf

import "errors"

var (
	// ErrUnsupportedKDF indicates a kdf name this package does not
	// implement, or a use the named KDF cannot serve.
	ErrUnsupportedKDF = errors.New("kdf: unsupported kdf")

	// ErrPassphraseEmpty indicates a derivation attempt with an empty
	// passphrase against a KDF that requires one.
	ErrPassphraseEmpty = errors.New("kdf: empty passphrase")

	// ErrInvalidOptions indicates a salt or round count outside the
	// KDF's accepted range.
	ErrInvalidOptions = errors.New("kdf: invalid options")
)
