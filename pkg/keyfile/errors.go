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

package keyfile

import "errors"

var (
	// ErrInvalidMagic is returned when the container does not start with
	// the openssh-key-v1 marker.
	ErrInvalidMagic = errors.New("keyfile: invalid magic")

	// ErrDecryptionIntegrity is returned when the duplicated check
	// integers of the private section disagree. It means a wrong
	// passphrase or corrupted ciphertext; no partially decrypted material
	// is ever returned alongside it.
	ErrDecryptionIntegrity = errors.New("keyfile: private section integrity check failed")

	// ErrInvalidPadding is returned when the bytes after the last private
	// record do not count 1, 2, ..., k, or the section is not aligned to
	// the cipher block size.
	ErrInvalidPadding = errors.New("keyfile: invalid private section padding")

	// ErrKeyTypeMismatch is returned when a private record's key type tag
	// differs from its positionally paired public record, or a public
	// line's clear-text tag differs from the tag inside its blob.
	ErrKeyTypeMismatch = errors.New("keyfile: key type mismatch")

	// ErrKeyMismatch is returned when the public fields embedded in a
	// private record disagree with the paired public record.
	ErrKeyMismatch = errors.New("keyfile: public and private records disagree")

	// ErrPassphraseNotExpected is returned when a passphrase is supplied
	// for an unencrypted container.
	ErrPassphraseNotExpected = errors.New("keyfile: passphrase supplied for unencrypted container")

	// ErrPassphraseRequired is returned when packing with an encrypting
	// cipher and no passphrase.
	ErrPassphraseRequired = errors.New("keyfile: passphrase required")

	// ErrInvalidArmor is returned when PEM armor is missing or carries the
	// wrong block type.
	ErrInvalidArmor = errors.New("keyfile: invalid private key armor")

	// ErrInvalidPublicLine is returned when a textual public key line is
	// malformed.
	ErrInvalidPublicLine = errors.New("keyfile: invalid public key line")
)
