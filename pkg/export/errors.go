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

package export

import "errors"

var (
	// ErrUnsupportedExport is returned when a key type has no
	// representation in the requested target format
	ErrUnsupportedExport = errors.New("export: key type not representable in target format")

	// ErrInvalidPrivateKey is returned when private key material is nil
	// or inconsistent
	ErrInvalidPrivateKey = errors.New("export: invalid private key")

	// ErrInvalidPublicKey is returned when public key material is nil or
	// not a valid curve point
	ErrInvalidPublicKey = errors.New("export: invalid public key")

	// ErrInvalidData is returned when input data is nil, empty, or malformed
	ErrInvalidData = errors.New("export: invalid data")

	// ErrInvalidPassword is returned when an encrypted PKCS#8 input does
	// not decrypt with the given password
	ErrInvalidPassword = errors.New("export: invalid password")

	// ErrInvalidPEMEncoding is returned when PEM decoding fails
	ErrInvalidPEMEncoding = errors.New("export: invalid PEM encoding")
)
