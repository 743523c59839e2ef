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

package keytype

import "errors"

var (
	// ErrUnsupportedKeyType is returned when a key type tag has no
	// registered codec.
	ErrUnsupportedKeyType = errors.New("keytype: unsupported key type")

	// ErrInvalidParams is returned when parsed parameters violate the
	// internal consistency rules of their key type.
	ErrInvalidParams = errors.New("keytype: invalid key parameters")

	// ErrCertificatePrivate is returned when a certificate tag appears
	// where private parameters are expected. Certificates are public-only.
	ErrCertificatePrivate = errors.New("keytype: certificate has no private representation")

	// ErrGenerateUnsupported is returned by Generate for key types whose
	// secrets cannot be produced in software, such as hardware-backed
	// security keys and certificates.
	ErrGenerateUnsupported = errors.New("keytype: key generation not supported")
)
