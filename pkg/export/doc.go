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

// Package export bridges parsed key parameters to other key ecosystems:
// the standard library crypto types, SSH wire public keys and
// authorized_keys lines (golang.org/x/crypto/ssh), PKCS#8 and PKIX DER
// or PEM (github.com/youmark/pkcs8 for encrypted output), and JSON Web
// Keys (github.com/go-jose/go-jose/v4).
//
// All conversions are one-way adapters layered on top of the container
// codec; none of them participate in parsing or packing. Key types with
// no representation in a target ecosystem return ErrUnsupportedExport:
// security-key types everywhere (their private half lives on the
// authenticator), certificates outside the SSH bridge, and ssh-dss in
// PKCS#8 and JWK.
package export
