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

// Package wire implements the primitive binary grammar of OpenSSH key
// material: big-endian unsigned integers, length-prefixed strings and
// blobs, and signed arbitrary-precision integers (mpint), as defined by
// RFC 4251 section 5.
//
// A Reader is a forward-only cursor over an in-memory buffer. Every read
// either consumes exactly the bytes it declares or fails with an error
// that wraps one of the package sentinels and carries the byte offset at
// which the problem was detected. A well-formed message consumes its
// buffer exactly once; Close reports any unconsumed remainder.
//
// A Writer mirrors the Reader operations. Writes cannot fail; the caller
// collects the accumulated output with Bytes.
package wire
