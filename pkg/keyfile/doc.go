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

// Package keyfile parses and packs the openssh-key-v1 private key
// container and the single-line textual public key format.
//
// A private key file is a PEM-like armor around a binary container:
// magic, cipher and KDF names, an opaque KDF options blob, the key
// count, one public key blob per key, and one (possibly encrypted)
// private section holding duplicated check integers, the private
// records with their comments, and sequential padding. ParsePrivate and
// ParsePrivateArmored decode it; Pack and EncodeArmored produce it.
//
// Parsing is strict. Every byte of a well-formed container is consumed
// exactly once, both check integers must match, padding must count
// 1, 2, ..., k, and each private record must agree with its paired
// public record in both key type and shared field values. Packing with
// Pack randomizes the salt and check integers so no two encryptions
// share key material; PackExact reuses the parsed values and is the
// exact byte inverse of ParsePrivate for an unmodified list.
package keyfile
