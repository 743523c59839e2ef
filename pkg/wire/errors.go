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

package wire

import "errors"

var (
	// ErrTruncated indicates the buffer ended before a fixed-size field
	// could be read in full.
	ErrTruncated = errors.New("wire: truncated input")

	// ErrLengthOverflow indicates a length prefix that declares more bytes
	// than remain in the buffer, or more than MaxStringLen.
	ErrLengthOverflow = errors.New("wire: length overflow")

	// ErrTrailingData indicates bytes left unconsumed after a structure
	// that should have used its buffer exactly.
	ErrTrailingData = errors.New("wire: trailing data")
)
