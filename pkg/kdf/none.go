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

import (
	"fmt"

	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

// NoneKDF is the identity KDF used by unencrypted key files. It produces
// no key material and takes an empty options blob.
type NoneKDF struct{}

// Name returns "none".
func (NoneKDF) Name() string {
	return NameNone
}

// Derive returns no key material. Requesting a non-zero length means the
// container pairs a keyed cipher with the none KDF, which cannot work.
func (NoneKDF) Derive(passphrase []byte, opts Options, length int) ([]byte, error) {
	if length > 0 {
		return nil, fmt.Errorf("kdf: kdf %q cannot derive %d bytes of key material: %w",
			NameNone, length, ErrUnsupportedKDF)
	}
	return nil, nil
}

// ParseOptions accepts only the empty options blob.
func (NoneKDF) ParseOptions(r *wire.Reader) (Options, error) {
	if err := r.Close(); err != nil {
		return Options{}, fmt.Errorf("kdf: options for kdf %q must be empty: %w", NameNone, err)
	}
	return Options{}, nil
}

// MarshalOptions writes nothing. Options carrying a salt or rounds are
// rejected rather than silently dropped.
func (NoneKDF) MarshalOptions(w *wire.Writer, opts Options) error {
	if len(opts.Salt) != 0 || opts.Rounds != 0 {
		return fmt.Errorf("kdf: kdf %q takes no options: %w", NameNone, ErrInvalidOptions)
	}
	return nil
}

// FreshOptions returns empty options.
func (NoneKDF) FreshOptions(prev Options) (Options, error) {
	return Options{}, nil
}
