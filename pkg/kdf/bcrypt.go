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
	"crypto/rand"
	"fmt"

	"github.com/dchest/bcrypt_pbkdf"

	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

// BcryptKDF derives cipher key material with the OpenBSD bcrypt_pbkdf
// construction OpenSSH uses for passphrase-protected private keys. Its
// options blob is a length-prefixed salt followed by a u32 round count.
type BcryptKDF struct{}

// Name returns "bcrypt".
func (BcryptKDF) Name() string {
	return NameBcrypt
}

// Derive produces length bytes from the passphrase, salt and rounds.
func (BcryptKDF) Derive(passphrase []byte, opts Options, length int) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("kdf: bcrypt requires a passphrase: %w", ErrPassphraseEmpty)
	}
	if err := validateBcryptOptions(opts); err != nil {
		return nil, err
	}
	out, err := bcrypt_pbkdf.Key(passphrase, opts.Salt, int(opts.Rounds), length)
	if err != nil {
		return nil, fmt.Errorf("kdf: bcrypt derivation failed: %w", err)
	}
	return out, nil
}

// ParseOptions decodes salt and rounds from the options blob.
func (BcryptKDF) ParseOptions(r *wire.Reader) (Options, error) {
	salt, err := r.ReadBytes()
	if err != nil {
		return Options{}, fmt.Errorf("kdf: bcrypt options salt: %w", err)
	}
	rounds, err := r.ReadU32()
	if err != nil {
		return Options{}, fmt.Errorf("kdf: bcrypt options rounds: %w", err)
	}
	if err := r.Close(); err != nil {
		return Options{}, fmt.Errorf("kdf: bcrypt options: %w", err)
	}
	opts := Options{Salt: salt, Rounds: rounds}
	if err := validateBcryptOptions(opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// MarshalOptions encodes salt and rounds.
func (BcryptKDF) MarshalOptions(w *wire.Writer, opts Options) error {
	if err := validateBcryptOptions(opts); err != nil {
		return err
	}
	w.WriteBytes(opts.Salt)
	w.WriteU32(opts.Rounds)
	return nil
}

// FreshOptions randomizes a new salt. The round count carries over from
// prev when set and falls back to DefaultRounds otherwise. Salts are never
// reused across encryptions.
func (BcryptKDF) FreshOptions(prev Options) (Options, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return Options{}, fmt.Errorf("kdf: salt generation: %w", err)
	}
	rounds := prev.Rounds
	if rounds == 0 {
		rounds = DefaultRounds
	}
	return Options{Salt: salt, Rounds: rounds}, nil
}

func validateBcryptOptions(opts Options) error {
	if len(opts.Salt) == 0 {
		return fmt.Errorf("kdf: bcrypt salt must not be empty: %w", ErrInvalidOptions)
	}
	if opts.Rounds == 0 {
		return fmt.Errorf("kdf: bcrypt rounds must be positive: %w", ErrInvalidOptions)
	}
	return nil
}
