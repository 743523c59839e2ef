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

// Package kdf implements the key-derivation functions named by the
// openssh-key-v1 container header. A KDF turns a passphrase plus the
// header's kdf options blob into the cipher key material that protects
// the private section.
package kdf

import (
	"fmt"
	"sort"

	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

// KDF names as they appear in the container header.
const (
	NameNone   = "none"
	NameBcrypt = "bcrypt"
)

const (
	// SaltLength is the salt size written when encrypting, matching the
	// size ssh-keygen produces.
	SaltLength = 16

	// DefaultRounds matches the ssh-keygen default work factor.
	DefaultRounds = 16
)

// Options holds the decoded kdf options blob. Only the bcrypt KDF uses it;
// for the none KDF both fields are empty. The salt/rounds pair is owned by
// the KDF layer and opaque to everything above it.
type Options struct {
	Salt   []byte
	Rounds uint32
}

// KDF is the capability interface implemented by each supported
// key-derivation function.
type KDF interface {
	// Name returns the header name of the KDF.
	Name() string

	// Derive produces length bytes of cipher key material from the
	// passphrase and options.
	Derive(passphrase []byte, opts Options, length int) ([]byte, error)

	// ParseOptions decodes the kdf options blob. The reader must contain
	// exactly the blob; trailing bytes are an error.
	ParseOptions(r *wire.Reader) (Options, error)

	// MarshalOptions encodes options into the container header form.
	MarshalOptions(w *wire.Writer, opts Options) error

	// FreshOptions returns options for a new encryption, randomizing the
	// salt. Tunables such as the round count carry over from prev when
	// set.
	FreshOptions(prev Options) (Options, error)
}

var kdfs = map[string]KDF{
	NameNone:   NoneKDF{},
	NameBcrypt: BcryptKDF{},
}

// Lookup returns the KDF registered under name.
func Lookup(name string) (KDF, error) {
	k, ok := kdfs[name]
	if !ok {
		return nil, fmt.Errorf("kdf: unsupported kdf %q: %w", name, ErrUnsupportedKDF)
	}
	return k, nil
}

// Names returns the supported KDF names in sorted order.
func Names() []string {
	names := make([]string, 0, len(kdfs))
	for name := range kdfs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
