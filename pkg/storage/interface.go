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

// Package storage abstracts where key files live. The CLI reads and
// writes through a Backend so the same commands work against a
// directory on disk or an in-memory store in tests.
package storage

import (
	"io/fs"
)

// Backend is a flat key-value store for key file contents. Keys are
// slash-separated relative names ("id_ed25519", "work/deploy.pub").
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get retrieves the value for the given key.
	// Returns ErrNotFound if the key does not exist.
	Get(key string) ([]byte, error)

	// Put stores the value for the given key, overwriting any previous
	// value. A nil opts applies DefaultOptions.
	Put(key string, value []byte, opts *Options) error

	// Delete removes the key and its value.
	// Returns ErrNotFound if the key does not exist.
	Delete(key string) error

	// List returns all keys with the given prefix in sorted order.
	// An empty prefix returns every key.
	List(prefix string) ([]string, error)

	// Exists checks if a key exists.
	Exists(key string) (bool, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Options carries optional parameters for Put.
type Options struct {
	// Permissions sets the file mode for file-based backends. Zero
	// means derive from the key name: private key material gets 0600,
	// ".pub" files get 0644.
	Permissions fs.FileMode
}

// DefaultOptions returns Options that derive permissions from the key
// name.
func DefaultOptions() *Options {
	return &Options{}
}
