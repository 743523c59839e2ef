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

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/jeremyhahn/go-sshkeys/pkg/types"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

func init() {
	register(ed25519Codec{})
}

// Ed25519PublicParams holds the public half of an ssh-ed25519 key: the
// 32-byte curve point.
type Ed25519PublicParams struct {
	Pub []byte
}

// Tag returns "ssh-ed25519".
func (p *Ed25519PublicParams) Tag() string { return TagEd25519 }

func (p *Ed25519PublicParams) Marshal(w *wire.Writer) error {
	w.WriteBytes(p.Pub)
	return nil
}

func (p *Ed25519PublicParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("public", types.Bytes(p.Pub))
	return f
}

// Ed25519PrivateParams holds the private half of an ssh-ed25519 key.
// PrivatePublic is the 64-byte concatenation of the private seed and the
// public point; its tail repeats Pub.
type Ed25519PrivateParams struct {
	Pub           []byte
	PrivatePublic []byte
}

// Tag returns "ssh-ed25519".
func (p *Ed25519PrivateParams) Tag() string { return TagEd25519 }

func (p *Ed25519PrivateParams) Marshal(w *wire.Writer) error {
	w.WriteBytes(p.Pub)
	w.WriteBytes(p.PrivatePublic)
	return nil
}

func (p *Ed25519PrivateParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("public", types.Bytes(p.Pub))
	f.Set("private_public", types.Bytes(p.PrivatePublic))
	return f
}

// Public derives the public parameters from the private material.
func (p *Ed25519PrivateParams) Public() PublicParams {
	return &Ed25519PublicParams{Pub: p.Pub}
}

// Seed returns the 32-byte private seed.
func (p *Ed25519PrivateParams) Seed() []byte {
	return p.PrivatePublic[:ed25519.SeedSize]
}

type ed25519Codec struct{}

func (ed25519Codec) Tag() string { return TagEd25519 }

func (ed25519Codec) ParsePublic(r *wire.Reader) (PublicParams, error) {
	pub, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keytype: ed25519 public: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public point is %d bytes, want %d",
			ErrInvalidParams, len(pub), ed25519.PublicKeySize)
	}
	return &Ed25519PublicParams{Pub: pub}, nil
}

func (ed25519Codec) ParsePrivate(r *wire.Reader) (PrivateParams, error) {
	pub, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keytype: ed25519 public: %w", err)
	}
	priv, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keytype: ed25519 private_public: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public point is %d bytes, want %d",
			ErrInvalidParams, len(pub), ed25519.PublicKeySize)
	}
	if len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 private_public is %d bytes, want %d",
			ErrInvalidParams, len(priv), ed25519.PrivateKeySize)
	}
	if !bytes.Equal(priv[ed25519.SeedSize:], pub) {
		return nil, fmt.Errorf("%w: ed25519 private_public tail does not repeat the public point",
			ErrInvalidParams)
	}
	return &Ed25519PrivateParams{Pub: pub, PrivatePublic: priv}, nil
}

func (ed25519Codec) Generate(opts GenerateOptions) (PrivateParams, error) {
	pub, priv, err := ed25519.GenerateKey(opts.reader())
	if err != nil {
		return nil, fmt.Errorf("keytype: generate ed25519: %w", err)
	}
	return &Ed25519PrivateParams{
		Pub:           []byte(pub),
		PrivatePublic: []byte(priv),
	}, nil
}
