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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

func TestEd25519PrivateRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	orig := &Ed25519PrivateParams{Pub: pub, PrivatePublic: priv}
	w := wire.NewWriter()
	require.NoError(t, orig.Marshal(w))

	c, err := Lookup(TagEd25519)
	require.NoError(t, err)

	r := wire.NewReader(w.Bytes())
	parsed, err := c.ParsePrivate(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	got := parsed.(*Ed25519PrivateParams)
	assert.Equal(t, []byte(pub), got.Pub)
	assert.Equal(t, []byte(priv), got.PrivatePublic)
	assert.Equal(t, []byte(priv.Seed()), got.Seed())
}

func TestEd25519PrivateTailMismatch(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	// Corrupt the public copy embedded in private_public.
	mutated := bytes.Clone(priv)
	mutated[ed25519.SeedSize] ^= 0x01

	w := wire.NewWriter()
	w.WriteBytes(pub)
	w.WriteBytes(mutated)

	c, err := Lookup(TagEd25519)
	require.NoError(t, err)

	_, err = c.ParsePrivate(wire.NewReader(w.Bytes()))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestEd25519BadLengths(t *testing.T) {
	c, err := Lookup(TagEd25519)
	require.NoError(t, err)

	w := wire.NewWriter()
	w.WriteBytes(bytes.Repeat([]byte{1}, 31))
	_, err = c.ParsePublic(wire.NewReader(w.Bytes()))
	assert.ErrorIs(t, err, ErrInvalidParams)

	w = wire.NewWriter()
	w.WriteBytes(bytes.Repeat([]byte{1}, 32))
	w.WriteBytes(bytes.Repeat([]byte{1}, 63))
	_, err = c.ParsePrivate(wire.NewReader(w.Bytes()))
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestEd25519Generate(t *testing.T) {
	c, err := Lookup(TagEd25519)
	require.NoError(t, err)

	params, err := c.Generate(GenerateOptions{})
	require.NoError(t, err)
	priv := params.(*Ed25519PrivateParams)

	require.Len(t, priv.Pub, ed25519.PublicKeySize)
	require.Len(t, priv.PrivatePublic, ed25519.PrivateKeySize)
	assert.Equal(t, priv.Pub, priv.PrivatePublic[ed25519.SeedSize:])

	derived := ed25519.NewKeyFromSeed(priv.Seed())
	assert.Equal(t, priv.Pub, []byte(derived.Public().(ed25519.PublicKey)))

	pub := priv.Public().(*Ed25519PublicParams)
	assert.Equal(t, priv.Pub, pub.Pub)
}
