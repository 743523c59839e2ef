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

package export

import (
	"bytes"
	"crypto"
	"crypto/dsa" //nolint:staticcheck // ssh-dss interop requires classic DSA
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
)

func generateParams(t *testing.T, tag string, bits int) keytype.PrivateParams {
	t.Helper()
	c, err := keytype.Lookup(tag)
	require.NoError(t, err)
	params, err := c.Generate(keytype.GenerateOptions{Bits: bits})
	require.NoError(t, err)
	return params
}

func ed25519Params(t *testing.T) *keytype.Ed25519PrivateParams {
	t.Helper()
	return generateParams(t, keytype.TagEd25519, 0).(*keytype.Ed25519PrivateParams)
}

func toyDSAParams() *keytype.DSAPrivateParams {
	return &keytype.DSAPrivateParams{
		P: big.NewInt(283), Q: big.NewInt(47), G: big.NewInt(60),
		Y: big.NewInt(207), X: big.NewInt(15),
	}
}

func skParams() *keytype.SKEd25519PrivateParams {
	return &keytype.SKEd25519PrivateParams{
		Pub:         bytes.Repeat([]byte{0xaa}, 32),
		Application: "ssh:",
		Flags:       keytype.SKFlagUserPresence,
		KeyHandle:   []byte{1, 2, 3, 4},
	}
}

func TestCryptoBridgeRSA(t *testing.T) {
	params := generateParams(t, keytype.TagRSA, 1024)

	key, err := ToCryptoPrivate(params)
	require.NoError(t, err)
	rsaKey, ok := key.(*rsa.PrivateKey)
	require.True(t, ok)

	// The bridged key must actually work.
	digest := sha256.Sum256([]byte("bridge check"))
	sig, err := rsa.SignPKCS1v15(rand.Reader, rsaKey, crypto.SHA256, digest[:])
	require.NoError(t, err)
	require.NoError(t, rsa.VerifyPKCS1v15(&rsaKey.PublicKey, crypto.SHA256, digest[:], sig))

	back, err := FromCryptoPrivate(rsaKey)
	require.NoError(t, err)
	assert.True(t, params.Fields().Equal(back.Fields()))
}

func TestCryptoBridgeEd25519(t *testing.T) {
	params := ed25519Params(t)

	key, err := ToCryptoPrivate(params)
	require.NoError(t, err)
	edKey, ok := key.(ed25519.PrivateKey)
	require.True(t, ok)

	msg := []byte("bridge check")
	sig := ed25519.Sign(edKey, msg)
	assert.True(t, ed25519.Verify(edKey.Public().(ed25519.PublicKey), msg, sig))

	back, err := FromCryptoPrivate(edKey)
	require.NoError(t, err)
	assert.True(t, params.Fields().Equal(back.Fields()))

	// The pointer form comes back from ssh.ParseRawPrivateKey.
	backPtr, err := FromCryptoPrivate(&edKey)
	require.NoError(t, err)
	assert.True(t, params.Fields().Equal(backPtr.Fields()))
}

func TestCryptoBridgeECDSA(t *testing.T) {
	for _, tag := range []string{
		keytype.TagECDSA256, keytype.TagECDSA384, keytype.TagECDSA521,
	} {
		t.Run(tag, func(t *testing.T) {
			params := generateParams(t, tag, 0)

			key, err := ToCryptoPrivate(params)
			require.NoError(t, err)
			ecKey, ok := key.(*ecdsa.PrivateKey)
			require.True(t, ok)

			digest := sha256.Sum256([]byte("bridge check"))
			sig, err := ecdsa.SignASN1(rand.Reader, ecKey, digest[:])
			require.NoError(t, err)
			assert.True(t, ecdsa.VerifyASN1(&ecKey.PublicKey, digest[:], sig))

			back, err := FromCryptoPrivate(ecKey)
			require.NoError(t, err)
			assert.Equal(t, tag, back.Tag())
			assert.True(t, params.Fields().Equal(back.Fields()))
		})
	}
}

func TestCryptoBridgeDSA(t *testing.T) {
	params := toyDSAParams()

	key, err := ToCryptoPrivate(params)
	require.NoError(t, err)
	dsaKey, ok := key.(*dsa.PrivateKey)
	require.True(t, ok)
	assert.Zero(t, dsaKey.Y.Cmp(params.Y))

	back, err := FromCryptoPrivate(dsaKey)
	require.NoError(t, err)
	assert.True(t, params.Fields().Equal(back.Fields()))
}

func TestCryptoBridgeUnsupported(t *testing.T) {
	_, err := ToCryptoPrivate(skParams())
	assert.ErrorIs(t, err, ErrUnsupportedExport)

	_, err = ToCryptoPublic(skParams().Public())
	assert.ErrorIs(t, err, ErrUnsupportedExport)

	cert := &keytype.CertPublicParams{
		Nonce:        bytes.Repeat([]byte{0x5a}, 32),
		Base:         ed25519Params(t).Public(),
		Serial:       1,
		CertType:     keytype.CertTypeUser,
		KeyID:        "id",
		SignatureKey: []byte("ca"),
		Signature:    []byte("sig"),
	}
	_, err = ToCryptoPublic(cert)
	assert.ErrorIs(t, err, ErrUnsupportedExport)

	_, err = FromCryptoPrivate("not a key")
	assert.ErrorIs(t, err, ErrUnsupportedExport)

	_, err = ToCryptoPrivate(nil)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestToCryptoPublicValidation(t *testing.T) {
	_, err := ToCryptoPublic(&keytype.Ed25519PublicParams{Pub: []byte{1, 2, 3}})
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = ToCryptoPublic(&keytype.ECDSAPublicParams{
		Identifier: "nistp256",
		Q:          []byte{0x04, 0x01, 0x02},
	})
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = ToCryptoPublic(&keytype.ECDSAPublicParams{
		Identifier: "nistp224",
		Q:          []byte{0x04},
	})
	assert.ErrorIs(t, err, ErrUnsupportedExport)
}
