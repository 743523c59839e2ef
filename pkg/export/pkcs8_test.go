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
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
)

func TestPKCS8RoundTrip(t *testing.T) {
	for _, tt := range []struct {
		name   string
		params keytype.PrivateParams
	}{
		{"rsa", generateParams(t, keytype.TagRSA, 1024)},
		{"ed25519", ed25519Params(t)},
		{"ecdsa", generateParams(t, keytype.TagECDSA256, 0)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			der, err := EncodePKCS8(tt.params, nil)
			require.NoError(t, err)

			// The DER must parse with the standard library directly.
			_, err = x509.ParsePKCS8PrivateKey(der)
			require.NoError(t, err)

			back, err := DecodePKCS8(der, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.params.Tag(), back.Tag())
			assert.True(t, tt.params.Fields().Equal(back.Fields()))
		})
	}
}

func TestPKCS8Encrypted(t *testing.T) {
	params := ed25519Params(t)
	password := []byte("pkcs8 password")

	der, err := EncodePKCS8(params, password)
	require.NoError(t, err)

	plain, err := EncodePKCS8(params, nil)
	require.NoError(t, err)
	assert.NotEqual(t, plain, der)

	back, err := DecodePKCS8(der, password)
	require.NoError(t, err)
	assert.True(t, params.Fields().Equal(back.Fields()))

	_, err = DecodePKCS8(der, []byte("wrong password"))
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = DecodePKCS8(der, nil)
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestPKCS8DSAUnsupported(t *testing.T) {
	_, err := EncodePKCS8(toyDSAParams(), nil)
	assert.ErrorIs(t, err, ErrUnsupportedExport)

	_, err = EncodePKCS8(skParams(), nil)
	assert.ErrorIs(t, err, ErrUnsupportedExport)
}

func TestPKCS8PEM(t *testing.T) {
	params := ed25519Params(t)

	plain, err := EncodePKCS8PEM(params, nil)
	require.NoError(t, err)
	block, _ := pem.Decode(plain)
	require.NotNil(t, block)
	assert.Equal(t, PEMTypePrivateKey, block.Type)

	encrypted, err := EncodePKCS8PEM(params, []byte("pw"))
	require.NoError(t, err)
	block, _ = pem.Decode(encrypted)
	require.NotNil(t, block)
	assert.Equal(t, PEMTypeEncryptedPrivateKey, block.Type)

	back, err := DecodePKCS8PEM(encrypted, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, params.Fields().Equal(back.Fields()))

	_, err = DecodePKCS8PEM([]byte("no pem here"), nil)
	assert.ErrorIs(t, err, ErrInvalidPEMEncoding)

	_, err = DecodePKCS8(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestPKIXRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		name   string
		params keytype.PrivateParams
	}{
		{"rsa", generateParams(t, keytype.TagRSA, 1024)},
		{"ed25519", ed25519Params(t)},
		{"ecdsa", generateParams(t, keytype.TagECDSA384, 0)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			pub := tt.params.Public()

			der, err := EncodePKIX(pub)
			require.NoError(t, err)
			_, err = x509.ParsePKIXPublicKey(der)
			require.NoError(t, err)

			back, err := DecodePKIX(der)
			require.NoError(t, err)
			assert.Equal(t, pub.Tag(), back.Tag())
			assert.True(t, pub.Fields().Equal(back.Fields()))
		})
	}
}

func TestPKIXDSAUnsupported(t *testing.T) {
	_, err := EncodePKIX(toyDSAParams().Public())
	assert.ErrorIs(t, err, ErrUnsupportedExport)
}

func TestPKIXPEM(t *testing.T) {
	pub := ed25519Params(t).Public()

	data, err := EncodePKIXPEM(pub)
	require.NoError(t, err)
	block, _ := pem.Decode(data)
	require.NotNil(t, block)
	assert.Equal(t, PEMTypePublicKey, block.Type)

	back, err := DecodePKIXPEM(data)
	require.NoError(t, err)
	assert.True(t, pub.Fields().Equal(back.Fields()))

	_, err = DecodePKIXPEM([]byte("garbage"))
	assert.ErrorIs(t, err, ErrInvalidPEMEncoding)

	_, err = DecodePKIX(nil)
	assert.ErrorIs(t, err, ErrInvalidData)
}
