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

package cipher

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, tt := range []struct {
		name      string
		blockSize int
		keyLen    int
		ivLen     int
	}{
		{NameNone, 8, 0, 0},
		{NameAES256CTR, 16, 32, 16},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Name())
			assert.Equal(t, tt.blockSize, c.BlockSize())
			assert.Equal(t, tt.keyLen, c.KeyLength())
			assert.Equal(t, tt.ivLen, c.IVLength())
		})
	}

	_, err := Lookup("aes128-gcm")
	assert.ErrorIs(t, err, ErrUnsupportedCipher)
	assert.Contains(t, err.Error(), "aes128-gcm")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"aes256-ctr", "none"}, Names())
}

func TestNoneCipherIdentity(t *testing.T) {
	c := NoneCipher{}
	data := []byte("private section bytes")

	out, err := c.Encrypt(nil, nil, data)
	require.NoError(t, err)
	assert.Equal(t, data, out)

	out, err = c.Decrypt(nil, nil, data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestNoneCipherRejectsKeys(t *testing.T) {
	c := NoneCipher{}

	_, err := c.Encrypt([]byte{1}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = c.Decrypt(nil, []byte{1}, nil)
	assert.ErrorIs(t, err, ErrInvalidIVLength)
}

func TestAES256CTRRoundTrip(t *testing.T) {
	c := AES256CTRCipher{}
	key := bytes.Repeat([]byte{0x42}, 32)
	iv := bytes.Repeat([]byte{0x24}, 16)
	plaintext := []byte("0123456789abcdef0123456789abcdef")

	ct, err := c.Encrypt(key, iv, plaintext)
	require.NoError(t, err)
	require.Len(t, ct, len(plaintext))
	assert.NotEqual(t, plaintext, ct)

	pt, err := c.Decrypt(key, iv, ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)

	// A different key yields different plaintext, undetected here. The
	// container's check integers are the integrity mechanism.
	wrongKey := bytes.Repeat([]byte{0x43}, 32)
	garbage, err := c.Decrypt(wrongKey, iv, ct)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, garbage)
}

func TestAES256CTRKeySizes(t *testing.T) {
	c := AES256CTRCipher{}

	_, err := c.Encrypt(make([]byte, 16), make([]byte, 16), nil)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = c.Encrypt(make([]byte, 32), make([]byte, 8), nil)
	assert.ErrorIs(t, err, ErrInvalidIVLength)
}
