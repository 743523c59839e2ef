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

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderIntegers(t *testing.T) {
	r := NewReader([]byte{
		0x07,
		0x00, 0x00, 0x01, 0x02,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09,
	})

	u8, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(7), u8)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(258), u32)

	u64, err := r.ReadU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), u64)

	assert.True(t, r.AtEnd())
	assert.NoError(t, r.Close())
}

func TestReaderTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"u8 empty", nil, func(r *Reader) error { _, err := r.ReadU8(); return err }},
		{"u32 short", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.ReadU32(); return err }},
		{"u64 short", []byte{1, 2, 3, 4, 5, 6, 7}, func(r *Reader) error { _, err := r.ReadU64(); return err }},
		{"string prefix short", []byte{0, 0}, func(r *Reader) error { _, err := r.ReadString(); return err }},
		{"raw short", []byte{1, 2}, func(r *Reader) error { _, err := r.ReadRaw(3); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewReader(tt.data))
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestReaderLengthOverflow(t *testing.T) {
	// Declares 16 bytes with only 2 present.
	r := NewReader([]byte{0x00, 0x00, 0x00, 0x10, 0xaa, 0xbb})
	_, err := r.ReadBytes()
	assert.ErrorIs(t, err, ErrLengthOverflow)

	// Declares more than the sanity limit.
	r = NewReader([]byte{0xff, 0xff, 0xff, 0xff})
	_, err = r.ReadBytes()
	assert.ErrorIs(t, err, ErrLengthOverflow)
}

func TestReaderStrings(t *testing.T) {
	w := NewWriter()
	w.WriteString("none")
	w.WriteBytes([]byte{0xde, 0xad})
	w.WriteString("")

	r := NewReader(w.Bytes())

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "none", s)

	b, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, b)

	s, err = r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", s)

	assert.NoError(t, r.Close())
}

func TestReaderReadBytesCopies(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x01, 0x42}
	r := NewReader(buf)
	b, err := r.ReadBytes()
	require.NoError(t, err)

	buf[4] = 0x00
	assert.Equal(t, []byte{0x42}, b)
}

func TestReaderMPIntDecode(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want *big.Int
	}{
		{"zero", []byte{}, big.NewInt(0)},
		{"one", []byte{0x01}, big.NewInt(1)},
		{"top bit clear", []byte{0x7f}, big.NewInt(127)},
		{"leading zero", []byte{0x00, 0x80}, big.NewInt(128)},
		{"two bytes", []byte{0x01, 0x00}, big.NewInt(256)},
		{"rsa exponent", []byte{0x01, 0x00, 0x01}, big.NewInt(65537)},
		{"minus one", []byte{0xff}, big.NewInt(-1)},
		{"minus 128", []byte{0x80}, big.NewInt(-128)},
		{"minus 129", []byte{0xff, 0x7f}, big.NewInt(-129)},
		{"minus 256", []byte{0xff, 0x00}, big.NewInt(-256)},
		{"non-minimal positive", []byte{0x00, 0x01}, big.NewInt(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			w.WriteBytes(tt.blob)

			n, err := NewReader(w.Bytes()).ReadMPInt()
			require.NoError(t, err)
			assert.Zero(t, tt.want.Cmp(n), "got %s want %s", n, tt.want)
		})
	}
}

func TestReaderRestAndClose(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	_, err := r.ReadU8()
	require.NoError(t, err)

	err = r.Close()
	assert.ErrorIs(t, err, ErrTrailingData)

	rest := r.Rest()
	assert.Equal(t, []byte{2, 3}, rest)
	assert.NoError(t, r.Close())
	assert.Equal(t, 3, r.Offset())
	assert.Zero(t, r.Remaining())
}
