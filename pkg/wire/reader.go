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
	"encoding/binary"
	"fmt"
	"math/big"
)

// MaxStringLen bounds the declared length of any single string or blob.
// Key files are small; anything past this is a malformed or hostile input.
const MaxStringLen = 16 << 20

// Reader is a forward-only cursor over a byte buffer. All multi-byte
// integers are big-endian. Reads that return slices copy out of the
// underlying buffer, so the parsed structure does not alias the input.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a Reader over buf. The buffer is not copied; callers
// must not mutate it while the Reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// AtEnd reports whether the buffer is exhausted.
func (r *Reader) AtEnd() bool {
	return r.off >= len(r.buf)
}

// ReadRaw consumes exactly n bytes with no length prefix.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("wire: need %d bytes at offset %d, have %d: %w",
			n, r.off, r.Remaining(), ErrTruncated)
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// ReadU8 consumes one byte.
func (r *Reader) ReadU8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, fmt.Errorf("wire: read u8 at offset %d: %w", r.off, ErrTruncated)
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

// ReadU32 consumes a big-endian unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, fmt.Errorf("wire: read u32 at offset %d: %w", r.off, ErrTruncated)
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// ReadU64 consumes a big-endian unsigned 64-bit integer.
func (r *Reader) ReadU64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, fmt.Errorf("wire: read u64 at offset %d: %w", r.off, ErrTruncated)
	}
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

// ReadBytes consumes a u32 length prefix followed by that many bytes and
// returns a copy of the payload.
func (r *Reader) ReadBytes() ([]byte, error) {
	start := r.off
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n > MaxStringLen {
		return nil, fmt.Errorf("wire: length %d at offset %d exceeds limit %d: %w",
			n, start, MaxStringLen, ErrLengthOverflow)
	}
	if int(n) > r.Remaining() {
		return nil, fmt.Errorf("wire: length %d at offset %d exceeds %d remaining bytes: %w",
			n, start, r.Remaining(), ErrLengthOverflow)
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+int(n)])
	r.off += int(n)
	return out, nil
}

// ReadString consumes a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadMPInt consumes a length-prefixed signed big-endian integer in
// two's-complement form. The empty blob decodes to zero.
func (r *Reader) ReadMPInt() (*big.Int, error) {
	raw, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	n := new(big.Int)
	if len(raw) == 0 {
		return n, nil
	}
	n.SetBytes(raw)
	if raw[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(raw))*8))
	}
	return n, nil
}

// Rest consumes and returns a copy of all remaining bytes.
func (r *Reader) Rest() []byte {
	out := make([]byte, r.Remaining())
	copy(out, r.buf[r.off:])
	r.off = len(r.buf)
	return out
}

// Close verifies the buffer was consumed exactly. Unread bytes are a
// structural error in a self-describing format.
func (r *Reader) Close() error {
	if !r.AtEnd() {
		return fmt.Errorf("wire: %d trailing bytes at offset %d: %w",
			r.Remaining(), r.off, ErrTrailingData)
	}
	return nil
}
