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
	"bytes"
	"encoding/binary"
	"math/big"
)

// Writer accumulates a binary message using the same grammar the Reader
// consumes. The zero value is ready to use.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteRaw appends bytes with no length prefix.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.Write(b)
}

// WriteU8 appends one byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteU32 appends a big-endian unsigned 32-bit integer.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteU64 appends a big-endian unsigned 64-bit integer.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteBytes appends a u32 length prefix followed by the payload.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.buf.Write(b)
}

// WriteString appends a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf.WriteString(s)
}

// WriteMPInt appends a length-prefixed signed big-endian integer in
// minimal two's-complement form. Zero and nil encode as the empty blob;
// a positive value whose top bit is set gains a leading zero byte.
func (w *Writer) WriteMPInt(n *big.Int) {
	w.WriteBytes(encodeMPInt(n))
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated message. The slice is valid until the next
// write.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func encodeMPInt(n *big.Int) []byte {
	if n == nil || n.Sign() == 0 {
		return nil
	}
	if n.Sign() > 0 {
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			return append([]byte{0x00}, b...)
		}
		return b
	}
	byteLen := (n.BitLen() + 7) / 8
	if byteLen == 0 {
		byteLen = 1
	}
	// -(1 << (8*byteLen - 1)) is the most negative value that fits.
	limit := new(big.Int).Lsh(big.NewInt(1), uint(byteLen*8-1))
	limit.Neg(limit)
	if n.Cmp(limit) < 0 {
		byteLen++
	}
	tc := new(big.Int).Lsh(big.NewInt(1), uint(byteLen*8))
	tc.Add(tc, n)
	out := make([]byte, byteLen)
	tc.FillBytes(out)
	return out
}
