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

// Package types provides shared value types used across the key codec
// packages. It has no dependencies on other packages in this module so it
// can be imported from anywhere without creating cycles.
package types

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

// Kind identifies the type of data held by a Value.
type Kind int

const (
	// KindString is a UTF-8 text value.
	KindString Kind = iota

	// KindBytes is an opaque byte blob.
	KindBytes

	// KindMPInt is an arbitrary-precision signed integer.
	KindMPInt

	// KindUint8 is an unsigned 8-bit integer.
	KindUint8

	// KindUint32 is an unsigned 32-bit integer.
	KindUint32

	// KindUint64 is an unsigned 64-bit integer.
	KindUint64
)

// Value is a tagged union over the closed set of kinds that appear in key
// record headers, footers and parameter fields. The zero value is an empty
// KindString.
type Value struct {
	kind Kind
	str  string
	raw  []byte
	num  *big.Int
	u    uint64
}

// String creates a text Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bytes creates a byte blob Value. The slice is not copied.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: b}
}

// MPInt creates an arbitrary-precision integer Value.
func MPInt(n *big.Int) Value {
	return Value{kind: KindMPInt, num: n}
}

// Uint8 creates an unsigned 8-bit Value.
func Uint8(v uint8) Value {
	return Value{kind: KindUint8, u: uint64(v)}
}

// Uint32 creates an unsigned 32-bit Value.
func Uint32(v uint32) Value {
	return Value{kind: KindUint32, u: uint64(v)}
}

// Uint64 creates an unsigned 64-bit Value.
func Uint64(v uint64) Value {
	return Value{kind: KindUint64, u: v}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// AsString returns the text content. The second return is false if the
// value is not a KindString.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBytes returns the blob content. The second return is false if the
// value is not a KindBytes.
func (v Value) AsBytes() ([]byte, bool) {
	return v.raw, v.kind == KindBytes
}

// AsMPInt returns the integer content. The second return is false if the
// value is not a KindMPInt.
func (v Value) AsMPInt() (*big.Int, bool) {
	return v.num, v.kind == KindMPInt
}

// AsUint returns the numeric content of a KindUint8, KindUint32 or
// KindUint64 value. The second return is false for any other kind.
func (v Value) AsUint() (uint64, bool) {
	switch v.kind {
	case KindUint8, KindUint32, KindUint64:
		return v.u, true
	default:
		return 0, false
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindBytes:
		return bytes.Equal(v.raw, other.raw)
	case KindMPInt:
		if v.num == nil || other.num == nil {
			return v.num == other.num
		}
		return v.num.Cmp(other.num) == 0
	default:
		return v.u == other.u
	}
}

// String renders the value for display. Blobs render as standard base64 and
// big integers as decimal.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBytes:
		return base64.StdEncoding.EncodeToString(v.raw)
	case KindMPInt:
		if v.num == nil {
			return "0"
		}
		return v.num.String()
	default:
		return fmt.Sprintf("%d", v.u)
	}
}

func (v Value) jsonValue() (interface{}, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindBytes:
		return base64.StdEncoding.EncodeToString(v.raw), nil
	case KindMPInt:
		// Decimal strings avoid the precision loss of JSON numbers.
		if v.num == nil {
			return "0", nil
		}
		return v.num.String(), nil
	case KindUint8, KindUint32, KindUint64:
		return v.u, nil
	default:
		return nil, fmt.Errorf("types: unknown value kind %d", v.kind)
	}
}

// Fields is a mapping from string keys to Values that preserves insertion
// order. Key records use it for headers and footers, and parameter variants
// expose their contents through it for display. The wire layout of a record
// is fixed by its codec's schema, never by the iteration order of a Fields.
//
// Fields is not safe for concurrent mutation.
type Fields struct {
	keys []string
	vals map[string]Value
}

// NewFields creates an empty ordered field mapping.
func NewFields() *Fields {
	return &Fields{vals: make(map[string]Value)}
}

// Set inserts or replaces the value for key. Replacing an existing key keeps
// its original position.
func (f *Fields) Set(key string, v Value) {
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = v
}

// Get returns the value for key.
func (f *Fields) Get(key string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.vals[key]
	return v, ok
}

// GetString returns the text content for key, or false if the key is absent
// or not a string.
func (f *Fields) GetString(key string) (string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of entries.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Equal reports whether two field mappings hold the same keys in the same
// order with equal values. A nil Fields equals any empty Fields.
func (f *Fields) Equal(other *Fields) bool {
	if f.Len() != other.Len() {
		return false
	}
	if f == nil {
		return true
	}
	for i, k := range f.keys {
		if other.keys[i] != k {
			return false
		}
		if !f.vals[k].Equal(other.vals[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the mapping as a JSON object whose members appear in
// insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		jv, err := f.vals[k].jsonValue()
		if err != nil {
			return nil, err
		}
		enc, err := json.Marshal(jv)
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
