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

package keyfile

import (
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/jeremyhahn/go-sshkeys/pkg/types"
)

// Header and footer field names.
const (
	FieldKeyType = "key_type"
	FieldComment = "comment"
)

// PublicKey is one public key record: a header carrying at least the
// key_type, the type-specific parameters, and a footer. The footer is
// empty for container records; a comment on the textual single-line
// format travels outside the record.
type PublicKey struct {
	Header *types.Fields
	Params keytype.PublicParams
	Footer *types.Fields
}

// NewPublicKey builds a public record around params.
func NewPublicKey(params keytype.PublicParams) *PublicKey {
	h := types.NewFields()
	h.Set(FieldKeyType, types.String(params.Tag()))
	return &PublicKey{Header: h, Params: params, Footer: types.NewFields()}
}

// KeyType returns the record's key type tag.
func (k *PublicKey) KeyType() string {
	if s, ok := k.Header.GetString(FieldKeyType); ok {
		return s
	}
	return k.Params.Tag()
}

// PrivateKey is one private key record: a header carrying at least the
// key_type, the type-specific parameters, and a footer carrying the
// comment.
type PrivateKey struct {
	Header *types.Fields
	Params keytype.PrivateParams
	Footer *types.Fields
}

// NewPrivateKey builds a private record around params with the given
// comment.
func NewPrivateKey(params keytype.PrivateParams, comment string) *PrivateKey {
	h := types.NewFields()
	h.Set(FieldKeyType, types.String(params.Tag()))
	f := types.NewFields()
	f.Set(FieldComment, types.String(comment))
	return &PrivateKey{Header: h, Params: params, Footer: f}
}

// KeyType returns the record's key type tag.
func (k *PrivateKey) KeyType() string {
	if s, ok := k.Header.GetString(FieldKeyType); ok {
		return s
	}
	return k.Params.Tag()
}

// Comment returns the footer comment, or "" if none is set.
func (k *PrivateKey) Comment() string {
	s, _ := k.Footer.GetString(FieldComment)
	return s
}

// SetComment replaces the footer comment.
func (k *PrivateKey) SetComment(comment string) {
	k.Footer.Set(FieldComment, types.String(comment))
}

// KeyPair joins the public and private records of one key. In a parsed
// container both halves are always present and report the same key type.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// NewPair builds a pair from a private record, deriving the public half
// from the private parameters.
func NewPair(private *PrivateKey) KeyPair {
	return KeyPair{
		Public:  NewPublicKey(private.Params.Public()),
		Private: private,
	}
}
