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

// Package keytype implements the per-algorithm parameter codecs for the
// key types that appear in openssh-key-v1 containers.
//
// Every supported key type registers a Codec under its tag ("ssh-rsa",
// "ssh-ed25519", ...). A Codec knows the wire layout of the type's public
// and private parameters and, where the algorithm allows it, can generate
// fresh keys. Certificate tags are public-only wrappers around a base key
// type; security-key tags describe credentials whose secrets live on a
// hardware authenticator.
package keytype

import (
	"crypto/rand"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jeremyhahn/go-sshkeys/pkg/types"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

// Tags of the supported base key types.
const (
	TagRSA        = "ssh-rsa"
	TagEd25519    = "ssh-ed25519"
	TagDSA        = "ssh-dss"
	TagECDSA256   = "ecdsa-sha2-nistp256"
	TagECDSA384   = "ecdsa-sha2-nistp384"
	TagECDSA521   = "ecdsa-sha2-nistp521"
	TagSKEd25519  = "sk-ssh-ed25519@openssh.com"
	TagSKECDSA256 = "sk-ecdsa-sha2-nistp256@openssh.com"
)

const (
	certSuffix    = "-cert-v01@openssh.com"
	opensshSuffix = "@openssh.com"
)

// PublicParams is the parsed public parameter set of one key. The wire
// layout behind Marshal is fixed per tag.
type PublicParams interface {
	// Tag returns the key type tag the parameters belong to.
	Tag() string

	// Marshal appends the parameters to w in their wire layout, without
	// the leading tag string.
	Marshal(w *wire.Writer) error

	// Fields returns the parameters as an ordered name-to-value mapping
	// for display and serialization.
	Fields() *types.Fields
}

// PrivateParams is the parsed private parameter set of one key. Private
// parameters always embed enough material to reconstruct the public half.
type PrivateParams interface {
	// Tag returns the key type tag the parameters belong to.
	Tag() string

	// Marshal appends the parameters to w in their wire layout, without
	// the leading tag string.
	Marshal(w *wire.Writer) error

	// Fields returns the parameters as an ordered name-to-value mapping
	// for display and serialization.
	Fields() *types.Fields

	// Public derives the public parameter set from the private material.
	Public() PublicParams
}

// GenerateOptions configures key generation.
type GenerateOptions struct {
	// Bits selects the modulus size for RSA generation; zero means
	// DefaultRSABits. Key types with a fixed size ignore it.
	Bits int

	// Rand is the entropy source. Nil means crypto/rand.Reader.
	Rand io.Reader
}

func (o GenerateOptions) reader() io.Reader {
	if o.Rand == nil {
		return rand.Reader
	}
	return o.Rand
}

// Codec parses, marshals and generates the parameters of one key type.
// Parse methods consume from a shared cursor and must read exactly the
// fields of their layout; containers interleave records without per-record
// length prefixes.
type Codec interface {
	// Tag returns the key type tag this codec handles.
	Tag() string

	// ParsePublic reads the public parameter layout from r.
	ParsePublic(r *wire.Reader) (PublicParams, error)

	// ParsePrivate reads the private parameter layout from r.
	ParsePrivate(r *wire.Reader) (PrivateParams, error)

	// Generate creates a new private parameter set.
	Generate(opts GenerateOptions) (PrivateParams, error)
}

var codecs = map[string]Codec{}

func register(c Codec) {
	codecs[c.Tag()] = c
}

// Lookup returns the codec registered for tag.
func Lookup(tag string) (Codec, error) {
	c, ok := codecs[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, tag)
	}
	return c, nil
}

// Names returns the registered key type tags in sorted order.
func Names() []string {
	out := make([]string, 0, len(codecs))
	for name := range codecs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsCert reports whether tag names a certificate variant.
func IsCert(tag string) bool {
	return strings.HasSuffix(tag, certSuffix)
}

// CertTagFor returns the certificate tag for a base key type tag. Tags in
// the @openssh.com namespace keep their domain suffix last.
func CertTagFor(base string) string {
	if s, ok := strings.CutSuffix(base, opensshSuffix); ok {
		return s + certSuffix
	}
	return base + certSuffix
}

// UnmarshalPublic decodes a complete public key blob: a tag string
// followed by the tag's public parameter layout, with nothing after it.
func UnmarshalPublic(blob []byte) (PublicParams, error) {
	r := wire.NewReader(blob)
	tag, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keytype: read tag: %w", err)
	}
	c, err := Lookup(tag)
	if err != nil {
		return nil, err
	}
	p, err := c.ParsePublic(r)
	if err != nil {
		return nil, err
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("keytype: public blob for %s: %w", tag, err)
	}
	return p, nil
}

// MarshalPublic encodes params as a complete public key blob, tag string
// included.
func MarshalPublic(p PublicParams) ([]byte, error) {
	w := wire.NewWriter()
	w.WriteString(p.Tag())
	if err := p.Marshal(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
