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
	"fmt"

	"github.com/jeremyhahn/go-sshkeys/pkg/types"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

// Certificate usage types.
const (
	CertTypeUser uint32 = 1
	CertTypeHost uint32 = 2
)

func init() {
	for _, base := range []Codec{
		rsaCodec{},
		ed25519Codec{},
		dsaCodec{},
		ecdsaP256,
		ecdsaP384,
		ecdsaP521,
		skEd25519Codec{},
		skECDSACodec{},
	} {
		register(certCodec{tag: CertTagFor(base.Tag()), base: base})
	}
}

// CertTypeName renders a certificate type for display.
func CertTypeName(t uint32) string {
	switch t {
	case CertTypeUser:
		return "user"
	case CertTypeHost:
		return "host"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// CertPublicParams holds a *-cert-v01@openssh.com certificate: the base
// key type's public parameters wrapped in the CA-signed certificate
// envelope. ValidPrincipals, CriticalOptions and Extensions stay in
// their packed wire form; the signed blob must survive a round trip
// byte for byte.
type CertPublicParams struct {
	Nonce           []byte
	Base            PublicParams
	Serial          uint64
	CertType        uint32
	KeyID           string
	ValidPrincipals []byte
	ValidAfter      uint64
	ValidBefore     uint64
	CriticalOptions []byte
	Extensions      []byte
	Reserved        []byte
	SignatureKey    []byte
	Signature       []byte
}

// Tag returns the certificate tag derived from the base key type.
func (p *CertPublicParams) Tag() string { return CertTagFor(p.Base.Tag()) }

func (p *CertPublicParams) Marshal(w *wire.Writer) error {
	w.WriteBytes(p.Nonce)
	if err := p.Base.Marshal(w); err != nil {
		return err
	}
	w.WriteU64(p.Serial)
	w.WriteU32(p.CertType)
	w.WriteString(p.KeyID)
	w.WriteBytes(p.ValidPrincipals)
	w.WriteU64(p.ValidAfter)
	w.WriteU64(p.ValidBefore)
	w.WriteBytes(p.CriticalOptions)
	w.WriteBytes(p.Extensions)
	w.WriteBytes(p.Reserved)
	w.WriteBytes(p.SignatureKey)
	w.WriteBytes(p.Signature)
	return nil
}

// Fields flattens the base key's parameters into the certificate
// envelope, in wire order.
func (p *CertPublicParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("nonce", types.Bytes(p.Nonce))
	base := p.Base.Fields()
	for _, k := range base.Keys() {
		v, _ := base.Get(k)
		f.Set(k, v)
	}
	f.Set("serial", types.Uint64(p.Serial))
	f.Set("type", types.Uint32(p.CertType))
	f.Set("key_id", types.String(p.KeyID))
	f.Set("valid_principals", types.Bytes(p.ValidPrincipals))
	f.Set("valid_after", types.Uint64(p.ValidAfter))
	f.Set("valid_before", types.Uint64(p.ValidBefore))
	f.Set("critical_options", types.Bytes(p.CriticalOptions))
	f.Set("extensions", types.Bytes(p.Extensions))
	f.Set("reserved", types.Bytes(p.Reserved))
	f.Set("signature_key", types.Bytes(p.SignatureKey))
	f.Set("signature", types.Bytes(p.Signature))
	return f
}

// Principals unpacks the ValidPrincipals blob into its list of names. An
// empty blob means the certificate is valid for any principal.
func (p *CertPublicParams) Principals() ([]string, error) {
	r := wire.NewReader(p.ValidPrincipals)
	var out []string
	for !r.AtEnd() {
		s, err := r.ReadString()
		if err != nil {
			return nil, fmt.Errorf("keytype: cert principals: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

type certCodec struct {
	tag  string
	base Codec
}

func (c certCodec) Tag() string { return c.tag }

func (c certCodec) ParsePublic(r *wire.Reader) (PublicParams, error) {
	var p CertPublicParams
	var err error
	if p.Nonce, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: cert nonce: %w", err)
	}
	if p.Base, err = c.base.ParsePublic(r); err != nil {
		return nil, err
	}
	if p.Serial, err = r.ReadU64(); err != nil {
		return nil, fmt.Errorf("keytype: cert serial: %w", err)
	}
	if p.CertType, err = r.ReadU32(); err != nil {
		return nil, fmt.Errorf("keytype: cert type: %w", err)
	}
	if p.KeyID, err = r.ReadString(); err != nil {
		return nil, fmt.Errorf("keytype: cert key_id: %w", err)
	}
	if p.ValidPrincipals, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: cert valid_principals: %w", err)
	}
	if p.ValidAfter, err = r.ReadU64(); err != nil {
		return nil, fmt.Errorf("keytype: cert valid_after: %w", err)
	}
	if p.ValidBefore, err = r.ReadU64(); err != nil {
		return nil, fmt.Errorf("keytype: cert valid_before: %w", err)
	}
	if p.CriticalOptions, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: cert critical_options: %w", err)
	}
	if p.Extensions, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: cert extensions: %w", err)
	}
	if p.Reserved, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: cert reserved: %w", err)
	}
	if p.SignatureKey, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: cert signature_key: %w", err)
	}
	if p.Signature, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: cert signature: %w", err)
	}
	return &p, nil
}

func (c certCodec) ParsePrivate(r *wire.Reader) (PrivateParams, error) {
	return nil, fmt.Errorf("%w: %s", ErrCertificatePrivate, c.tag)
}

func (c certCodec) Generate(opts GenerateOptions) (PrivateParams, error) {
	return nil, fmt.Errorf("%w: certificates are issued by a CA signature over an existing key",
		ErrGenerateUnsupported)
}
