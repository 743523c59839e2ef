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
	"crypto/ed25519"
	"fmt"

	"github.com/jeremyhahn/go-sshkeys/pkg/types"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

// FIDO credential flag bits carried in the private parameters of
// security-key types.
const (
	SKFlagUserPresence     uint8 = 0x01
	SKFlagUserVerification uint8 = 0x04
	SKFlagResidentKey      uint8 = 0x20
)

func init() {
	register(skEd25519Codec{})
	register(skECDSACodec{})
}

// SKFlagNames renders the known flag bits of a security-key credential
// as human-readable names, in bit order.
func SKFlagNames(flags uint8) []string {
	var names []string
	if flags&SKFlagUserPresence != 0 {
		names = append(names, "user-presence")
	}
	if flags&SKFlagUserVerification != 0 {
		names = append(names, "user-verification")
	}
	if flags&SKFlagResidentKey != 0 {
		names = append(names, "resident-key")
	}
	return names
}

// SKEd25519PublicParams holds the public half of an sk-ssh-ed25519 key:
// the curve point and the FIDO relying party the credential is scoped to.
type SKEd25519PublicParams struct {
	Pub         []byte
	Application string
}

// Tag returns "sk-ssh-ed25519@openssh.com".
func (p *SKEd25519PublicParams) Tag() string { return TagSKEd25519 }

func (p *SKEd25519PublicParams) Marshal(w *wire.Writer) error {
	w.WriteBytes(p.Pub)
	w.WriteString(p.Application)
	return nil
}

func (p *SKEd25519PublicParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("public", types.Bytes(p.Pub))
	f.Set("application", types.String(p.Application))
	return f
}

// SKEd25519PrivateParams holds the private half of an sk-ssh-ed25519
// key. The signing secret never leaves the authenticator; KeyHandle is
// the credential reference the authenticator needs to use it.
type SKEd25519PrivateParams struct {
	Pub         []byte
	Application string
	Flags       uint8
	KeyHandle   []byte
	Reserved    []byte
}

// Tag returns "sk-ssh-ed25519@openssh.com".
func (p *SKEd25519PrivateParams) Tag() string { return TagSKEd25519 }

func (p *SKEd25519PrivateParams) Marshal(w *wire.Writer) error {
	w.WriteBytes(p.Pub)
	w.WriteString(p.Application)
	w.WriteU8(p.Flags)
	w.WriteBytes(p.KeyHandle)
	w.WriteBytes(p.Reserved)
	return nil
}

func (p *SKEd25519PrivateParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("public", types.Bytes(p.Pub))
	f.Set("application", types.String(p.Application))
	f.Set("flags", types.Uint8(p.Flags))
	f.Set("key_handle", types.Bytes(p.KeyHandle))
	f.Set("reserved", types.Bytes(p.Reserved))
	return f
}

// Public derives the public parameters from the private material.
func (p *SKEd25519PrivateParams) Public() PublicParams {
	return &SKEd25519PublicParams{Pub: p.Pub, Application: p.Application}
}

type skEd25519Codec struct{}

func (skEd25519Codec) Tag() string { return TagSKEd25519 }

func (skEd25519Codec) ParsePublic(r *wire.Reader) (PublicParams, error) {
	pub, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keytype: sk-ed25519 public: %w", err)
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: sk-ed25519 public point is %d bytes, want %d",
			ErrInvalidParams, len(pub), ed25519.PublicKeySize)
	}
	app, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keytype: sk-ed25519 application: %w", err)
	}
	return &SKEd25519PublicParams{Pub: pub, Application: app}, nil
}

func (c skEd25519Codec) ParsePrivate(r *wire.Reader) (PrivateParams, error) {
	pub, err := c.ParsePublic(r)
	if err != nil {
		return nil, err
	}
	base := pub.(*SKEd25519PublicParams)
	p := SKEd25519PrivateParams{Pub: base.Pub, Application: base.Application}
	if p.Flags, err = r.ReadU8(); err != nil {
		return nil, fmt.Errorf("keytype: sk-ed25519 flags: %w", err)
	}
	if p.KeyHandle, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: sk-ed25519 key_handle: %w", err)
	}
	if p.Reserved, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: sk-ed25519 reserved: %w", err)
	}
	return &p, nil
}

func (skEd25519Codec) Generate(opts GenerateOptions) (PrivateParams, error) {
	return nil, fmt.Errorf("%w: %s credentials are created on the authenticator",
		ErrGenerateUnsupported, TagSKEd25519)
}

// SKECDSAPublicParams holds the public half of an sk-ecdsa-sha2-nistp256
// key.
type SKECDSAPublicParams struct {
	Identifier  string
	Q           []byte
	Application string
}

// Tag returns "sk-ecdsa-sha2-nistp256@openssh.com".
func (p *SKECDSAPublicParams) Tag() string { return TagSKECDSA256 }

func (p *SKECDSAPublicParams) Marshal(w *wire.Writer) error {
	w.WriteString(p.Identifier)
	w.WriteBytes(p.Q)
	w.WriteString(p.Application)
	return nil
}

func (p *SKECDSAPublicParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("identifier", types.String(p.Identifier))
	f.Set("q", types.Bytes(p.Q))
	f.Set("application", types.String(p.Application))
	return f
}

// SKECDSAPrivateParams holds the private half of an sk-ecdsa-sha2-nistp256
// key. Unlike plain ecdsa-sha2 keys there is no scalar d here; signing
// happens on the authenticator via KeyHandle.
type SKECDSAPrivateParams struct {
	Identifier  string
	Q           []byte
	Application string
	Flags       uint8
	KeyHandle   []byte
	Reserved    []byte
}

// Tag returns "sk-ecdsa-sha2-nistp256@openssh.com".
func (p *SKECDSAPrivateParams) Tag() string { return TagSKECDSA256 }

func (p *SKECDSAPrivateParams) Marshal(w *wire.Writer) error {
	w.WriteString(p.Identifier)
	w.WriteBytes(p.Q)
	w.WriteString(p.Application)
	w.WriteU8(p.Flags)
	w.WriteBytes(p.KeyHandle)
	w.WriteBytes(p.Reserved)
	return nil
}

func (p *SKECDSAPrivateParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("identifier", types.String(p.Identifier))
	f.Set("q", types.Bytes(p.Q))
	f.Set("application", types.String(p.Application))
	f.Set("flags", types.Uint8(p.Flags))
	f.Set("key_handle", types.Bytes(p.KeyHandle))
	f.Set("reserved", types.Bytes(p.Reserved))
	return f
}

// Public derives the public parameters from the private material.
func (p *SKECDSAPrivateParams) Public() PublicParams {
	return &SKECDSAPublicParams{Identifier: p.Identifier, Q: p.Q, Application: p.Application}
}

type skECDSACodec struct{}

func (skECDSACodec) Tag() string { return TagSKECDSA256 }

func (skECDSACodec) ParsePublic(r *wire.Reader) (PublicParams, error) {
	id, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keytype: sk-ecdsa identifier: %w", err)
	}
	if id != "nistp256" {
		return nil, fmt.Errorf("%w: curve identifier %q does not match key type %s",
			ErrInvalidParams, id, TagSKECDSA256)
	}
	q, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keytype: sk-ecdsa q: %w", err)
	}
	app, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keytype: sk-ecdsa application: %w", err)
	}
	return &SKECDSAPublicParams{Identifier: id, Q: q, Application: app}, nil
}

func (c skECDSACodec) ParsePrivate(r *wire.Reader) (PrivateParams, error) {
	pub, err := c.ParsePublic(r)
	if err != nil {
		return nil, err
	}
	base := pub.(*SKECDSAPublicParams)
	p := SKECDSAPrivateParams{
		Identifier:  base.Identifier,
		Q:           base.Q,
		Application: base.Application,
	}
	if p.Flags, err = r.ReadU8(); err != nil {
		return nil, fmt.Errorf("keytype: sk-ecdsa flags: %w", err)
	}
	if p.KeyHandle, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: sk-ecdsa key_handle: %w", err)
	}
	if p.Reserved, err = r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keytype: sk-ecdsa reserved: %w", err)
	}
	return &p, nil
}

func (skECDSACodec) Generate(opts GenerateOptions) (PrivateParams, error) {
	return nil, fmt.Errorf("%w: %s credentials are created on the authenticator",
		ErrGenerateUnsupported, TagSKECDSA256)
}
