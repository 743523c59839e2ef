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
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/jeremyhahn/go-sshkeys/pkg/types"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

const ecdsaTagPrefix = "ecdsa-sha2-"

var (
	ecdsaP256 = ecdsaCodec{TagECDSA256, "nistp256", elliptic.P256()}
	ecdsaP384 = ecdsaCodec{TagECDSA384, "nistp384", elliptic.P384()}
	ecdsaP521 = ecdsaCodec{TagECDSA521, "nistp521", elliptic.P521()}
)

func init() {
	register(ecdsaP256)
	register(ecdsaP384)
	register(ecdsaP521)
}

// ECDSAPublicParams holds the public half of an ecdsa-sha2-* key. The
// wire layout repeats the curve name as its first field; Identifier must
// stay consistent with the tag the key travels under.
type ECDSAPublicParams struct {
	Identifier string
	Q          []byte
}

// Tag returns the ecdsa-sha2 tag for the embedded curve name.
func (p *ECDSAPublicParams) Tag() string { return ecdsaTagPrefix + p.Identifier }

func (p *ECDSAPublicParams) Marshal(w *wire.Writer) error {
	w.WriteString(p.Identifier)
	w.WriteBytes(p.Q)
	return nil
}

func (p *ECDSAPublicParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("identifier", types.String(p.Identifier))
	f.Set("q", types.Bytes(p.Q))
	return f
}

// ECDSAPrivateParams holds the private half of an ecdsa-sha2-* key.
type ECDSAPrivateParams struct {
	Identifier string
	Q          []byte
	D          *big.Int
}

// Tag returns the ecdsa-sha2 tag for the embedded curve name.
func (p *ECDSAPrivateParams) Tag() string { return ecdsaTagPrefix + p.Identifier }

func (p *ECDSAPrivateParams) Marshal(w *wire.Writer) error {
	w.WriteString(p.Identifier)
	w.WriteBytes(p.Q)
	w.WriteMPInt(p.D)
	return nil
}

func (p *ECDSAPrivateParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("identifier", types.String(p.Identifier))
	f.Set("q", types.Bytes(p.Q))
	f.Set("d", types.MPInt(p.D))
	return f
}

// Public derives the public parameters from the private material.
func (p *ECDSAPrivateParams) Public() PublicParams {
	return &ECDSAPublicParams{Identifier: p.Identifier, Q: p.Q}
}

type ecdsaCodec struct {
	tag        string
	identifier string
	curve      elliptic.Curve
}

func (c ecdsaCodec) Tag() string { return c.tag }

func (c ecdsaCodec) readIdentifier(r *wire.Reader) (string, error) {
	id, err := r.ReadString()
	if err != nil {
		return "", fmt.Errorf("keytype: ecdsa identifier: %w", err)
	}
	if id != c.identifier {
		return "", fmt.Errorf("%w: curve identifier %q does not match key type %s",
			ErrInvalidParams, id, c.tag)
	}
	return id, nil
}

func (c ecdsaCodec) ParsePublic(r *wire.Reader) (PublicParams, error) {
	id, err := c.readIdentifier(r)
	if err != nil {
		return nil, err
	}
	q, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keytype: ecdsa q: %w", err)
	}
	return &ECDSAPublicParams{Identifier: id, Q: q}, nil
}

func (c ecdsaCodec) ParsePrivate(r *wire.Reader) (PrivateParams, error) {
	id, err := c.readIdentifier(r)
	if err != nil {
		return nil, err
	}
	q, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keytype: ecdsa q: %w", err)
	}
	d, err := r.ReadMPInt()
	if err != nil {
		return nil, fmt.Errorf("keytype: ecdsa d: %w", err)
	}
	return &ECDSAPrivateParams{Identifier: id, Q: q, D: d}, nil
}

func (c ecdsaCodec) Generate(opts GenerateOptions) (PrivateParams, error) {
	key, err := ecdsa.GenerateKey(c.curve, opts.reader())
	if err != nil {
		return nil, fmt.Errorf("keytype: generate %s: %w", c.tag, err)
	}
	q := elliptic.Marshal(c.curve, key.X, key.Y) //nolint:staticcheck // SA1019: wire format carries uncompressed points
	return &ECDSAPrivateParams{Identifier: c.identifier, Q: q, D: key.D}, nil
}
