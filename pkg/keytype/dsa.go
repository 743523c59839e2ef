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
	"crypto/dsa" //nolint:staticcheck // ssh-dss interop requires classic DSA
	"fmt"
	"math/big"

	"github.com/jeremyhahn/go-sshkeys/pkg/types"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

func init() {
	register(dsaCodec{})
}

// DSAPublicParams holds the public half of an ssh-dss key.
type DSAPublicParams struct {
	P *big.Int
	Q *big.Int
	G *big.Int
	Y *big.Int
}

// Tag returns "ssh-dss".
func (p *DSAPublicParams) Tag() string { return TagDSA }

func (p *DSAPublicParams) Marshal(w *wire.Writer) error {
	w.WriteMPInt(p.P)
	w.WriteMPInt(p.Q)
	w.WriteMPInt(p.G)
	w.WriteMPInt(p.Y)
	return nil
}

func (p *DSAPublicParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("p", types.MPInt(p.P))
	f.Set("q", types.MPInt(p.Q))
	f.Set("g", types.MPInt(p.G))
	f.Set("y", types.MPInt(p.Y))
	return f
}

// DSAPrivateParams holds the private half of an ssh-dss key: the public
// domain parameters plus the private exponent x.
type DSAPrivateParams struct {
	P *big.Int
	Q *big.Int
	G *big.Int
	Y *big.Int
	X *big.Int
}

// Tag returns "ssh-dss".
func (p *DSAPrivateParams) Tag() string { return TagDSA }

func (p *DSAPrivateParams) Marshal(w *wire.Writer) error {
	w.WriteMPInt(p.P)
	w.WriteMPInt(p.Q)
	w.WriteMPInt(p.G)
	w.WriteMPInt(p.Y)
	w.WriteMPInt(p.X)
	return nil
}

func (p *DSAPrivateParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("p", types.MPInt(p.P))
	f.Set("q", types.MPInt(p.Q))
	f.Set("g", types.MPInt(p.G))
	f.Set("y", types.MPInt(p.Y))
	f.Set("x", types.MPInt(p.X))
	return f
}

// Public derives the public parameters from the private material.
func (p *DSAPrivateParams) Public() PublicParams {
	return &DSAPublicParams{P: p.P, Q: p.Q, G: p.G, Y: p.Y}
}

type dsaCodec struct{}

func (dsaCodec) Tag() string { return TagDSA }

func (dsaCodec) ParsePublic(r *wire.Reader) (PublicParams, error) {
	var p DSAPublicParams
	for _, field := range []struct {
		name string
		dst  **big.Int
	}{
		{"p", &p.P},
		{"q", &p.Q},
		{"g", &p.G},
		{"y", &p.Y},
	} {
		n, err := r.ReadMPInt()
		if err != nil {
			return nil, fmt.Errorf("keytype: dsa %s: %w", field.name, err)
		}
		*field.dst = n
	}
	return &p, nil
}

func (dsaCodec) ParsePrivate(r *wire.Reader) (PrivateParams, error) {
	var p DSAPrivateParams
	for _, field := range []struct {
		name string
		dst  **big.Int
	}{
		{"p", &p.P},
		{"q", &p.Q},
		{"g", &p.G},
		{"y", &p.Y},
		{"x", &p.X},
	} {
		n, err := r.ReadMPInt()
		if err != nil {
			return nil, fmt.Errorf("keytype: dsa %s: %w", field.name, err)
		}
		*field.dst = n
	}
	return &p, nil
}

// Generate produces a 1024/160 bit key pair, the only size the ssh-dss
// wire format deploys in practice.
func (dsaCodec) Generate(opts GenerateOptions) (PrivateParams, error) {
	var params dsa.Parameters
	if err := dsa.GenerateParameters(&params, opts.reader(), dsa.L1024N160); err != nil {
		return nil, fmt.Errorf("keytype: generate dsa parameters: %w", err)
	}
	key := dsa.PrivateKey{PublicKey: dsa.PublicKey{Parameters: params}}
	if err := dsa.GenerateKey(&key, opts.reader()); err != nil {
		return nil, fmt.Errorf("keytype: generate dsa: %w", err)
	}
	return &DSAPrivateParams{P: key.P, Q: key.Q, G: key.G, Y: key.Y, X: key.X}, nil
}
