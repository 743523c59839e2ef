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
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/jeremyhahn/go-sshkeys/pkg/types"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

// DefaultRSABits is the modulus size used when GenerateOptions.Bits is
// zero.
const DefaultRSABits = 4096

func init() {
	register(rsaCodec{})
}

// RSAPublicParams holds the public half of an ssh-rsa key.
type RSAPublicParams struct {
	E *big.Int
	N *big.Int
}

// Tag returns "ssh-rsa".
func (p *RSAPublicParams) Tag() string { return TagRSA }

func (p *RSAPublicParams) Marshal(w *wire.Writer) error {
	w.WriteMPInt(p.E)
	w.WriteMPInt(p.N)
	return nil
}

func (p *RSAPublicParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("e", types.MPInt(p.E))
	f.Set("n", types.MPInt(p.N))
	return f
}

// RSAPrivateParams holds the private half of an ssh-rsa key. IQMP is the
// inverse of Q modulo P, carried on the wire as a CRT shortcut.
type RSAPrivateParams struct {
	N    *big.Int
	E    *big.Int
	D    *big.Int
	IQMP *big.Int
	P    *big.Int
	Q    *big.Int
}

// Tag returns "ssh-rsa".
func (p *RSAPrivateParams) Tag() string { return TagRSA }

func (p *RSAPrivateParams) Marshal(w *wire.Writer) error {
	w.WriteMPInt(p.N)
	w.WriteMPInt(p.E)
	w.WriteMPInt(p.D)
	w.WriteMPInt(p.IQMP)
	w.WriteMPInt(p.P)
	w.WriteMPInt(p.Q)
	return nil
}

func (p *RSAPrivateParams) Fields() *types.Fields {
	f := types.NewFields()
	f.Set("n", types.MPInt(p.N))
	f.Set("e", types.MPInt(p.E))
	f.Set("d", types.MPInt(p.D))
	f.Set("iqmp", types.MPInt(p.IQMP))
	f.Set("p", types.MPInt(p.P))
	f.Set("q", types.MPInt(p.Q))
	return f
}

// Public derives the public parameters from the private material.
func (p *RSAPrivateParams) Public() PublicParams {
	return &RSAPublicParams{E: p.E, N: p.N}
}

type rsaCodec struct{}

func (rsaCodec) Tag() string { return TagRSA }

func (rsaCodec) ParsePublic(r *wire.Reader) (PublicParams, error) {
	var p RSAPublicParams
	var err error
	if p.E, err = r.ReadMPInt(); err != nil {
		return nil, fmt.Errorf("keytype: rsa e: %w", err)
	}
	if p.N, err = r.ReadMPInt(); err != nil {
		return nil, fmt.Errorf("keytype: rsa n: %w", err)
	}
	return &p, nil
}

func (rsaCodec) ParsePrivate(r *wire.Reader) (PrivateParams, error) {
	var p RSAPrivateParams
	for _, field := range []struct {
		name string
		dst  **big.Int
	}{
		{"n", &p.N},
		{"e", &p.E},
		{"d", &p.D},
		{"iqmp", &p.IQMP},
		{"p", &p.P},
		{"q", &p.Q},
	} {
		n, err := r.ReadMPInt()
		if err != nil {
			return nil, fmt.Errorf("keytype: rsa %s: %w", field.name, err)
		}
		*field.dst = n
	}
	return &p, nil
}

func (rsaCodec) Generate(opts GenerateOptions) (PrivateParams, error) {
	bits := opts.Bits
	if bits == 0 {
		bits = DefaultRSABits
	}
	key, err := rsa.GenerateKey(opts.reader(), bits)
	if err != nil {
		return nil, fmt.Errorf("keytype: generate rsa: %w", err)
	}
	return &RSAPrivateParams{
		N:    key.N,
		E:    big.NewInt(int64(key.E)),
		D:    key.D,
		IQMP: key.Precomputed.Qinv,
		P:    key.Primes[0],
		Q:    key.Primes[1],
	}, nil
}
