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

package export

import (
	"bytes"
	"crypto"
	"crypto/dsa" //nolint:staticcheck // ssh-dss interop requires classic DSA
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
)

// ToCryptoPrivate converts private key parameters to the matching
// standard library key type: *rsa.PrivateKey, ed25519.PrivateKey,
// *ecdsa.PrivateKey or *dsa.PrivateKey. Security-key and certificate
// parameters have no such form and return ErrUnsupportedExport.
func ToCryptoPrivate(params keytype.PrivateParams) (crypto.PrivateKey, error) {
	if params == nil {
		return nil, ErrInvalidPrivateKey
	}
	switch p := params.(type) {
	case *keytype.RSAPrivateParams:
		if !p.E.IsInt64() {
			return nil, fmt.Errorf("%w: rsa exponent too large", ErrInvalidPrivateKey)
		}
		key := &rsa.PrivateKey{
			PublicKey: rsa.PublicKey{N: p.N, E: int(p.E.Int64())},
			D:         p.D,
			Primes:    []*big.Int{p.P, p.Q},
		}
		key.Precompute()
		return key, nil
	case *keytype.Ed25519PrivateParams:
		if len(p.PrivatePublic) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("%w: ed25519 private key is %d bytes",
				ErrInvalidPrivateKey, len(p.PrivatePublic))
		}
		return ed25519.PrivateKey(bytes.Clone(p.PrivatePublic)), nil
	case *keytype.ECDSAPrivateParams:
		pub, err := ecdsaPublicKey(p.Identifier, p.Q)
		if err != nil {
			return nil, err
		}
		return &ecdsa.PrivateKey{PublicKey: *pub, D: p.D}, nil
	case *keytype.DSAPrivateParams:
		return &dsa.PrivateKey{
			PublicKey: dsa.PublicKey{
				Parameters: dsa.Parameters{P: p.P, Q: p.Q, G: p.G},
				Y:          p.Y,
			},
			X: p.X,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s has no crypto.PrivateKey form",
			ErrUnsupportedExport, params.Tag())
	}
}

// ToCryptoPublic converts public key parameters to the matching standard
// library key type. Security-key and certificate parameters return
// ErrUnsupportedExport; use ToSSHPublicKey for those.
func ToCryptoPublic(params keytype.PublicParams) (crypto.PublicKey, error) {
	if params == nil {
		return nil, ErrInvalidPublicKey
	}
	switch p := params.(type) {
	case *keytype.RSAPublicParams:
		if !p.E.IsInt64() {
			return nil, fmt.Errorf("%w: rsa exponent too large", ErrInvalidPublicKey)
		}
		return &rsa.PublicKey{N: p.N, E: int(p.E.Int64())}, nil
	case *keytype.Ed25519PublicParams:
		if len(p.Pub) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: ed25519 public key is %d bytes",
				ErrInvalidPublicKey, len(p.Pub))
		}
		return ed25519.PublicKey(bytes.Clone(p.Pub)), nil
	case *keytype.ECDSAPublicParams:
		pub, err := ecdsaPublicKey(p.Identifier, p.Q)
		if err != nil {
			return nil, err
		}
		return pub, nil
	case *keytype.DSAPublicParams:
		return &dsa.PublicKey{
			Parameters: dsa.Parameters{P: p.P, Q: p.Q, G: p.G},
			Y:          p.Y,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s has no crypto.PublicKey form",
			ErrUnsupportedExport, params.Tag())
	}
}

// FromCryptoPrivate converts a standard library private key into the
// parameters used by the container codec, for packing foreign keys into
// openssh-key-v1 files.
func FromCryptoPrivate(key crypto.PrivateKey) (keytype.PrivateParams, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		if len(k.Primes) != 2 {
			return nil, fmt.Errorf("%w: rsa key with %d primes",
				ErrInvalidPrivateKey, len(k.Primes))
		}
		if k.Precomputed.Qinv == nil {
			k.Precompute()
		}
		return &keytype.RSAPrivateParams{
			N:    k.N,
			E:    big.NewInt(int64(k.E)),
			D:    k.D,
			IQMP: k.Precomputed.Qinv,
			P:    k.Primes[0],
			Q:    k.Primes[1],
		}, nil
	case ed25519.PrivateKey:
		if len(k) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("%w: ed25519 private key is %d bytes",
				ErrInvalidPrivateKey, len(k))
		}
		pp := bytes.Clone(k)
		return &keytype.Ed25519PrivateParams{
			Pub:           bytes.Clone(pp[ed25519.SeedSize:]),
			PrivatePublic: pp,
		}, nil
	case *ed25519.PrivateKey:
		// ssh.ParseRawPrivateKey hands ed25519 back as a pointer.
		return FromCryptoPrivate(*k)
	case *ecdsa.PrivateKey:
		id, err := identifierForCurve(k.Curve)
		if err != nil {
			return nil, err
		}
		return &keytype.ECDSAPrivateParams{
			Identifier: id,
			Q:          marshalCurvePoint(k.Curve, k.X, k.Y),
			D:          k.D,
		}, nil
	case *dsa.PrivateKey:
		return &keytype.DSAPrivateParams{P: k.P, Q: k.Q, G: k.G, Y: k.Y, X: k.X}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedExport, key)
	}
}

// FromCryptoPublic is the public-half counterpart of FromCryptoPrivate.
func FromCryptoPublic(key crypto.PublicKey) (keytype.PublicParams, error) {
	switch k := key.(type) {
	case *rsa.PublicKey:
		return &keytype.RSAPublicParams{E: big.NewInt(int64(k.E)), N: k.N}, nil
	case ed25519.PublicKey:
		if len(k) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: ed25519 public key is %d bytes",
				ErrInvalidPublicKey, len(k))
		}
		return &keytype.Ed25519PublicParams{Pub: bytes.Clone(k)}, nil
	case *ecdsa.PublicKey:
		id, err := identifierForCurve(k.Curve)
		if err != nil {
			return nil, err
		}
		return &keytype.ECDSAPublicParams{
			Identifier: id,
			Q:          marshalCurvePoint(k.Curve, k.X, k.Y),
		}, nil
	case *dsa.PublicKey:
		return &keytype.DSAPublicParams{P: k.P, Q: k.Q, G: k.G, Y: k.Y}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedExport, key)
	}
}

var curvesByIdentifier = map[string]elliptic.Curve{
	"nistp256": elliptic.P256(),
	"nistp384": elliptic.P384(),
	"nistp521": elliptic.P521(),
}

func identifierForCurve(curve elliptic.Curve) (string, error) {
	for id, c := range curvesByIdentifier {
		if c == curve {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: curve %s", ErrUnsupportedExport, curve.Params().Name)
}

func ecdsaPublicKey(identifier string, point []byte) (*ecdsa.PublicKey, error) {
	curve, ok := curvesByIdentifier[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: curve identifier %q", ErrUnsupportedExport, identifier)
	}
	x, y := elliptic.Unmarshal(curve, point) //nolint:staticcheck // SA1019: wire format carries uncompressed points
	if x == nil {
		return nil, fmt.Errorf("%w: point not on %s", ErrInvalidPublicKey, identifier)
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

func marshalCurvePoint(curve elliptic.Curve, x, y *big.Int) []byte {
	return elliptic.Marshal(curve, x, y) //nolint:staticcheck // SA1019: wire format carries uncompressed points
}
