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
	"crypto/dsa" //nolint:staticcheck // ssh-dss interop requires classic DSA
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"

	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
)

// EncodeJWK renders private key parameters as an RFC 7517 JSON Web Key.
// RSA, Ed25519 and ECDSA keys are supported; ssh-dss has no JWA key type
// and returns ErrUnsupportedExport.
func EncodeJWK(params keytype.PrivateParams, kid string) ([]byte, error) {
	key, err := ToCryptoPrivate(params)
	if err != nil {
		return nil, err
	}
	if _, ok := key.(*dsa.PrivateKey); ok {
		return nil, fmt.Errorf("%w: ssh-dss in JWK", ErrUnsupportedExport)
	}
	jwk := jose.JSONWebKey{Key: key, KeyID: kid}
	data, err := jwk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export: marshal JWK: %w", err)
	}
	return data, nil
}

// EncodePublicJWK renders public key parameters as a public JSON Web
// Key.
func EncodePublicJWK(params keytype.PublicParams, kid string) ([]byte, error) {
	key, err := ToCryptoPublic(params)
	if err != nil {
		return nil, err
	}
	if _, ok := key.(*dsa.PublicKey); ok {
		return nil, fmt.Errorf("%w: ssh-dss in JWK", ErrUnsupportedExport)
	}
	jwk := jose.JSONWebKey{Key: key, KeyID: kid}
	data, err := jwk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export: marshal JWK: %w", err)
	}
	return data, nil
}

// DecodeJWK parses a JSON Web Key holding private material into private
// key parameters.
func DecodeJWK(data []byte) (keytype.PrivateParams, error) {
	jwk, err := unmarshalJWK(data)
	if err != nil {
		return nil, err
	}
	if jwk.IsPublic() {
		return nil, fmt.Errorf("%w: JWK holds no private material", ErrInvalidPrivateKey)
	}
	return FromCryptoPrivate(jwk.Key)
}

// DecodePublicJWK parses a public JSON Web Key into public key
// parameters. A private JWK is reduced to its public half.
func DecodePublicJWK(data []byte) (keytype.PublicParams, error) {
	jwk, err := unmarshalJWK(data)
	if err != nil {
		return nil, err
	}
	if !jwk.IsPublic() {
		pub := jwk.Public()
		jwk = &pub
	}
	return FromCryptoPublic(jwk.Key)
}

func unmarshalJWK(data []byte) (*jose.JSONWebKey, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}
	var jwk jose.JSONWebKey
	if err := json.Unmarshal(data, &jwk); err != nil {
		return nil, fmt.Errorf("export: parse JWK: %w", err)
	}
	if !jwk.Valid() {
		return nil, fmt.Errorf("%w: JWK failed validation", ErrInvalidData)
	}
	return &jwk, nil
}
