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
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/youmark/pkcs8"

	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
)

// PEM block types
const (
	PEMTypePrivateKey          = "PRIVATE KEY"
	PEMTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
	PEMTypePublicKey           = "PUBLIC KEY"
)

// EncodePKCS8 encodes private key parameters as PKCS#8 DER. With an
// empty password the output is a plain PrivateKeyInfo; otherwise the key
// is wrapped in PKCS#5 v2.0 encryption via youmark/pkcs8.
//
// ssh-dss has no PKCS#8 mapping and returns ErrUnsupportedExport.
func EncodePKCS8(params keytype.PrivateParams, password []byte) ([]byte, error) {
	key, err := ToCryptoPrivate(params)
	if err != nil {
		return nil, err
	}
	if _, ok := key.(*dsa.PrivateKey); ok {
		return nil, fmt.Errorf("%w: ssh-dss in PKCS#8", ErrUnsupportedExport)
	}

	if len(password) == 0 {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("export: marshal PKCS#8: %w", err)
		}
		return der, nil
	}

	der, err := pkcs8.MarshalPrivateKey(key, password, nil)
	if err != nil {
		return nil, fmt.Errorf("export: marshal encrypted PKCS#8: %w", err)
	}
	return der, nil
}

// DecodePKCS8 decodes PKCS#8 DER into private key parameters. Encrypted
// input needs the password it was encrypted with; a wrong password is
// reported as ErrInvalidPassword.
func DecodePKCS8(data, password []byte) (keytype.PrivateParams, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}
	if len(password) == 0 {
		// youmark/pkcs8 switches on nil to pick the unencrypted path.
		password = nil
	}

	key, err := pkcs8.ParsePKCS8PrivateKey(data, password)
	if err != nil {
		if isPasswordError(err) {
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("export: parse PKCS#8: %w", err)
	}
	return FromCryptoPrivate(key)
}

// EncodePKCS8PEM is EncodePKCS8 wrapped in a PEM block, typed
// "PRIVATE KEY" or "ENCRYPTED PRIVATE KEY" by password presence.
func EncodePKCS8PEM(params keytype.PrivateParams, password []byte) ([]byte, error) {
	der, err := EncodePKCS8(params, password)
	if err != nil {
		return nil, err
	}
	blockType := PEMTypePrivateKey
	if len(password) > 0 {
		blockType = PEMTypeEncryptedPrivateKey
	}
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}), nil
}

// DecodePKCS8PEM decodes the first PEM block in data as PKCS#8.
func DecodePKCS8PEM(data, password []byte) (keytype.PrivateParams, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMEncoding
	}
	return DecodePKCS8(block.Bytes, password)
}

// EncodePKIX encodes public key parameters as PKIX
// SubjectPublicKeyInfo DER. ssh-dss cannot be written by the standard
// library and returns ErrUnsupportedExport.
func EncodePKIX(params keytype.PublicParams) ([]byte, error) {
	key, err := ToCryptoPublic(params)
	if err != nil {
		return nil, err
	}
	if _, ok := key.(*dsa.PublicKey); ok {
		return nil, fmt.Errorf("%w: ssh-dss in PKIX", ErrUnsupportedExport)
	}
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("export: marshal PKIX public key: %w", err)
	}
	return der, nil
}

// DecodePKIX decodes PKIX SubjectPublicKeyInfo DER into public key
// parameters. DSA keys are readable even though EncodePKIX cannot write
// them.
func DecodePKIX(data []byte) (keytype.PublicParams, error) {
	if len(data) == 0 {
		return nil, ErrInvalidData
	}
	key, err := x509.ParsePKIXPublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("export: parse PKIX public key: %w", err)
	}
	return FromCryptoPublic(key)
}

// EncodePKIXPEM is EncodePKIX wrapped in a "PUBLIC KEY" PEM block.
func EncodePKIXPEM(params keytype.PublicParams) ([]byte, error) {
	der, err := EncodePKIX(params)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: PEMTypePublicKey, Bytes: der}), nil
}

// DecodePKIXPEM decodes the first PEM block in data as PKIX.
func DecodePKIXPEM(data []byte) (keytype.PublicParams, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMEncoding
	}
	return DecodePKIX(block.Bytes)
}

// isPasswordError recognizes the error shapes youmark/pkcs8 produces for
// wrong or missing passwords: the CBC unpad failure a bad key nearly
// always decrypts to, plus the ASN.1 noise when the padding happens to
// survive.
func isPasswordError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, want := range []string{
		"incorrect password",
		"invalid padding",
		"asn1: structure error",
		"tags don't match",
	} {
		if strings.Contains(msg, want) {
			return true
		}
	}
	return false
}
