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
	"bytes"
	"encoding/base64"
	"encoding/pem"
	"fmt"
)

const (
	armorType  = "OPENSSH PRIVATE KEY"
	armorBegin = "-----BEGIN " + armorType + "-----"
	armorEnd   = "-----END " + armorType + "-----"

	// ssh-keygen wraps armor at 70 columns, not the 64 of RFC 1421 PEM.
	armorWidth = 70
)

// IsArmored reports whether data looks like an armored private key file.
func IsArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(armorBegin))
}

// EncodeArmor wraps a binary container in PEM-like armor the way
// ssh-keygen writes it: 70-column base64 between BEGIN and END markers,
// trailing newline included.
func EncodeArmor(raw []byte) []byte {
	enc := base64.StdEncoding.EncodeToString(raw)
	var b bytes.Buffer
	b.Grow(len(enc) + len(enc)/armorWidth + len(armorBegin) + len(armorEnd) + 4)
	b.WriteString(armorBegin)
	b.WriteByte('\n')
	for len(enc) > armorWidth {
		b.WriteString(enc[:armorWidth])
		b.WriteByte('\n')
		enc = enc[armorWidth:]
	}
	if len(enc) > 0 {
		b.WriteString(enc)
		b.WriteByte('\n')
	}
	b.WriteString(armorEnd)
	b.WriteByte('\n')
	return b.Bytes()
}

// DecodeArmor strips the armor and returns the binary container. Any
// base64 line width is accepted.
func DecodeArmor(data []byte) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no armor block found", ErrInvalidArmor)
	}
	if block.Type != armorType {
		return nil, fmt.Errorf("%w: block type %q", ErrInvalidArmor, block.Type)
	}
	return block.Bytes, nil
}

// ParsePrivateArmored decodes an armored private key file.
func ParsePrivateArmored(data, passphrase []byte) (*PrivateKeyList, error) {
	raw, err := DecodeArmor(data)
	if err != nil {
		return nil, err
	}
	return ParsePrivate(raw, passphrase)
}

// ParsePublicListArmored decodes the outer layer of an armored private
// key file without a passphrase.
func ParsePublicListArmored(data []byte) (*PublicList, error) {
	raw, err := DecodeArmor(data)
	if err != nil {
		return nil, err
	}
	return ParsePublicList(raw)
}

// EncodeArmored packs the list and wraps it in armor, producing a
// complete private key file.
func (l *PrivateKeyList) EncodeArmored(passphrase []byte) ([]byte, error) {
	raw, err := l.Pack(passphrase)
	if err != nil {
		return nil, err
	}
	return EncodeArmor(raw), nil
}
