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
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
)

// ToSSHPublicKey converts public key parameters to an x/crypto/ssh
// public key. Unlike the crypto bridge this works for every registered
// tag, security keys and certificates included, because the conversion
// goes through the shared wire encoding.
func ToSSHPublicKey(params keytype.PublicParams) (ssh.PublicKey, error) {
	blob, err := keytype.MarshalPublic(params)
	if err != nil {
		return nil, err
	}
	pub, err := ssh.ParsePublicKey(blob)
	if err != nil {
		return nil, fmt.Errorf("export: ssh public key: %w", err)
	}
	return pub, nil
}

// ToAuthorizedKey renders one authorized_keys line for the key, without
// a trailing newline.
func ToAuthorizedKey(params keytype.PublicParams, comment string) (string, error) {
	pub, err := ToSSHPublicKey(params)
	if err != nil {
		return "", err
	}
	line := strings.TrimRight(string(ssh.MarshalAuthorizedKey(pub)), "\n")
	if comment != "" {
		line += " " + comment
	}
	return line, nil
}

// FingerprintSHA256 returns the key fingerprint in the format printed by
// ssh-keygen -l: "SHA256:" followed by unpadded base64.
func FingerprintSHA256(params keytype.PublicParams) (string, error) {
	pub, err := ToSSHPublicKey(params)
	if err != nil {
		return "", err
	}
	return ssh.FingerprintSHA256(pub), nil
}

// FingerprintLegacyMD5 returns the colon-separated hex MD5 fingerprint
// (ssh-keygen -l -E md5).
func FingerprintLegacyMD5(params keytype.PublicParams) (string, error) {
	pub, err := ToSSHPublicKey(params)
	if err != nil {
		return "", err
	}
	return ssh.FingerprintLegacyMD5(pub), nil
}
