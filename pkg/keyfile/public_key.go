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
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
)

// PublicKeyLine is one line of the textual public key format: a key and
// its optional clear-text comment.
type PublicKeyLine struct {
	Key     *PublicKey
	Comment string
}

// ParsePublicLine decodes one line of the textual public key format:
// the clear-text key type tag, the base64 key blob, and an optional
// comment. The tag inside the blob must repeat the clear-text tag.
func ParsePublicLine(line string) (*PublicKey, string, error) {
	rest := strings.TrimSpace(line)
	tag, rest, ok := cutAnySpace(rest)
	if !ok {
		return nil, "", fmt.Errorf("%w: missing key blob", ErrInvalidPublicLine)
	}
	enc, comment, _ := cutAnySpace(rest)

	blob, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidPublicLine, err)
	}
	params, err := keytype.UnmarshalPublic(blob)
	if err != nil {
		return nil, "", err
	}
	if params.Tag() != tag {
		return nil, "", fmt.Errorf("%w: line says %s, blob says %s",
			ErrKeyTypeMismatch, tag, params.Tag())
	}
	return NewPublicKey(params), comment, nil
}

// FormatPublicLine renders a key in the textual public key format,
// without a trailing newline.
func FormatPublicLine(key *PublicKey, comment string) (string, error) {
	blob, err := keytype.MarshalPublic(key.Params)
	if err != nil {
		return "", err
	}
	line := key.KeyType() + " " + base64.StdEncoding.EncodeToString(blob)
	if comment != "" {
		line += " " + comment
	}
	return line, nil
}

// ParseAuthorizedKeys decodes a multi-line public key file. Blank lines
// and lines starting with '#' are skipped; every other line must be a
// valid public key line.
func ParseAuthorizedKeys(data []byte) ([]PublicKeyLine, error) {
	var out []PublicKeyLine
	for i, raw := range bytes.Split(data, []byte("\n")) {
		line := strings.TrimSpace(string(raw))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, comment, err := ParsePublicLine(line)
		if err != nil {
			return nil, fmt.Errorf("keyfile: line %d: %w", i+1, err)
		}
		out = append(out, PublicKeyLine{Key: key, Comment: comment})
	}
	return out, nil
}

// FormatAuthorizedKeys renders keys one per line, trailing newline
// included.
func FormatAuthorizedKeys(lines []PublicKeyLine) ([]byte, error) {
	var b bytes.Buffer
	for _, entry := range lines {
		line, err := FormatPublicLine(entry.Key, entry.Comment)
		if err != nil {
			return nil, err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}

// cutAnySpace splits s at its first run of spaces or tabs, trimming the
// separator from the remainder.
func cutAnySpace(s string) (head, tail string, found bool) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, "", false
	}
	return s[:i], strings.TrimLeft(s[i:], " \t"), true
}
