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

package cli

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/jeremyhahn/go-sshkeys/pkg/keyfile"
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/jeremyhahn/go-sshkeys/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFingerprintEncryptedNoPassphrase(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_enc", keytype.TagEd25519, []byte("hunter2"), "locked")

	// Fingerprints come from the unencrypted outer layer, so no
	// passphrase is needed.
	var buf bytes.Buffer
	err := runFingerprint(s, NewPrinter("text", &buf), []string{"id_enc"}, "sha256")
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "256 SHA256:"), "unexpected output: %q", out)
	assert.Contains(t, out, "no comment (ssh-ed25519)\n")
}

func TestRunFingerprintPublicFile(t *testing.T) {
	s := testSettings(t)
	pair := writeTestKey(t, s, "id_test", keytype.TagECDSA256, nil, "")

	line, err := keyfile.FormatPublicLine(pair.Public, "deploy@ci")
	require.NoError(t, err)
	require.NoError(t, s.writeKey("id_test.pub", []byte(line+"\n")))

	var buf bytes.Buffer
	err = runFingerprint(s, NewPrinter("text", &buf), []string{"id_test.pub"}, "sha256")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), " deploy@ci (ecdsa-sha2-nistp256)\n")
}

func TestRunFingerprintMD5(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_test", keytype.TagEd25519, nil, "")

	var buf bytes.Buffer
	err := runFingerprint(s, NewPrinter("json", &buf), []string{"id_test"}, "md5")
	require.NoError(t, err)

	var got map[string][]FingerprintInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got["fingerprints"], 1)
	assert.Regexp(t, regexp.MustCompile(`^([0-9a-f]{2}:){15}[0-9a-f]{2}$`),
		got["fingerprints"][0].Fingerprint)
}

func TestRunFingerprintMultipleFiles(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_a", keytype.TagEd25519, nil, "")
	pair := writeTestKey(t, s, "id_b", keytype.TagECDSA256, nil, "")

	line, err := keyfile.FormatPublicLine(pair.Public, "b@host")
	require.NoError(t, err)
	require.NoError(t, s.writeKey("id_b.pub", []byte(line+"\n")))

	var buf bytes.Buffer
	err = runFingerprint(s, NewPrinter("text", &buf), []string{"id_a", "id_b.pub"}, "sha256")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "(ssh-ed25519)")
	assert.Contains(t, lines[1], "(ecdsa-sha2-nistp256)")
}

func TestRunFingerprintUnknownHash(t *testing.T) {
	s := testSettings(t)

	var buf bytes.Buffer
	err := runFingerprint(s, NewPrinter("text", &buf), []string{"id_test"}, "sha512")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported hash")
}

func TestRunFingerprintMissingFile(t *testing.T) {
	s := testSettings(t)

	var buf bytes.Buffer
	err := runFingerprint(s, NewPrinter("text", &buf), []string{"id_missing"}, "sha256")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
