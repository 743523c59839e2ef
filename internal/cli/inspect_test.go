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
	"testing"

	"github.com/jeremyhahn/go-sshkeys/pkg/keyfile"
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/jeremyhahn/go-sshkeys/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInspectPlaintext(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_plain", keytype.TagEd25519, nil, "work laptop")

	var buf bytes.Buffer
	err := runInspect(s, NewPrinter("text", &buf), "id_plain", nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Container: id_plain\n")
	assert.Contains(t, out, "  Cipher:    none\n")
	assert.Contains(t, out, "  KDF:       none\n")
	assert.Contains(t, out, "  Encrypted: false\n")
	assert.Contains(t, out, "  Keys:      1\n")
	assert.Contains(t, out, "  Type:        ssh-ed25519\n")
	assert.Contains(t, out, "  Bits:        256\n")
	assert.Contains(t, out, "  Fingerprint: SHA256:")
	assert.Contains(t, out, "  Comment:     work laptop\n")
}

func TestRunInspectEncryptedWithPassphrase(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_enc", keytype.TagEd25519, []byte("hunter2"), "backup key")

	var buf bytes.Buffer
	err := runInspect(s, NewPrinter("text", &buf), "id_enc", []byte("hunter2"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "  Cipher:    aes256-ctr\n")
	assert.Contains(t, out, "  KDF:       bcrypt\n")
	assert.Contains(t, out, "  Rounds:    4\n")
	assert.Contains(t, out, "  Encrypted: true\n")
	assert.Contains(t, out, "  Comment:     backup key\n")
}

func TestRunInspectEncryptedWithoutPassphrase(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_enc", keytype.TagEd25519, []byte("hunter2"), "backup key")

	var buf bytes.Buffer
	err := runInspect(s, NewPrinter("text", &buf), "id_enc", nil)
	require.NoError(t, err)

	// The outer layer shows the key, but comments live in the
	// encrypted private section.
	out := buf.String()
	assert.Contains(t, out, "  Encrypted: true\n")
	assert.Contains(t, out, "  Type:        ssh-ed25519\n")
	assert.Contains(t, out, "  Fingerprint: SHA256:")
	assert.NotContains(t, out, "backup key")
}

func TestRunInspectWrongPassphrase(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_enc", keytype.TagEd25519, []byte("hunter2"), "")

	var buf bytes.Buffer
	err := runInspect(s, NewPrinter("text", &buf), "id_enc", []byte("*******"))
	assert.ErrorIs(t, err, keyfile.ErrDecryptionIntegrity)
}

func TestRunInspectPublicKeyFile(t *testing.T) {
	s := testSettings(t)
	pair := writeTestKey(t, s, "id_test", keytype.TagECDSA256, nil, "")

	line, err := keyfile.FormatPublicLine(pair.Public, "deploy@ci")
	require.NoError(t, err)
	require.NoError(t, s.writeKey("id_test.pub", []byte(line+"\n")))

	var buf bytes.Buffer
	err = runInspect(s, NewPrinter("text", &buf), "id_test.pub", nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Public keys: id_test.pub\n")
	assert.Contains(t, out, "  Type:        ecdsa-sha2-nistp256\n")
	assert.Contains(t, out, "  Bits:        256\n")
	assert.Contains(t, out, "  Comment:     deploy@ci\n")
}

func TestRunInspectJSON(t *testing.T) {
	s := testSettings(t)
	writeTestKey(t, s, "id_json", keytype.TagEd25519, nil, "jmeter")

	var buf bytes.Buffer
	err := runInspect(s, NewPrinter("json", &buf), "id_json", nil)
	require.NoError(t, err)

	var got ContainerInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "id_json", got.Path)
	assert.Equal(t, "none", got.Cipher)
	assert.False(t, got.Encrypted)
	require.Len(t, got.Keys, 1)
	assert.Equal(t, "ssh-ed25519", got.Keys[0].KeyType)
	assert.Equal(t, "jmeter", got.Keys[0].Comment)
}

func TestRunInspectMissingFile(t *testing.T) {
	s := testSettings(t)

	var buf bytes.Buffer
	err := runInspect(s, NewPrinter("text", &buf), "id_missing", nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunInspectGarbage(t *testing.T) {
	s := testSettings(t)
	require.NoError(t, s.writeKey("notakey", []byte("not a key file at all\n")))

	var buf bytes.Buffer
	err := runInspect(s, NewPrinter("text", &buf), "notakey", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notakey")
}
