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
	"os"
	"path/filepath"
	"testing"

	"github.com/jeremyhahn/go-sshkeys/internal/config"
	"github.com/jeremyhahn/go-sshkeys/pkg/cipher"
	"github.com/jeremyhahn/go-sshkeys/pkg/kdf"
	"github.com/jeremyhahn/go-sshkeys/pkg/keyfile"
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/jeremyhahn/go-sshkeys/pkg/logging"
	"github.com/jeremyhahn/go-sshkeys/pkg/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSettings builds Settings rooted in a temp dir, bypassing the
// config file and global flags. Low bcrypt rounds keep encrypted
// fixtures fast.
func testSettings(t *testing.T) *Settings {
	t.Helper()
	return &Settings{
		KeyDir:       t.TempDir(),
		OutputFormat: "text",
		Generate: config.GenerateConfig{
			Type:   "ssh-ed25519",
			Bits:   2048,
			Rounds: 4,
		},
		Logger: logging.NewLogger(false),
	}
}

// writeTestKey generates a key of the given type and writes it into the
// settings key dir as an armored container, encrypted when a passphrase
// is given.
func writeTestKey(t *testing.T, s *Settings, name, tag string, passphrase []byte, comment string) keyfile.KeyPair {
	t.Helper()

	codec, err := keytype.Lookup(tag)
	require.NoError(t, err)
	params, err := codec.Generate(keytype.GenerateOptions{})
	require.NoError(t, err)
	pair := keyfile.NewPair(keyfile.NewPrivateKey(params, comment))

	cipherName, kdfName := cipher.NameNone, kdf.NameNone
	if len(passphrase) > 0 {
		cipherName, kdfName = cipher.NameAES256CTR, kdf.NameBcrypt
	}
	list, err := keyfile.NewList([]keyfile.KeyPair{pair}, cipherName, kdfName)
	require.NoError(t, err)
	if kdfName == kdf.NameBcrypt {
		list.KDFOptions.Rounds = 4
	}

	armored, err := list.EncodeArmored(passphrase)
	require.NoError(t, err)
	require.NoError(t, s.writeKey(name, armored))
	return pair
}

func TestStoreRelativePath(t *testing.T) {
	s := testSettings(t)

	require.NoError(t, s.writeKey("work/id_test", []byte("data")))

	content, err := os.ReadFile(filepath.Join(s.KeyDir, "work", "id_test"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content)

	got, err := s.readKey("work/id_test")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestStoreAbsolutePath(t *testing.T) {
	s := testSettings(t)
	abs := filepath.Join(t.TempDir(), "elsewhere", "id_abs")

	require.NoError(t, s.writeKey(abs, []byte("data")))

	content, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content)

	got, err := s.readKey(abs)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestStoreEmptyPath(t *testing.T) {
	s := testSettings(t)

	_, _, err := s.store("")
	assert.Error(t, err)
}

func TestReadKeyMissing(t *testing.T) {
	s := testSettings(t)

	_, err := s.readKey("id_missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, err.Error(), "id_missing")
}

func TestKeyExists(t *testing.T) {
	s := testSettings(t)

	exists, err := s.keyExists("id_test")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.writeKey("id_test", []byte("data")))

	exists, err = s.keyExists("id_test")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPassphraseFrom(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{}
		addPassphraseFlags(cmd)
		return cmd
	}

	t.Run("none given", func(t *testing.T) {
		got, err := passphraseFrom(newCmd())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("flag", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("passphrase", "s3cret"))

		got, err := passphraseFrom(cmd)
		require.NoError(t, err)
		assert.Equal(t, []byte("s3cret"), got)
	})

	t.Run("environment variable", func(t *testing.T) {
		t.Setenv("SSHKEYS_TEST_PASSPHRASE", "from-env")
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("passphrase-env", "SSHKEYS_TEST_PASSPHRASE"))

		got, err := passphraseFrom(cmd)
		require.NoError(t, err)
		assert.Equal(t, []byte("from-env"), got)
	})

	t.Run("unset environment variable", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("passphrase-env", "SSHKEYS_TEST_UNSET_PASSPHRASE"))

		_, err := passphraseFrom(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not set")
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "passfile")
		require.NoError(t, os.WriteFile(path, []byte("from-file\r\n"), 0o600))
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("passphrase-file", path))

		got, err := passphraseFrom(cmd)
		require.NoError(t, err)
		assert.Equal(t, []byte("from-file"), got)
	})

	t.Run("missing file", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("passphrase-file", filepath.Join(t.TempDir(), "nope")))

		_, err := passphraseFrom(cmd)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read passphrase file")
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("SSHKEYS_TEST_PASSPHRASE", "from-env")
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("passphrase", "from-flag"))
		require.NoError(t, cmd.Flags().Set("passphrase-env", "SSHKEYS_TEST_PASSPHRASE"))

		got, err := passphraseFrom(cmd)
		require.NoError(t, err)
		assert.Equal(t, []byte("from-flag"), got)
	})
}
