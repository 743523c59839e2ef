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
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-sshkeys/pkg/cipher"
	"github.com/jeremyhahn/go-sshkeys/pkg/kdf"
	"github.com/jeremyhahn/go-sshkeys/pkg/keytype"
	"github.com/jeremyhahn/go-sshkeys/pkg/wire"
)

const magic = "openssh-key-v1\x00"

// MaxKeys bounds the number of key pairs in one container. Real files
// hold a handful; the bound keeps a hostile count field from driving
// allocation.
const MaxKeys = 1024

// IsRawContainer reports whether data begins with the binary container
// magic.
func IsRawContainer(data []byte) bool {
	return bytes.HasPrefix(data, []byte(magic))
}

// PrivateKeyList is a parsed openssh-key-v1 container: an ordered list
// of key pairs plus the cipher and KDF configuration protecting the
// private section.
type PrivateKeyList struct {
	Pairs      []KeyPair
	CipherName string
	KDFName    string

	// KDFOptions holds the decoded kdf options blob. Pack replaces the
	// salt on every call; PackExact writes it back unchanged.
	KDFOptions kdf.Options

	check    uint32
	hasCheck bool
}

// NewList builds a container for pairs with the given cipher and KDF
// configuration. Use cipher "aes256-ctr" with kdf "bcrypt" for an
// encrypted container, or "none"/"none" for a plaintext one.
func NewList(pairs []KeyPair, cipherName, kdfName string) (*PrivateKeyList, error) {
	c, err := cipher.Lookup(cipherName)
	if err != nil {
		return nil, err
	}
	k, err := kdf.Lookup(kdfName)
	if err != nil {
		return nil, err
	}
	if c.KeyLength() > 0 && k.Name() == kdf.NameNone {
		return nil, fmt.Errorf("kdf: cipher %s needs key material the none kdf cannot derive: %w",
			cipherName, kdf.ErrUnsupportedKDF)
	}
	var opts kdf.Options
	if k.Name() == kdf.NameBcrypt {
		opts.Rounds = kdf.DefaultRounds
	}
	return &PrivateKeyList{
		Pairs:      pairs,
		CipherName: cipherName,
		KDFName:    kdfName,
		KDFOptions: opts,
	}, nil
}

// Check returns the parsed check integer. The second return is false for
// lists that were built rather than parsed.
func (l *PrivateKeyList) Check() (uint32, bool) {
	return l.check, l.hasCheck
}

// Subset returns a new list holding the pairs at the given indices, in
// the given order, sharing the cipher and KDF configuration.
func (l *PrivateKeyList) Subset(indices ...int) (*PrivateKeyList, error) {
	out := &PrivateKeyList{
		CipherName: l.CipherName,
		KDFName:    l.KDFName,
		KDFOptions: l.KDFOptions,
		check:      l.check,
		hasCheck:   l.hasCheck,
	}
	for _, i := range indices {
		if i < 0 || i >= len(l.Pairs) {
			return nil, fmt.Errorf("keyfile: subset index %d out of range for %d keys", i, len(l.Pairs))
		}
		out.Pairs = append(out.Pairs, l.Pairs[i])
	}
	return out, nil
}

// ParsePrivate decodes a binary openssh-key-v1 container. The passphrase
// must be empty for unencrypted containers and non-empty for encrypted
// ones.
func ParsePrivate(data, passphrase []byte) (*PrivateKeyList, error) {
	r := wire.NewReader(data)

	head, err := r.ReadRaw(len(magic))
	if err != nil {
		return nil, fmt.Errorf("keyfile: magic: %w", err)
	}
	if string(head) != magic {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, head)
	}

	cipherName, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keyfile: cipher name: %w", err)
	}
	kdfName, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keyfile: kdf name: %w", err)
	}
	rawOpts, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keyfile: kdf options: %w", err)
	}
	numKeys, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("keyfile: key count: %w", err)
	}
	if numKeys > MaxKeys {
		return nil, fmt.Errorf("keyfile: key count %d exceeds limit %d: %w",
			numKeys, MaxKeys, wire.ErrLengthOverflow)
	}

	publics := make([]*PublicKey, 0, numKeys)
	for i := 0; i < int(numKeys); i++ {
		blob, err := r.ReadBytes()
		if err != nil {
			return nil, fmt.Errorf("keyfile: public record %d: %w", i, err)
		}
		params, err := keytype.UnmarshalPublic(blob)
		if err != nil {
			return nil, fmt.Errorf("keyfile: public record %d: %w", i, err)
		}
		publics = append(publics, NewPublicKey(params))
	}

	section, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keyfile: private section: %w", err)
	}

	ciph, err := cipher.Lookup(cipherName)
	if err != nil {
		return nil, err
	}
	kd, err := kdf.Lookup(kdfName)
	if err != nil {
		return nil, err
	}
	opts, err := kd.ParseOptions(wire.NewReader(rawOpts))
	if err != nil {
		return nil, err
	}

	plaintext, err := decryptSection(ciph, kd, opts, passphrase, section)
	if err != nil {
		return nil, err
	}

	pr := wire.NewReader(plaintext)
	check1, err := pr.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("keyfile: check: %w", err)
	}
	check2, err := pr.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("keyfile: check: %w", err)
	}
	if check1 != check2 {
		return nil, fmt.Errorf("%w: check integers %08x and %08x differ",
			ErrDecryptionIntegrity, check1, check2)
	}

	pairs := make([]KeyPair, 0, numKeys)
	for i, pub := range publics {
		tag, err := pr.ReadString()
		if err != nil {
			return nil, fmt.Errorf("keyfile: private record %d: %w", i, err)
		}
		if tag != pub.KeyType() {
			return nil, fmt.Errorf("%w: record %d is %s public but %s private",
				ErrKeyTypeMismatch, i, pub.KeyType(), tag)
		}
		codec, err := keytype.Lookup(tag)
		if err != nil {
			return nil, fmt.Errorf("keyfile: private record %d: %w", i, err)
		}
		params, err := codec.ParsePrivate(pr)
		if err != nil {
			return nil, fmt.Errorf("keyfile: private record %d: %w", i, err)
		}
		comment, err := pr.ReadString()
		if err != nil {
			return nil, fmt.Errorf("keyfile: private record %d comment: %w", i, err)
		}
		if !params.Public().Fields().Equal(pub.Params.Fields()) {
			return nil, fmt.Errorf("%w: record %d", ErrKeyMismatch, i)
		}
		pairs = append(pairs, KeyPair{Public: pub, Private: NewPrivateKey(params, comment)})
	}

	if err := validatePadding(pr.Rest(), len(plaintext), ciph.BlockSize()); err != nil {
		return nil, err
	}
	if err := r.Close(); err != nil {
		return nil, err
	}

	return &PrivateKeyList{
		Pairs:      pairs,
		CipherName: cipherName,
		KDFName:    kdfName,
		KDFOptions: opts,
		check:      check1,
		hasCheck:   true,
	}, nil
}

// PublicList is the unencrypted view of a container: the cipher and KDF
// configuration plus the public key records. None of it is protected by
// the passphrase.
type PublicList struct {
	Publics    []*PublicKey
	CipherName string
	KDFName    string
	KDFOptions kdf.Options
}

// ParsePublicList decodes only the outer layer of a binary
// openssh-key-v1 container. The private section is checked for
// presence but neither decrypted nor decoded, so no passphrase is
// needed. Nothing here is integrity-protected; trust the result the
// way you would trust a .pub file.
func ParsePublicList(data []byte) (*PublicList, error) {
	r := wire.NewReader(data)

	head, err := r.ReadRaw(len(magic))
	if err != nil {
		return nil, fmt.Errorf("keyfile: magic: %w", err)
	}
	if string(head) != magic {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, head)
	}

	cipherName, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keyfile: cipher name: %w", err)
	}
	kdfName, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("keyfile: kdf name: %w", err)
	}
	rawOpts, err := r.ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("keyfile: kdf options: %w", err)
	}
	numKeys, err := r.ReadU32()
	if err != nil {
		return nil, fmt.Errorf("keyfile: key count: %w", err)
	}
	if numKeys > MaxKeys {
		return nil, fmt.Errorf("keyfile: key count %d exceeds limit %d: %w",
			numKeys, MaxKeys, wire.ErrLengthOverflow)
	}

	publics := make([]*PublicKey, 0, numKeys)
	for i := 0; i < int(numKeys); i++ {
		blob, err := r.ReadBytes()
		if err != nil {
			return nil, fmt.Errorf("keyfile: public record %d: %w", i, err)
		}
		params, err := keytype.UnmarshalPublic(blob)
		if err != nil {
			return nil, fmt.Errorf("keyfile: public record %d: %w", i, err)
		}
		publics = append(publics, NewPublicKey(params))
	}

	if _, err := r.ReadBytes(); err != nil {
		return nil, fmt.Errorf("keyfile: private section: %w", err)
	}

	if _, err := cipher.Lookup(cipherName); err != nil {
		return nil, err
	}
	kd, err := kdf.Lookup(kdfName)
	if err != nil {
		return nil, err
	}
	opts, err := kd.ParseOptions(wire.NewReader(rawOpts))
	if err != nil {
		return nil, err
	}

	if err := r.Close(); err != nil {
		return nil, err
	}

	return &PublicList{
		Publics:    publics,
		CipherName: cipherName,
		KDFName:    kdfName,
		KDFOptions: opts,
	}, nil
}

// Pack encodes the list as a binary container. The salt and check
// integers are freshly randomized on every call, so packing the same
// list twice with a passphrase yields different bytes that decrypt to
// the same keys.
func (l *PrivateKeyList) Pack(passphrase []byte) ([]byte, error) {
	return l.pack(passphrase, false)
}

// PackExact encodes the list reusing the salt and check integer recorded
// at parse time. For an unmodified parsed list the output is byte
// identical to the input; it exists for round-trip verification, not for
// writing new files.
func (l *PrivateKeyList) PackExact(passphrase []byte) ([]byte, error) {
	return l.pack(passphrase, true)
}

func (l *PrivateKeyList) pack(passphrase []byte, exact bool) ([]byte, error) {
	if len(l.Pairs) > MaxKeys {
		return nil, fmt.Errorf("keyfile: key count %d exceeds limit %d: %w",
			len(l.Pairs), MaxKeys, wire.ErrLengthOverflow)
	}
	ciph, err := cipher.Lookup(l.CipherName)
	if err != nil {
		return nil, err
	}
	kd, err := kdf.Lookup(l.KDFName)
	if err != nil {
		return nil, err
	}

	encrypted := ciph.KeyLength() > 0
	if encrypted && len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: cipher %s", ErrPassphraseRequired, l.CipherName)
	}
	if !encrypted && len(passphrase) > 0 {
		return nil, fmt.Errorf("%w: cipher %s", ErrPassphraseNotExpected, l.CipherName)
	}

	opts := l.KDFOptions
	check := l.check
	if exact {
		if !l.hasCheck {
			return nil, errors.New("keyfile: exact repack needs a previously parsed container")
		}
	} else {
		if opts, err = kd.FreshOptions(l.KDFOptions); err != nil {
			return nil, err
		}
		if check, err = randomCheck(); err != nil {
			return nil, err
		}
	}

	pw := wire.NewWriter()
	pw.WriteU32(check)
	pw.WriteU32(check)
	for i, pair := range l.Pairs {
		if pair.Private == nil {
			return nil, fmt.Errorf("keyfile: pair %d has no private key", i)
		}
		pw.WriteString(pair.Private.KeyType())
		if err := pair.Private.Params.Marshal(pw); err != nil {
			return nil, fmt.Errorf("keyfile: private record %d: %w", i, err)
		}
		pw.WriteString(pair.Private.Comment())
	}
	for i, n := 1, padLength(pw.Len(), ciph.BlockSize()); i <= n; i++ {
		pw.WriteU8(uint8(i))
	}

	section, err := encryptSection(ciph, kd, opts, passphrase, pw.Bytes())
	if err != nil {
		return nil, err
	}

	w := wire.NewWriter()
	w.WriteRaw([]byte(magic))
	w.WriteString(l.CipherName)
	w.WriteString(l.KDFName)
	ow := wire.NewWriter()
	if err := kd.MarshalOptions(ow, opts); err != nil {
		return nil, err
	}
	w.WriteBytes(ow.Bytes())
	w.WriteU32(uint32(len(l.Pairs)))
	for i, pair := range l.Pairs {
		// The public record is re-derived from the private material, so
		// the two halves can never drift apart in packed output.
		blob, err := keytype.MarshalPublic(pair.Private.Params.Public())
		if err != nil {
			return nil, fmt.Errorf("keyfile: public record %d: %w", i, err)
		}
		w.WriteBytes(blob)
	}
	w.WriteBytes(section)
	return w.Bytes(), nil
}

func decryptSection(c cipher.Cipher, k kdf.KDF, opts kdf.Options, passphrase, section []byte) ([]byte, error) {
	if c.KeyLength() == 0 {
		if len(passphrase) > 0 {
			return nil, fmt.Errorf("%w: cipher is %s", ErrPassphraseNotExpected, c.Name())
		}
		return c.Decrypt(nil, nil, section)
	}
	if len(passphrase) == 0 {
		// Indistinguishable from any other wrong key.
		return nil, fmt.Errorf("%w: empty passphrase for cipher %s",
			ErrDecryptionIntegrity, c.Name())
	}
	key, iv, err := deriveKeyIV(c, k, opts, passphrase)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(key, iv, section)
}

func encryptSection(c cipher.Cipher, k kdf.KDF, opts kdf.Options, passphrase, plaintext []byte) ([]byte, error) {
	if c.KeyLength() == 0 {
		return c.Encrypt(nil, nil, plaintext)
	}
	key, iv, err := deriveKeyIV(c, k, opts, passphrase)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(key, iv, plaintext)
}

func deriveKeyIV(c cipher.Cipher, k kdf.KDF, opts kdf.Options, passphrase []byte) (key, iv []byte, err error) {
	material, err := k.Derive(passphrase, opts, c.KeyLength()+c.IVLength())
	if err != nil {
		return nil, nil, err
	}
	return material[:c.KeyLength()], material[c.KeyLength():], nil
}

// validatePadding checks the tail of the decrypted private section:
// bytes counting 1, 2, ..., k, with k below the block size and the whole
// section a multiple of it.
func validatePadding(pad []byte, total, blockSize int) error {
	if len(pad) >= blockSize {
		return fmt.Errorf("%w: %d padding bytes with block size %d",
			ErrInvalidPadding, len(pad), blockSize)
	}
	if total%blockSize != 0 {
		return fmt.Errorf("%w: section length %d not aligned to block size %d",
			ErrInvalidPadding, total, blockSize)
	}
	for i, b := range pad {
		if b != byte(i+1) {
			return fmt.Errorf("%w: padding byte %d is 0x%02x, want 0x%02x",
				ErrInvalidPadding, i, b, i+1)
		}
	}
	return nil
}

func padLength(n, blockSize int) int {
	return (blockSize - n%blockSize) % blockSize
}

func randomCheck() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("keyfile: randomize check: %w", err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}
