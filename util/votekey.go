// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"encoding/json"
	"io/ioutil"

	"github.com/decred/slog"
	"github.com/marcopeereboom/sbox"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// voteKeyFile is the on disk format of a vote key file. The vote key itself
// is stored encrypted under a key derived from an operator passphrase, so
// reading the file is not enough to forge vote hashes; the key digest lets
// a load detect a passphrase/key mismatch before the key is used.
type voteKeyFile struct {
	Params Argon2Params `json:"params"`
	Digest []byte       `json:"digest"` // SHA256 of the vote key
	Blob   []byte       `json:"blob"`   // sbox encrypted vote key
}

// argon2idKey derives a 32 byte secretbox key from the provided passphrase
// using the Argon2id key derivation function.
func argon2idKey(pass []byte, ap Argon2Params) [32]byte {
	var key [32]byte
	k := argon2.IDKey(pass, ap.Salt, ap.Time, ap.Memory, ap.Threads,
		ap.KeyLen)
	copy(key[:], k)
	Zero(k)
	return key
}

// CreateVoteKey creates a new random vote key, saves it to the provided
// file path encrypted under the provided passphrase, and returns it. An
// error is returned if a key file already exists; vote keys are never
// silently overwritten since rotating the key invalidates every hash that
// was stamped with the old one.
func CreateVoteKey(log slog.Logger, keyFile string, pass []byte) (*[32]byte, error) {
	if FileExists(keyFile) {
		return nil, errors.Errorf("vote key already exists: %v", keyFile)
	}

	key, err := sbox.NewKey()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Encrypt the key under the passphrase derived key
	ap := NewArgon2Params()
	dk := argon2idKey(pass, ap)
	blob, err := sbox.Encrypt(0, &dk, key[:])
	Zero(dk[:])
	if err != nil {
		return nil, errors.WithStack(err)
	}

	vkf := voteKeyFile{
		Params: ap,
		Digest: Digest(key[:]),
		Blob:   blob,
	}
	b, err := json.Marshal(vkf)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	err = ioutil.WriteFile(keyFile, b, 0400)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	log.Infof("Vote key created: %v", keyFile)

	return key, nil
}

// LoadVoteKey loads and decrypts the vote key at the provided file path.
func LoadVoteKey(log slog.Logger, keyFile string, pass []byte) (*[32]byte, error) {
	if !FileExists(keyFile) {
		return nil, errors.Errorf("vote key not found: %v", keyFile)
	}
	b, err := ioutil.ReadFile(keyFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var vkf voteKeyFile
	err = json.Unmarshal(b, &vkf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	dk := argon2idKey(pass, vkf.Params)
	decrypted, _, err := sbox.Decrypt(&dk, vkf.Blob)
	Zero(dk[:])
	if err != nil {
		return nil, errors.Errorf("decrypt vote key: %v", err)
	}
	if len(decrypted) != 32 {
		return nil, errors.Errorf("invalid vote key length %v",
			len(decrypted))
	}

	var key [32]byte
	copy(key[:], decrypted)
	Zero(decrypted)

	// Verify that the decrypted key matches the digest that was saved
	// when the key was created.
	if !bytes.Equal(vkf.Digest, Digest(key[:])) {
		return nil, errors.Errorf("vote key digest mismatch")
	}

	log.Debugf("Vote key loaded: %v", keyFile)

	return &key, nil
}

// Zero zeros out a byte slice.
func Zero(in []byte) {
	if in == nil {
		return
	}
	inlen := len(in)
	for i := 0; i < inlen; i++ {
		in[i] ^= in[i]
	}
}
