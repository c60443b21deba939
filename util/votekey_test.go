// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/decred/slog"
)

func TestVoteKey(t *testing.T) {
	var (
		keyFile = filepath.Join(t.TempDir(), "votekey.json")
		pass    = []byte("correct horse battery staple")
	)

	// Create a key and load it back with the right passphrase
	created, err := CreateVoteKey(slog.Disabled, keyFile, pass)
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadVoteKey(slog.Disabled, keyFile, pass)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(created[:], loaded[:]) {
		t.Errorf("loaded key does not match created key")
	}

	// A second create against the same file must be refused
	_, err = CreateVoteKey(slog.Disabled, keyFile, pass)
	if err == nil {
		t.Errorf("overwriting an existing vote key was allowed")
	}

	// The wrong passphrase must not decrypt the key
	_, err = LoadVoteKey(slog.Disabled, keyFile, []byte("wrong"))
	if err == nil {
		t.Errorf("vote key decrypted with the wrong passphrase")
	}

	// A missing file is an error
	_, err = LoadVoteKey(slog.Disabled,
		filepath.Join(t.TempDir(), "nope.json"), pass)
	if err == nil {
		t.Errorf("loading a missing vote key succeeded")
	}
}

func TestZero(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03}
	Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("byte %v not zeroed: %v", i, v)
		}
	}

	// Must not panic on nil
	Zero(nil)
}
