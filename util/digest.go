// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA256 digest of the provided payload.
func Digest(payload []byte) []byte {
	h := sha256.New()
	h.Write(payload)
	return h.Sum(nil)
}

// IsDigest determines whether the provided string is a valid hex encoded
// SHA256 digest.
func IsDigest(digest string) bool {
	b, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	return len(b) == sha256.Size
}
