// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle builds an append-only, order-sensitive binary hash tree
// over the vote hashes of a closed election and produces inclusion proofs
// that anyone can verify against the published root without access to the
// tree, the database, or the secret vote key.
//
// A tree is built exactly once per election and is immutable afterwards.
// The Tree type has no mutating methods; preventing a second build over a
// different leaf set is the caller's responsibility since this package has
// no persistence of its own to arbitrate it.
package merkle

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

const (
	// DigestSize is the hex encoded length of a leaf hash.
	DigestSize = sha256.Size * 2
)

var (
	// ErrEmptyTree is returned when a tree build is attempted with no
	// leaves.
	ErrEmptyTree = errors.New("empty leaf set")

	// ErrLeafInvalid is returned when a leaf is not a hex encoded
	// SHA256 digest.
	ErrLeafInvalid = errors.New("leaf invalid")

	// ErrLeafNotFound is returned when an inclusion proof is requested
	// for a leaf that is not in the tree. This is an expected outcome
	// of public verification requests, not an internal failure.
	ErrLeafNotFound = errors.New("leaf not found")
)

// Tree is an immutable binary hash tree. Level 0 holds the leaves in the
// order they were provided; each higher level holds the parent hashes of
// the level below it; the highest level holds only the root.
type Tree struct {
	levels [][]string
}

// Build builds a tree over the provided leaf hashes. The leaves must be hex
// encoded SHA256 digests and must already be in canonical order; the tree
// is order sensitive by design.
//
// Adjacent nodes are paired left to right and the parent is the hash of the
// concatenated pair. A level with an odd count carries its last node up to
// the next level unchanged. Carrying up is used instead of duplicate
// padding: padding lets whoever controls the odd leaf construct a second
// root that still validates some proofs, while a carried node keeps a
// single derivation for every leaf.
func Build(leaves []string) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}
	level := make([]string, len(leaves))
	for i, l := range leaves {
		b, err := hex.DecodeString(l)
		if err != nil || len(b) != sha256.Size {
			return nil, errors.WithMessagef(ErrLeafInvalid,
				"leaf %v: %q", i, l)
		}
		level[i] = l
	}

	levels := [][]string{level}
	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, hashPair(level[i], level[i+1]))
		}
		if len(level)%2 == 1 {
			// Carry the unpaired node up unchanged
			next = append(next, level[len(level)-1])
		}
		levels = append(levels, next)
		level = next
	}

	t := Tree{levels: levels}

	log.Debugf("Merkle tree built: %v leaves, depth %v, root %v",
		len(leaves), t.Depth(), t.Root())

	return &t, nil
}

// Root returns the root hash of the tree.
func (t *Tree) Root() string {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Leaves returns a copy of the leaf hashes in tree order.
func (t *Tree) Leaves() []string {
	leaves := make([]string, len(t.levels[0]))
	copy(leaves, t.levels[0])
	return leaves
}

// Depth returns the number of levels in the tree, leaves included.
func (t *Tree) Depth() int {
	return len(t.levels)
}

// Stats describes a built tree.
type Stats struct {
	LeafCount int    `json:"leafcount"`
	Depth     int    `json:"depth"`
	Root      string `json:"root"`
}

// Stats returns the tree statistics.
func (t *Tree) Stats() Stats {
	return Stats{
		LeafCount: len(t.levels[0]),
		Depth:     len(t.levels),
		Root:      t.Root(),
	}
}

// VerifyRoot re-derives the root from the leaves and compares it to the
// root the tree is currently reporting. A false return means the internal
// levels no longer agree with the leaves and tampering should be suspected.
// Re-derivation is the only legitimate reason to rebuild a tree:
// verification, never replacement.
func (t *Tree) VerifyRoot() bool {
	rebuilt, err := Build(t.levels[0])
	if err != nil {
		return false
	}
	return rebuilt.Root() == t.Root()
}

// hashPair returns the hex encoded SHA256 of the concatenated pair of hex
// encoded digests. Build validates all leaves up front so decoding here
// cannot fail.
func hashPair(left, right string) string {
	l, _ := hex.DecodeString(left)
	r, _ := hex.DecodeString(right)
	digest := sha256.Sum256(append(l, r...))
	return hex.EncodeToString(digest[:])
}
