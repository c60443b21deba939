// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testLeaves returns n distinct hex encoded SHA256 digests.
func testLeaves(n int) []string {
	leaves := make([]string, 0, n)
	for i := 0; i < n; i++ {
		d := sha256.Sum256([]byte(fmt.Sprintf("leaf%v", i)))
		leaves = append(leaves, hex.EncodeToString(d[:]))
	}
	return leaves
}

func TestBuild(t *testing.T) {
	// Empty leaf set
	_, err := Build(nil)
	if !errors.Is(err, ErrEmptyTree) {
		t.Errorf("got err %v, want %v", err, ErrEmptyTree)
	}

	// Invalid leaves
	invalid := []string{"not a digest", "abcd"}
	for _, leaf := range invalid {
		_, err := Build([]string{leaf})
		if !errors.Is(err, ErrLeafInvalid) {
			t.Errorf("leaf %q: got err %v, want %v",
				leaf, err, ErrLeafInvalid)
		}
	}

	// A single leaf tree's root is the leaf itself
	leaves := testLeaves(1)
	tree, err := Build(leaves)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Root() != leaves[0] {
		t.Errorf("single leaf root got %v, want %v",
			tree.Root(), leaves[0])
	}

	// Building twice over the same leaves derives the same root
	a, err := Build(testLeaves(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(testLeaves(7))
	if err != nil {
		t.Fatal(err)
	}
	if a.Root() != b.Root() {
		t.Errorf("build not deterministic: %v != %v", a.Root(), b.Root())
	}

	// The tree is order sensitive
	reordered := testLeaves(7)
	reordered[0], reordered[1] = reordered[1], reordered[0]
	c, err := Build(reordered)
	if err != nil {
		t.Fatal(err)
	}
	if c.Root() == a.Root() {
		t.Errorf("reordered leaves derived the same root")
	}
}

func TestLeaves(t *testing.T) {
	leaves := testLeaves(5)
	tree, err := Build(leaves)
	if err != nil {
		t.Fatal(err)
	}
	diff := cmp.Diff(leaves, tree.Leaves())
	if diff != "" {
		t.Errorf("unexpected leaves (-want +got):\n%v", diff)
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		leafCount int
		depth     int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{5, 4},
		{8, 4},
		{9, 5},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%v leaves", tc.leafCount), func(t *testing.T) {
			tree, err := Build(testLeaves(tc.leafCount))
			if err != nil {
				t.Fatal(err)
			}
			stats := tree.Stats()
			if stats.LeafCount != tc.leafCount {
				t.Errorf("got leaf count %v, want %v",
					stats.LeafCount, tc.leafCount)
			}
			if stats.Depth != tc.depth {
				t.Errorf("got depth %v, want %v",
					stats.Depth, tc.depth)
			}
			if stats.Root != tree.Root() {
				t.Errorf("got root %v, want %v",
					stats.Root, tree.Root())
			}
		})
	}
}

func TestVerifyRoot(t *testing.T) {
	tree, err := Build(testLeaves(6))
	if err != nil {
		t.Fatal(err)
	}
	if !tree.VerifyRoot() {
		t.Errorf("untampered tree failed root verification")
	}

	// Tamper with a leaf. The tree is normally immutable; this
	// simulates corrupted or altered state.
	tree.levels[0][0] = tree.levels[0][1]
	if tree.VerifyRoot() {
		t.Errorf("tampered tree passed root verification")
	}
}
