// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DirectionT represents the position of a proof step sibling relative to
// the node being proven.
type DirectionT uint32

const (
	// DirectionInvalid is an invalid direction.
	DirectionInvalid DirectionT = 0

	// DirectionLeft indicates the sibling is the left neighbor.
	DirectionLeft DirectionT = 1

	// DirectionRight indicates the sibling is the right neighbor.
	DirectionRight DirectionT = 2

	// DirectionCarry indicates the node had no sibling at this level
	// and was carried up unchanged.
	DirectionCarry DirectionT = 3

	// DirectionLast unit test only.
	DirectionLast DirectionT = 4
)

var (
	// Directions contains the human readable directions.
	Directions = map[DirectionT]string{
		DirectionInvalid: "invalid",
		DirectionLeft:    "left",
		DirectionRight:   "right",
		DirectionCarry:   "carry",
	}
)

// Proof proves that a leaf is included in the tree with the given root. A
// proof is a value object with no identity; it is recomputed on demand and
// never stored.
type Proof struct {
	Leaf           string       `json:"leaf"`
	SiblingPath    []string     `json:"siblingpath"`
	PathDirections []DirectionT `json:"pathdirections"`
	Root           string       `json:"root"`
}

// ProveInclusion returns an inclusion proof for the provided leaf hash. An
// ErrLeafNotFound is returned when the leaf is not in the tree; callers
// serving public verification requests should treat this as an expected
// outcome rather than a failure.
func (t *Tree) ProveInclusion(leaf string) (*Proof, error) {
	// Locate the leaf. The first occurrence is used when the same
	// hash appears more than once; the resulting proof is valid for
	// all occurrences.
	idx := -1
	for i, l := range t.levels[0] {
		if l == leaf {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrLeafNotFound
	}

	steps := len(t.levels) - 1
	p := Proof{
		Leaf:           leaf,
		SiblingPath:    make([]string, 0, steps),
		PathDirections: make([]DirectionT, 0, steps),
		Root:           t.Root(),
	}
	for level := 0; level < steps; level++ {
		nodes := t.levels[level]
		sibling := idx ^ 1
		switch {
		case sibling >= len(nodes):
			// Node was carried up unchanged
			p.SiblingPath = append(p.SiblingPath, "")
			p.PathDirections = append(p.PathDirections, DirectionCarry)
		case sibling < idx:
			p.SiblingPath = append(p.SiblingPath, nodes[sibling])
			p.PathDirections = append(p.PathDirections, DirectionLeft)
		default:
			p.SiblingPath = append(p.SiblingPath, nodes[sibling])
			p.PathDirections = append(p.PathDirections, DirectionRight)
		}
		idx /= 2
	}

	return &p, nil
}

// ProveBatch returns an inclusion proof for each of the provided leaf
// hashes. Proof generation is read only so the proofs are generated in
// parallel. The returned proofs are in the same order as the provided
// leaves. The batch fails as a whole if any leaf is not in the tree.
func (t *Tree) ProveBatch(ctx context.Context, leaves []string) ([]Proof, error) {
	proofs := make([]Proof, len(leaves))
	g, _ := errgroup.WithContext(ctx)
	for i, leaf := range leaves {
		i, leaf := i, leaf
		g.Go(func() error {
			p, err := t.ProveInclusion(leaf)
			if err != nil {
				return err
			}
			proofs[i] = *p
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return nil, err
	}

	log.Debugf("Generated %v inclusion proofs against root %v",
		len(proofs), t.Root())

	return proofs, nil
}

// VerifyProof verifies an inclusion proof against the root it carries. It
// requires no tree, no key, and no internal engine state; anyone holding a
// proof and a published root can run it.
//
// Starting from the leaf, the working hash is combined with each sibling in
// path order: a left sibling is hashed in front of the working hash, a
// right sibling behind it, and a carry step passes the working hash through
// unchanged. The proof is valid when the final value equals the root. Root
// hashes are public so exact equality is used; there is no timing concern.
func VerifyProof(p Proof) bool {
	if len(p.SiblingPath) != len(p.PathDirections) {
		return false
	}
	current := p.Leaf
	for i, sibling := range p.SiblingPath {
		switch p.PathDirections[i] {
		case DirectionLeft:
			current = hashPair(sibling, current)
		case DirectionRight:
			current = hashPair(current, sibling)
		case DirectionCarry:
			if sibling != "" {
				return false
			}
			// Carried up unchanged
		default:
			return false
		}
	}
	return current == p.Root
}
