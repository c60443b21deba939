// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	v1 "github.com/campusgov/scrutineer/api/v1"
	"github.com/campusgov/scrutineer/merkle"
	"github.com/campusgov/scrutineer/util"
	"github.com/pkg/errors"
)

// cmdSelfCheck verifies the integrity of a committed tree bundle. The tree
// is rebuilt from the bundled leaves, the derived root is compared to the
// committed root, and an inclusion proof is generated and verified for every
// leaf. A failed self check means the bundle no longer matches what was
// committed and tampering should be suspected.
type cmdSelfCheck struct {
	Args struct {
		TreeFile string `positional-arg-name:"treefile"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdSelfCheck) Execute(args []string) error {
	var tb v1.TreeBundle
	err := util.LoadJSON(c.Args.TreeFile, &tb)
	if err != nil {
		return err
	}

	t, err := merkle.Build(tb.Leaves)
	if err != nil {
		return err
	}
	if t.Root() != tb.Root {
		return errors.Errorf("self check FAILED: rebuilt root %v does "+
			"not match committed root %v", t.Root(), tb.Root)
	}
	if !t.VerifyRoot() {
		return errors.Errorf("self check FAILED: tree levels do not " +
			"derive the reported root")
	}

	// Prove and verify every leaf against the committed root
	proofs, err := t.ProveBatch(context.Background(), tb.Leaves)
	if err != nil {
		return err
	}
	for _, p := range proofs {
		if !merkle.VerifyProof(p) {
			return errors.Errorf("self check FAILED: proof for leaf "+
				"%v does not verify", p.Leaf)
		}
	}

	log.Infof("Self check passed for election %v", tb.ElectionID)
	log.Infof("Leaves verified: %v", len(proofs))
	log.Infof("Root: %v", tb.Root)

	return nil
}
