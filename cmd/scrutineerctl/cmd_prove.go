// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/campusgov/scrutineer/api/v1"
	"github.com/campusgov/scrutineer/merkle"
	"github.com/campusgov/scrutineer/util"
	"github.com/pkg/errors"
)

// cmdProve generates an inclusion proof for a vote hash against a committed
// tree bundle and writes the proof bundle to the provided output file. The
// tree is rebuilt from the bundled leaves and its root is checked against
// the committed root before any proof is generated; a mismatch means the
// bundle was altered after commit.
type cmdProve struct {
	Args struct {
		TreeFile string `positional-arg-name:"treefile"`
		VoteHash string `positional-arg-name:"votehash"`
		OutFile  string `positional-arg-name:"outfile"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdProve) Execute(args []string) error {
	if !util.IsDigest(c.Args.VoteHash) {
		return errors.Errorf("vote hash is not a hex encoded SHA256 "+
			"digest: %v", c.Args.VoteHash)
	}

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
		return errors.Errorf("rebuilt root %v does not match committed "+
			"root %v; the tree bundle has been altered", t.Root(), tb.Root)
	}

	p, err := t.ProveInclusion(c.Args.VoteHash)
	switch {
	case errors.Is(err, merkle.ErrLeafNotFound):
		// Not an internal failure. The vote hash is simply not part
		// of this election's tree.
		log.Infof("Vote hash %v is not in the tree for election %v",
			c.Args.VoteHash, tb.ElectionID)
		return nil
	case err != nil:
		return err
	}

	pb := v1.ProofBundle{
		Version:    v1.APIVersion,
		ElectionID: tb.ElectionID,
		Proof:      *p,
	}
	err = util.SaveJSON(c.Args.OutFile, pb)
	if err != nil {
		return err
	}

	log.Infof("Inclusion proof saved to %v", c.Args.OutFile)
	log.Infof("Root: %v", p.Root)

	return nil
}
