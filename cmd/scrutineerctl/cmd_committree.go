// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/campusgov/scrutineer/api/v1"
	"github.com/campusgov/scrutineer/ballot"
	"github.com/campusgov/scrutineer/merkle"
	"github.com/campusgov/scrutineer/util"
	"github.com/pkg/errors"
)

// cmdCommitTree builds the merkle tree over the vote hashes of a closed
// election and writes the tree bundle to the provided output file. The vote
// records are put into canonical leaf order before the tree is built so that
// anyone rebuilding from the same records derives the same root.
//
// The tree is committed once per election. The command refuses to overwrite
// an existing tree bundle; a committed root is a published value and a
// second build over different leaves would be indistinguishable from
// tampering.
type cmdCommitTree struct {
	Args struct {
		BundleFile string `positional-arg-name:"bundlefile"`
		OutFile    string `positional-arg-name:"outfile"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdCommitTree) Execute(args []string) error {
	if util.FileExists(c.Args.OutFile) {
		return errors.Errorf("tree bundle already exists: %v",
			c.Args.OutFile)
	}

	var vb v1.VoteBundle
	err := util.LoadJSON(c.Args.BundleFile, &vb)
	if err != nil {
		return err
	}

	// Put the vote records into canonical leaf order and pull out the
	// vote hashes.
	records := ballot.OrderVoteRecords(vb.Votes)
	leaves := make([]string, 0, len(records))
	for _, v := range records {
		leaves = append(leaves, v.VoteHash)
	}

	t, err := merkle.Build(leaves)
	if err != nil {
		return err
	}

	tb := v1.TreeBundle{
		Version:    v1.APIVersion,
		ElectionID: vb.ElectionID,
		Leaves:     t.Leaves(),
		Root:       t.Root(),
	}
	err = util.SaveJSON(c.Args.OutFile, tb)
	if err != nil {
		return err
	}

	stats := t.Stats()
	log.Infof("Merkle tree committed for election %v", vb.ElectionID)
	log.Infof("Leaves: %v, depth: %v", stats.LeafCount, stats.Depth)
	log.Infof("Root: %v", stats.Root)

	return nil
}
