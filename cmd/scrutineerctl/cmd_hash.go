// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	v1 "github.com/campusgov/scrutineer/api/v1"
	"github.com/campusgov/scrutineer/util"
	"github.com/campusgov/scrutineer/votehash"
	"github.com/pkg/errors"
)

// cmdHash computes the vote hash for a cast vote and prints the voter
// receipt. The cast vote file contains the vote contents as submitted,
// including the voter id; the voter id is consumed by the hash and does not
// appear in the receipt or in the stored vote record.
type cmdHash struct {
	Args struct {
		VoteFile string `positional-arg-name:"votefile"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdHash) Execute(args []string) error {
	var cv v1.CastVote
	err := util.LoadJSON(c.Args.VoteFile, &cv)
	if err != nil {
		return err
	}

	if cfg.VoteKeyPass == "" {
		return errors.Errorf("vote key passphrase not set; use --votekeypass")
	}
	key, err := util.LoadVoteKey(log, cfg.VoteKeyFile,
		[]byte(cfg.VoteKeyPass))
	if err != nil {
		return err
	}
	e, err := votehash.New(key[:])
	util.Zero(key[:])
	if err != nil {
		return err
	}
	defer e.Zero()

	ts := cv.Timestamp
	if ts == 0 {
		ts = time.Now().Unix()
	}
	h, err := e.Hash(cv.ElectionID, cv.BallotID, cv.Payload,
		cv.VoterID, time.Unix(ts, 0))
	if err != nil {
		return err
	}

	r := v1.Receipt{
		Version:   v1.APIVersion,
		VoteHash:  h,
		Timestamp: ts,
	}
	log.Infof("%v", formatJSON(r))

	return nil
}
