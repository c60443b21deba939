// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	v1 "github.com/campusgov/scrutineer/api/v1"
	"github.com/campusgov/scrutineer/ballot"
	"github.com/campusgov/scrutineer/tally"
	"github.com/campusgov/scrutineer/util"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
)

// cmdTally tallies every ballot in a vote bundle and writes the results
// bundle to the provided output file. Results are recomputed from the vote
// records on every run; a results bundle is an export artifact, never
// authoritative state.
type cmdTally struct {
	Args struct {
		BundleFile string `positional-arg-name:"bundlefile"`
		OutFile    string `positional-arg-name:"outfile"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdTally) Execute(args []string) error {
	var vb v1.VoteBundle
	err := util.LoadJSON(c.Args.BundleFile, &vb)
	if err != nil {
		return err
	}

	log.Tracef("Vote bundle: %v", NewLogClosure(func() string {
		return spew.Sdump(vb)
	}))

	// Group the votes and candidates by ballot
	var (
		votes      = make(map[string][]ballot.VoteRecord, len(vb.Ballots))
		candidates = make(map[string][]ballot.Candidate, len(vb.Ballots))
	)
	for _, v := range vb.Votes {
		votes[v.BallotID] = append(votes[v.BallotID], v)
	}
	for _, cand := range vb.Candidates {
		candidates[cand.BallotID] = append(candidates[cand.BallotID], cand)
	}

	summaries := make([]tally.BallotSummary, 0, len(vb.Ballots))
	for _, b := range vb.Ballots {
		s, err := tally.Summarize(b, candidates[b.ID], votes[b.ID],
			vb.EligibleVoters[b.ID], vb.QuorumPercentages[b.ID])
		if err != nil {
			return err
		}
		summaries = append(summaries, *s)
	}

	rb := v1.ResultsBundle{
		Version:    v1.APIVersion,
		BundleID:   uuid.New().String(),
		ElectionID: vb.ElectionID,
		Summaries:  summaries,
	}
	err = util.SaveJSON(c.Args.OutFile, rb)
	if err != nil {
		return err
	}

	log.Infof("Tallied %v ballots for election %v",
		len(summaries), vb.ElectionID)
	log.Infof("Results bundle %v saved to %v", rb.BundleID, c.Args.OutFile)

	return nil
}
