// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tally turns the cast votes of a ballot into a winner and quorum
// determination. Single seat ballots use instant-runoff elimination, multi
// seat ballots use positional scoring, and referendums use a simple yes/no
// count.
//
// All functions are pure: results are computed fresh from the vote records
// on every call and are never cached, so any caller can recompute a result
// and match it against a published one. Ballots may be tallied concurrently
// with no coordination.
package tally

import (
	"fmt"

	"github.com/campusgov/scrutineer/ballot"
)

// CandidateTally is the per candidate standing within a ballot result.
type CandidateTally struct {
	CandidateID      string  `json:"candidateid"`
	Name             string  `json:"name"`
	FirstChoiceVotes uint64  `json:"firstchoicevotes"`
	FinalRoundVotes  uint64  `json:"finalroundvotes,omitempty"`
	Score            uint64  `json:"score,omitempty"`
	Percentage       float64 `json:"percentage"`
	IsWinner         bool    `json:"iswinner"`
	IsTied           bool    `json:"istied"`
}

// QuorumDecision is the participation determination for a ballot. It is
// derived, never stored.
type QuorumDecision struct {
	EligibleVoters   uint64 `json:"eligiblevoters"`
	QuorumPercentage uint32 `json:"quorumpercentage"`
	Threshold        uint64 `json:"threshold"`
	Reached          bool   `json:"reached"`
}

// Quorum returns the quorum decision for a ballot. The threshold is the
// eligible voter count multiplied by the quorum percentage, rounded up.
// Scope resolution, i.e. which voters are eligible for the ballot, is
// supplied by the caller.
func Quorum(totalVotes, eligibleVoters uint64, quorumPercentage uint32) QuorumDecision {
	threshold := (eligibleVoters*uint64(quorumPercentage) + 99) / 100
	return QuorumDecision{
		EligibleVoters:   eligibleVoters,
		QuorumPercentage: quorumPercentage,
		Threshold:        threshold,
		Reached:          totalVotes >= threshold,
	}
}

// BallotSummary is the final per ballot result: the tally for the ballot's
// kind folded together with the quorum decision. Exactly one of Runoff,
// MultiSeat, and Referendum is set, matching the ballot kind.
type BallotSummary struct {
	BallotID   string             `json:"ballotid"`
	Kind       ballot.BallotKindT `json:"kind"`
	TotalVotes uint64             `json:"totalvotes"`
	Quorum     QuorumDecision     `json:"quorum"`
	Runoff     *RunoffResult      `json:"runoff,omitempty"`
	MultiSeat  *MultiSeatResult   `json:"multiseat,omitempty"`
	Referendum *ReferendumResult  `json:"referendum,omitempty"`
}

// Summarize tallies the ballot and folds in the quorum decision. The
// eligible voter count for the ballot's scope and the quorum percentage for
// the ballot's kind are configuration that the caller supplies.
func Summarize(b ballot.Ballot, candidates []ballot.Candidate, votes []ballot.VoteRecord, eligibleVoters uint64, quorumPercentage uint32) (*BallotSummary, error) {
	s := BallotSummary{
		BallotID:   b.ID,
		Kind:       b.Kind,
		TotalVotes: uint64(len(votes)),
		Quorum:     Quorum(uint64(len(votes)), eligibleVoters, quorumPercentage),
	}

	var err error
	switch b.Kind {
	case ballot.BallotKindSingleSeat:
		s.Runoff, err = Runoff(b, candidates, votes)
	case ballot.BallotKindMultiSeat:
		s.MultiSeat, err = MultiSeat(b, candidates, votes)
	case ballot.BallotKindReferendum:
		s.Referendum, err = Referendum(b, votes)
	default:
		err = ballot.UserError{
			ErrorCode:    ballot.ErrorCodeBallotKindInvalid,
			ErrorContext: fmt.Sprintf("kind %v", b.Kind),
		}
	}
	if err != nil {
		return nil, err
	}

	if !s.Quorum.Reached {
		log.Infof("Quorum not met %v: votes cast %v, quorum required %v",
			b.ID, s.TotalVotes, s.Quorum.Threshold)
	}

	return &s, nil
}

// candidateNames maps candidate ids to display names. Candidates that are
// missing from the provided list fall back to their id.
func candidateNames(b ballot.Ballot, candidates []ballot.Candidate) map[string]string {
	names := make(map[string]string, len(b.CandidateIDs))
	for _, cid := range b.CandidateIDs {
		names[cid] = cid
	}
	for _, c := range candidates {
		if _, ok := names[c.ID]; ok {
			names[c.ID] = c.Name
		}
	}
	return names
}

// verifyRankedVotes verifies the ballot structure and every ranked vote
// payload. Structural violations that were missed at cast time are caught
// here so that votes written directly to storage cannot skew a tally.
func verifyRankedVotes(b ballot.Ballot, votes []ballot.VoteRecord) error {
	err := ballot.VerifyBallot(b)
	if err != nil {
		return err
	}
	if len(votes) == 0 {
		return ballot.UserError{
			ErrorCode:    ballot.ErrorCodeVotesEmpty,
			ErrorContext: fmt.Sprintf("ballot %v", b.ID),
		}
	}
	for _, v := range votes {
		err := ballot.VerifyPayload(b, v.Payload)
		if err != nil {
			return err
		}
	}
	return nil
}

// roundPercentage rounds a percentage to two decimal places.
func roundPercentage(count, total uint64) float64 {
	if total == 0 {
		return 0
	}
	p := float64(count) / float64(total) * 100
	return float64(int64(p*100+0.5)) / 100
}
