// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tally

import (
	"fmt"
	"sort"

	"github.com/campusgov/scrutineer/ballot"
)

// StatusT represents the terminal state of an instant-runoff tally.
type StatusT uint32

const (
	// StatusInvalid is an invalid status.
	StatusInvalid StatusT = 0

	// StatusMajority indicates a candidate reached a majority of the
	// active votes in some round.
	StatusMajority StatusT = 1

	// StatusSingleRemains indicates the winner was the only candidate
	// left after eliminations.
	StatusSingleRemains StatusT = 2

	// StatusExhausted indicates the tally terminated without a winner,
	// either because every vote ran out of active preferences or
	// because the round safety bound was hit.
	StatusExhausted StatusT = 3

	// StatusLast unit test only.
	StatusLast StatusT = 4
)

var (
	// Statuses contains the human readable runoff statuses.
	Statuses = map[StatusT]string{
		StatusInvalid:       "invalid",
		StatusMajority:      "majority",
		StatusSingleRemains: "single remains",
		StatusExhausted:     "exhausted",
	}
)

// Round is one instant-runoff counting round. Rounds are exported with the
// result so that an elimination trace can be audited and rendered.
type Round struct {
	Number      uint32            `json:"number"`
	Counts      map[string]uint64 `json:"counts"` // [candidateid]votes
	ActiveVotes uint64            `json:"activevotes"`
	Eliminated  string            `json:"eliminated,omitempty"`
}

// RunoffResult is the result of an instant-runoff tally for a single seat
// ballot.
type RunoffResult struct {
	Status   StatusT          `json:"status"`
	WinnerID string           `json:"winnerid,omitempty"`
	IsTied   bool             `json:"istied"`
	Rounds   []Round          `json:"rounds"`
	Tallies  []CandidateTally `json:"tallies"`
}

// Runoff runs instant-runoff elimination over the ranked votes of a single
// seat ballot.
//
// Each round, every vote counts for its highest ranked candidate that is
// still active; votes with no active preferences left are exhausted and do
// not count toward that round's total. A candidate with a majority of the
// round's active votes wins. Otherwise the candidate with the fewest votes
// is eliminated and the votes are recounted. Elimination ties are broken by
// lexical candidate id order; the rule is arbitrary but fixed, since a
// nondeterministic tie break would make results irreproducible.
func Runoff(b ballot.Ballot, candidates []ballot.Candidate, votes []ballot.VoteRecord) (*RunoffResult, error) {
	if b.Kind != ballot.BallotKindSingleSeat {
		return nil, ballot.UserError{
			ErrorCode: ballot.ErrorCodeBallotKindInvalid,
			ErrorContext: fmt.Sprintf("runoff requires a single seat "+
				"ballot, got %v", ballot.BallotKinds[b.Kind]),
		}
	}
	err := verifyRankedVotes(b, votes)
	if err != nil {
		return nil, err
	}

	active := make(map[string]struct{}, len(b.CandidateIDs))
	for _, cid := range b.CandidateIDs {
		active[cid] = struct{}{}
	}

	// Safety bound on the number of rounds. One elimination per round
	// means the tally must terminate within the candidate count; more
	// rounds than that indicates a counting bug, so the tally bails
	// out with an exhausted status instead of looping.
	maxRounds := len(b.CandidateIDs) + 2

	var (
		result = RunoffResult{
			Status: StatusInvalid,
			Rounds: make([]Round, 0, len(b.CandidateIDs)),
		}
		firstChoice map[string]uint64
		finalRound  Round
	)
	for number := uint32(1); ; number++ {
		round := Round{
			Number: number,
			Counts: make(map[string]uint64, len(active)),
		}
		for cid := range active {
			round.Counts[cid] = 0
		}
		for _, v := range votes {
			for _, cid := range v.Payload.Ranking {
				if _, ok := active[cid]; ok {
					round.Counts[cid]++
					round.ActiveVotes++
					break
				}
			}
			// Votes with no active preference are exhausted and
			// fall through uncounted.
		}
		result.Rounds = append(result.Rounds, round)
		finalRound = round
		if number == 1 {
			firstChoice = round.Counts
		}

		// Check for a majority: floor(active/2)+1. More than one
		// candidate at or above the threshold is surfaced as a tie,
		// never silently resolved; the lexically first tied
		// candidate is reported as the nominal winner.
		threshold := round.ActiveVotes/2 + 1
		majority := make([]string, 0, 1)
		for cid, count := range round.Counts {
			if round.ActiveVotes > 0 && count >= threshold {
				majority = append(majority, cid)
			}
		}
		sort.Strings(majority)
		if len(majority) > 0 {
			result.Status = StatusMajority
			result.WinnerID = majority[0]
			result.IsTied = len(majority) > 1
			break
		}

		if len(active) == 1 {
			// Only one candidate left; it wins by elimination
			// default even without a majority of cast votes.
			result.Status = StatusSingleRemains
			for cid := range active {
				result.WinnerID = cid
			}
			break
		}

		if round.ActiveVotes == 0 {
			// Every vote has run out of active preferences
			result.Status = StatusExhausted
			break
		}

		if int(number) >= maxRounds {
			log.Warnf("Runoff round bound hit on ballot %v after %v "+
				"rounds", b.ID, number)
			result.Status = StatusExhausted
			break
		}

		// Eliminate the candidate with the fewest votes, ties
		// broken by lexical id order.
		eliminated := ""
		for cid := range active {
			if eliminated == "" {
				eliminated = cid
				continue
			}
			switch {
			case round.Counts[cid] < round.Counts[eliminated]:
				eliminated = cid
			case round.Counts[cid] == round.Counts[eliminated] &&
				cid < eliminated:
				eliminated = cid
			}
		}
		delete(active, eliminated)
		result.Rounds[len(result.Rounds)-1].Eliminated = eliminated

		log.Debugf("Runoff ballot %v round %v: no majority of %v active "+
			"votes, eliminated %v", b.ID, number, round.ActiveVotes,
			eliminated)
	}

	// Assemble the per candidate tallies from the first and final
	// rounds.
	names := candidateNames(b, candidates)
	tied := make(map[string]struct{})
	if result.IsTied {
		threshold := finalRound.ActiveVotes/2 + 1
		for cid, count := range finalRound.Counts {
			if count >= threshold {
				tied[cid] = struct{}{}
			}
		}
	}
	tallies := make([]CandidateTally, 0, len(b.CandidateIDs))
	for _, cid := range b.CandidateIDs {
		_, isTied := tied[cid]
		tallies = append(tallies, CandidateTally{
			CandidateID:      cid,
			Name:             names[cid],
			FirstChoiceVotes: firstChoice[cid],
			FinalRoundVotes:  finalRound.Counts[cid],
			Percentage: roundPercentage(finalRound.Counts[cid],
				finalRound.ActiveVotes),
			IsWinner: cid == result.WinnerID,
			IsTied:   isTied,
		})
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].FinalRoundVotes != tallies[j].FinalRoundVotes {
			return tallies[i].FinalRoundVotes > tallies[j].FinalRoundVotes
		}
		if tallies[i].FirstChoiceVotes != tallies[j].FirstChoiceVotes {
			return tallies[i].FirstChoiceVotes > tallies[j].FirstChoiceVotes
		}
		return tallies[i].CandidateID < tallies[j].CandidateID
	})
	result.Tallies = tallies

	return &result, nil
}
