// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tally

import (
	"fmt"
	"sort"

	"github.com/campusgov/scrutineer/ballot"
)

// MultiSeatResult is the result of a positional scoring tally for a multi
// seat ballot.
type MultiSeatResult struct {
	SeatsAvailable uint32           `json:"seatsavailable"`
	Tallies        []CandidateTally `json:"tallies"`

	// IsTied indicates that a score tie spans the seat boundary. The
	// seats covered by the tied score are intentionally left unfilled;
	// the caller must surface the tie for manual adjudication instead
	// of resolving it automatically.
	IsTied bool `json:"istied"`
}

// MultiSeat tallies a multi seat ballot using positional scoring. Each
// ranked appearance of a candidate earns candidateCount minus the rank
// position in points, so a first place ranking earns the most and each
// lower rank earns one point less; unranked candidates earn nothing for
// that vote.
//
// Candidates are ordered by score, then by first choice votes, then by
// name. The top seatsAvailable candidates win. Candidates that share a
// score at or above the seat boundary are all marked tied; when the tied
// score spans the boundary none of the tied candidates is seated.
func MultiSeat(b ballot.Ballot, candidates []ballot.Candidate, votes []ballot.VoteRecord) (*MultiSeatResult, error) {
	if b.Kind != ballot.BallotKindMultiSeat {
		return nil, ballot.UserError{
			ErrorCode: ballot.ErrorCodeBallotKindInvalid,
			ErrorContext: fmt.Sprintf("multi seat tally requires a multi "+
				"seat ballot, got %v", ballot.BallotKinds[b.Kind]),
		}
	}
	err := verifyRankedVotes(b, votes)
	if err != nil {
		return nil, err
	}

	// Score the votes
	var (
		n           = uint64(len(b.CandidateIDs))
		scores      = make(map[string]uint64, n)
		firstChoice = make(map[string]uint64, n)
	)
	for _, v := range votes {
		for idx, cid := range v.Payload.Ranking {
			scores[cid] += n - uint64(idx)
		}
		firstChoice[v.Payload.Ranking[0]]++
	}

	names := candidateNames(b, candidates)
	tallies := make([]CandidateTally, 0, len(b.CandidateIDs))
	for _, cid := range b.CandidateIDs {
		tallies = append(tallies, CandidateTally{
			CandidateID:      cid,
			Name:             names[cid],
			FirstChoiceVotes: firstChoice[cid],
			Score:            scores[cid],
			Percentage: roundPercentage(firstChoice[cid],
				uint64(len(votes))),
		})
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].Score != tallies[j].Score {
			return tallies[i].Score > tallies[j].Score
		}
		if tallies[i].FirstChoiceVotes != tallies[j].FirstChoiceVotes {
			return tallies[i].FirstChoiceVotes > tallies[j].FirstChoiceVotes
		}
		return tallies[i].Name < tallies[j].Name
	})

	result := MultiSeatResult{
		SeatsAvailable: b.SeatsAvailable,
	}
	seats := int(b.SeatsAvailable)

	// Flag every score that is shared by multiple candidates and held
	// by at least one candidate within the seat cutoff. These ties are
	// first class result states that must be rendered to users.
	scoreCounts := make(map[uint64]int, len(tallies))
	for _, t := range tallies {
		scoreCounts[t.Score]++
	}
	for i := range tallies {
		if i < seats && scoreCounts[tallies[i].Score] > 1 {
			s := tallies[i].Score
			for j := range tallies {
				if tallies[j].Score == s {
					tallies[j].IsTied = true
				}
			}
		}
	}

	// A tie that spans the seat boundary cannot be resolved here. The
	// candidates above the tied score are seated; the tied candidates
	// are left unseated for manual adjudication.
	boundaryTied := len(tallies) > seats &&
		tallies[seats-1].Score == tallies[seats].Score
	if boundaryTied {
		result.IsTied = true
		tiedScore := tallies[seats-1].Score
		for i := range tallies {
			if i < seats && tallies[i].Score != tiedScore {
				tallies[i].IsWinner = true
			}
		}
		log.Infof("Multi seat boundary tie on ballot %v at score %v",
			b.ID, tiedScore)
	} else {
		for i := 0; i < seats && i < len(tallies); i++ {
			tallies[i].IsWinner = true
		}
	}
	result.Tallies = tallies

	return &result, nil
}
