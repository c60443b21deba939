// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tally

import (
	"errors"
	"testing"

	"github.com/campusgov/scrutineer/ballot"
)

func TestMultiSeat(t *testing.T) {
	b := ballot.Ballot{
		ID:             "senate",
		Kind:           ballot.BallotKindMultiSeat,
		SeatsAvailable: 2,
		CandidateIDs:   []string{"alice", "bob", "carol"},
	}
	votes := rankedVotes(b.ID,
		[]string{"alice", "bob", "carol"},
		[]string{"bob", "alice", "carol"},
	)

	r, err := MultiSeat(b, nil, votes)
	if err != nil {
		t.Fatal(err)
	}
	if r.IsTied {
		t.Errorf("unexpected boundary tie")
	}

	// Alice and bob both score 5 (3+2 and 2+3), carol scores 2. The
	// tied score sits entirely inside the seat cutoff so both are
	// seated, but the tie is still surfaced on their tallies.
	if len(r.Tallies) != 3 {
		t.Fatalf("got %v tallies, want 3", len(r.Tallies))
	}
	for _, tt := range r.Tallies[:2] {
		if tt.Score != 5 {
			t.Errorf("%v: got score %v, want 5", tt.CandidateID, tt.Score)
		}
		if !tt.IsWinner {
			t.Errorf("%v: not marked winner", tt.CandidateID)
		}
		if !tt.IsTied {
			t.Errorf("%v: not marked tied", tt.CandidateID)
		}
	}
	last := r.Tallies[2]
	if last.CandidateID != "carol" || last.Score != 2 {
		t.Errorf("got bottom tally %v score %v, want carol score 2",
			last.CandidateID, last.Score)
	}
	if last.IsWinner || last.IsTied {
		t.Errorf("carol marked winner or tied")
	}
}

func TestMultiSeatBoundaryTie(t *testing.T) {
	b := ballot.Ballot{
		ID:             "senate",
		Kind:           ballot.BallotKindMultiSeat,
		SeatsAvailable: 2,
		CandidateIDs:   []string{"alice", "bob", "carol"},
	}
	votes := rankedVotes(b.ID,
		[]string{"alice", "bob", "carol"},
		[]string{"alice", "carol", "bob"},
	)

	r, err := MultiSeat(b, nil, votes)
	if err != nil {
		t.Fatal(err)
	}

	// Bob and carol both score 3 and the tie spans the second seat, so
	// the tally cannot fill it. Alice takes the first seat; the tied
	// candidates are left unseated for manual adjudication.
	if !r.IsTied {
		t.Fatalf("boundary tie not flagged")
	}
	var winners int
	for _, tt := range r.Tallies {
		if tt.IsWinner {
			winners++
			if tt.CandidateID != "alice" {
				t.Errorf("unexpected winner %v", tt.CandidateID)
			}
		}
		if tt.CandidateID != "alice" && !tt.IsTied {
			t.Errorf("%v: not marked tied", tt.CandidateID)
		}
	}
	if winners != 1 {
		t.Errorf("got %v winners, want 1", winners)
	}
}

func TestMultiSeatErrors(t *testing.T) {
	multi := ballot.Ballot{
		ID:             "senate",
		Kind:           ballot.BallotKindMultiSeat,
		SeatsAvailable: 2,
		CandidateIDs:   []string{"alice", "bob", "carol"},
	}
	tests := []struct {
		name    string
		ballot  ballot.Ballot
		votes   []ballot.VoteRecord
		errCode ballot.ErrorCodeT
	}{
		{
			name: "wrong ballot kind",
			ballot: ballot.Ballot{
				ID:             "president",
				Kind:           ballot.BallotKindSingleSeat,
				SeatsAvailable: 1,
				CandidateIDs:   []string{"alice"},
			},
			votes:   rankedVotes("president", []string{"alice"}),
			errCode: ballot.ErrorCodeBallotKindInvalid,
		},
		{
			name:    "no votes",
			ballot:  multi,
			votes:   nil,
			errCode: ballot.ErrorCodeVotesEmpty,
		},
		{
			name:    "duplicate ranking",
			ballot:  multi,
			votes:   rankedVotes(multi.ID, []string{"alice", "alice"}),
			errCode: ballot.ErrorCodeRankingDuplicate,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MultiSeat(tc.ballot, nil, tc.votes)
			var ue ballot.UserError
			if !errors.As(err, &ue) {
				t.Fatalf("got err %v, want user error", err)
			}
			if ue.ErrorCode != tc.errCode {
				t.Errorf("got error code %v, want %v",
					ballot.ErrorCodes[ue.ErrorCode],
					ballot.ErrorCodes[tc.errCode])
			}
		})
	}
}
