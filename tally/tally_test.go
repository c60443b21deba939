// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tally

import (
	"errors"
	"testing"

	"github.com/campusgov/scrutineer/ballot"
	"github.com/go-test/deep"
)

func TestQuorum(t *testing.T) {
	tests := []struct {
		name             string
		totalVotes       uint64
		eligibleVoters   uint64
		quorumPercentage uint32
		want             QuorumDecision
	}{
		{
			name:             "one vote short",
			totalVotes:       9,
			eligibleVoters:   100,
			quorumPercentage: 10,
			want: QuorumDecision{
				EligibleVoters:   100,
				QuorumPercentage: 10,
				Threshold:        10,
			},
		},
		{
			name:             "exactly at threshold",
			totalVotes:       10,
			eligibleVoters:   100,
			quorumPercentage: 10,
			want: QuorumDecision{
				EligibleVoters:   100,
				QuorumPercentage: 10,
				Threshold:        10,
				Reached:          true,
			},
		},
		{
			name:             "threshold rounds up",
			totalVotes:       3,
			eligibleVoters:   33,
			quorumPercentage: 10,
			want: QuorumDecision{
				EligibleVoters:   33,
				QuorumPercentage: 10,
				Threshold:        4,
			},
		},
		{
			name:             "zero percentage",
			totalVotes:       0,
			eligibleVoters:   100,
			quorumPercentage: 0,
			want: QuorumDecision{
				EligibleVoters:   100,
				QuorumPercentage: 0,
				Threshold:        0,
				Reached:          true,
			},
		},
		{
			name:             "zero eligible voters",
			totalVotes:       0,
			eligibleVoters:   0,
			quorumPercentage: 25,
			want: QuorumDecision{
				QuorumPercentage: 25,
				Threshold:        0,
				Reached:          true,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Quorum(tc.totalVotes, tc.eligibleVoters,
				tc.quorumPercentage)
			diff := deep.Equal(got, tc.want)
			if diff != nil {
				t.Errorf("unexpected decision: %v", diff)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		ballot ballot.Ballot
		votes  []ballot.VoteRecord
		verify func(t *testing.T, s *BallotSummary)
	}{
		{
			name: "single seat",
			ballot: ballot.Ballot{
				ID:             "president",
				Kind:           ballot.BallotKindSingleSeat,
				SeatsAvailable: 1,
				CandidateIDs:   []string{"alice", "bob"},
			},
			votes: rankedVotes("president",
				[]string{"alice"},
				[]string{"alice"},
				[]string{"bob"},
			),
			verify: func(t *testing.T, s *BallotSummary) {
				if s.Runoff == nil {
					t.Fatalf("runoff result not set")
				}
				if s.MultiSeat != nil || s.Referendum != nil {
					t.Errorf("unexpected result types set")
				}
				if s.Runoff.WinnerID != "alice" {
					t.Errorf("got winner %v, want alice",
						s.Runoff.WinnerID)
				}
			},
		},
		{
			name: "multi seat",
			ballot: ballot.Ballot{
				ID:             "senate",
				Kind:           ballot.BallotKindMultiSeat,
				SeatsAvailable: 2,
				CandidateIDs:   []string{"alice", "bob", "carol"},
			},
			votes: rankedVotes("senate",
				[]string{"alice", "bob", "carol"},
				[]string{"bob", "carol", "alice"},
			),
			verify: func(t *testing.T, s *BallotSummary) {
				if s.MultiSeat == nil {
					t.Fatalf("multi seat result not set")
				}
				if s.Runoff != nil || s.Referendum != nil {
					t.Errorf("unexpected result types set")
				}
			},
		},
		{
			name: "referendum",
			ballot: ballot.Ballot{
				ID:   "gym-fee",
				Kind: ballot.BallotKindReferendum,
			},
			votes: referendumVotes("gym-fee",
				ballot.PayloadYes, ballot.PayloadNo, ballot.PayloadYes),
			verify: func(t *testing.T, s *BallotSummary) {
				if s.Referendum == nil {
					t.Fatalf("referendum result not set")
				}
				if s.Runoff != nil || s.MultiSeat != nil {
					t.Errorf("unexpected result types set")
				}
				if !s.Referendum.Passed {
					t.Errorf("referendum did not pass")
				}
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Summarize(tc.ballot, nil, tc.votes, 100, 2)
			if err != nil {
				t.Fatal(err)
			}
			if s.BallotID != tc.ballot.ID {
				t.Errorf("got ballot id %v, want %v",
					s.BallotID, tc.ballot.ID)
			}
			if s.TotalVotes != uint64(len(tc.votes)) {
				t.Errorf("got total votes %v, want %v",
					s.TotalVotes, len(tc.votes))
			}
			if !s.Quorum.Reached {
				t.Errorf("quorum not reached: %+v", s.Quorum)
			}
			tc.verify(t, s)
		})
	}
}

func TestSummarizeInvalidKind(t *testing.T) {
	b := ballot.Ballot{
		ID:   "b1",
		Kind: ballot.BallotKindInvalid,
	}
	_, err := Summarize(b, nil, nil, 0, 0)
	var ue ballot.UserError
	if !errors.As(err, &ue) {
		t.Fatalf("got err %v, want user error", err)
	}
	if ue.ErrorCode != ballot.ErrorCodeBallotKindInvalid {
		t.Errorf("got error code %v, want %v",
			ballot.ErrorCodes[ue.ErrorCode],
			ballot.ErrorCodes[ballot.ErrorCodeBallotKindInvalid])
	}
}

func TestRoundPercentage(t *testing.T) {
	tests := []struct {
		count uint64
		total uint64
		want  float64
	}{
		{0, 0, 0},
		{1, 2, 50},
		{5, 7, 71.43},
		{2, 7, 28.57},
		{1, 3, 33.33},
		{3, 3, 100},
	}
	for _, tc := range tests {
		got := roundPercentage(tc.count, tc.total)
		if got != tc.want {
			t.Errorf("roundPercentage(%v, %v): got %v, want %v",
				tc.count, tc.total, got, tc.want)
		}
	}
}
