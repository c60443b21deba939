// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ballot defines the election data types that are shared between the
// tallying and integrity engines and the workflows that call them. The types
// in this package are pure data; persistence, transport, and identity
// handling are the caller's responsibility.
package ballot

// BallotKindT represents the kind of a ballot.
type BallotKindT uint32

const (
	// BallotKindInvalid is an invalid ballot kind.
	BallotKindInvalid BallotKindT = 0

	// BallotKindSingleSeat is a candidate ballot that fills exactly
	// one seat using instant-runoff elimination.
	BallotKindSingleSeat BallotKindT = 1

	// BallotKindMultiSeat is a candidate ballot that fills more than
	// one seat using positional scoring.
	BallotKindMultiSeat BallotKindT = 2

	// BallotKindReferendum is a yes/no question with no candidates.
	BallotKindReferendum BallotKindT = 3

	// BallotKindLast unit test only.
	BallotKindLast BallotKindT = 4
)

var (
	// BallotKinds contains the human readable ballot kinds.
	BallotKinds = map[BallotKindT]string{
		BallotKindInvalid:    "invalid",
		BallotKindSingleSeat: "single seat",
		BallotKindMultiSeat:  "multi seat",
		BallotKindReferendum: "referendum",
	}
)

// PayloadT represents the type of a vote payload.
type PayloadT uint32

const (
	// PayloadInvalid is an invalid payload type.
	PayloadInvalid PayloadT = 0

	// PayloadYes is a referendum vote in favor.
	PayloadYes PayloadT = 1

	// PayloadNo is a referendum vote against.
	PayloadNo PayloadT = 2

	// PayloadAbstain is a referendum vote that counts toward turnout
	// but not toward the yes/no outcome.
	PayloadAbstain PayloadT = 3

	// PayloadRanked is a candidate ballot vote that ranks candidates
	// in order of preference. A partial ranking is allowed and means
	// no preference beyond the last ranked candidate.
	PayloadRanked PayloadT = 4

	// PayloadLast unit test only.
	PayloadLast PayloadT = 5
)

var (
	// Payloads contains the human readable payload types.
	Payloads = map[PayloadT]string{
		PayloadInvalid: "invalid",
		PayloadYes:     "yes",
		PayloadNo:      "no",
		PayloadAbstain: "abstain",
		PayloadRanked:  "ranked",
	}
)

// Ballot describes a single question on an election. A ballot is created by
// an external admin workflow and is immutable once any vote exists for it.
type Ballot struct {
	ID             string      `json:"id"`
	Kind           BallotKindT `json:"kind"`
	SeatsAvailable uint32      `json:"seatsavailable,omitempty"`
	Scope          string      `json:"scope,omitempty"`
	CandidateIDs   []string    `json:"candidateids,omitempty"`
}

// Candidate is a candidate on a ballot. A candidate belongs to exactly one
// ballot; candidates are never shared between ballots.
type Candidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BallotID string `json:"ballotid"`
}

// VotePayload is a tagged union that holds the contents of a single cast
// vote. Ranking is only populated for PayloadRanked payloads. Every consumer
// must switch exhaustively over Type and must treat unrecognized types as an
// error, never as a default branch.
type VotePayload struct {
	Type    PayloadT `json:"type"`
	Ranking []string `json:"ranking,omitempty"`
}

// VoteRecord is a single cast vote. The record is stamped exactly once, at
// cast time, with a vote hash and a timestamp; both are immutable
// thereafter.
//
// A VoteRecord carries no voter identity. The voter ID is an input to the
// vote hash and is discarded afterwards, so anonymity is structural rather
// than a policy enforced elsewhere.
type VoteRecord struct {
	ElectionID string      `json:"electionid"`
	BallotID   string      `json:"ballotid"`
	Payload    VotePayload `json:"payload"`
	VoteHash   string      `json:"votehash"`
	Timestamp  int64       `json:"timestamp"` // Unix timestamp of cast time
}
