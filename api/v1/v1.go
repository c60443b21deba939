// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package v1 defines the JSON interchange formats that the scrutineer CLIs
// read and write. These bundles are the boundary between the pure engines
// and the workflows that persist, export, and verify election data.
package v1

import (
	"github.com/campusgov/scrutineer/ballot"
	"github.com/campusgov/scrutineer/merkle"
	"github.com/campusgov/scrutineer/tally"
)

const (
	// APIVersion is the version of the bundle formats defined in this
	// package.
	APIVersion uint32 = 1
)

// CastVote is the input to the vote casting workflow: the contents of a
// single vote at the moment it is cast, before it has been stamped with a
// vote hash. The voter id is consumed by the hash computation and is not
// carried into the resulting vote record.
type CastVote struct {
	ElectionID string             `json:"electionid"`
	BallotID   string             `json:"ballotid"`
	Payload    ballot.VotePayload `json:"payload"`
	VoterID    string             `json:"voterid"`
	Timestamp  int64              `json:"timestamp"` // Unix timestamp
}

// Receipt is returned to the voter when a vote is cast. The vote hash is
// the voter's proof that their vote was recorded with the contents they
// submitted.
type Receipt struct {
	Version   uint32 `json:"version"`
	VoteHash  string `json:"votehash"`
	Timestamp int64  `json:"timestamp"`
}

// VoteBundle contains everything needed to tally an election: the ballot
// and candidate schema, the cast vote records, and the quorum configuration
// that the persistence layer supplies. EligibleVoters and QuorumPercentages
// are keyed by ballot id; eligible voter counts are already resolved for
// each ballot's scope by the caller.
type VoteBundle struct {
	Version           uint32              `json:"version"`
	ElectionID        string              `json:"electionid"`
	Ballots           []ballot.Ballot     `json:"ballots"`
	Candidates        []ballot.Candidate  `json:"candidates"`
	Votes             []ballot.VoteRecord `json:"votes"`
	EligibleVoters    map[string]uint64   `json:"eligiblevoters"`
	QuorumPercentages map[string]uint32   `json:"quorumpercentages"`
}

// ResultsBundle is the tally output for an election: one summary per
// ballot. Results are always recomputed from the vote records; a results
// bundle is an export artifact, never authoritative state.
type ResultsBundle struct {
	Version    uint32                `json:"version"`
	BundleID   string                `json:"bundleid"`
	ElectionID string                `json:"electionid"`
	Summaries  []tally.BallotSummary `json:"summaries"`
}

// TreeBundle is the committed merkle tree of a closed election: the vote
// hashes in canonical leaf order and the root they derive. The root is the
// value that gets published; the leaves allow the tree to be rebuilt for
// proof generation and integrity self-checks.
type TreeBundle struct {
	Version    uint32   `json:"version"`
	ElectionID string   `json:"electionid"`
	Leaves     []string `json:"leaves"`
	Root       string   `json:"root"`
}

// ProofBundle is a portable inclusion proof. Anyone holding a proof bundle
// and the published root can verify it offline with no key and no database
// access.
type ProofBundle struct {
	Version    uint32       `json:"version"`
	ElectionID string       `json:"electionid"`
	Proof      merkle.Proof `json:"proof"`
}

// ReceiptBundle is the input to offline receipt verification: the vote
// contents as the voter knows them and the vote hash from their receipt.
// Verification requires the secret vote key and is therefore an operator
// action, unlike proof verification which is public.
type ReceiptBundle struct {
	Version  uint32   `json:"version"`
	Vote     CastVote `json:"vote"`
	VoteHash string   `json:"votehash"`
}
