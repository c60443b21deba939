// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import (
	"fmt"
	"sort"
)

// VerifyBallot verifies that the ballot structure is internally consistent.
// A UserError is returned when it is not.
func VerifyBallot(b Ballot) error {
	switch b.Kind {
	case BallotKindReferendum:
		// Referendums have no candidates
		if len(b.CandidateIDs) != 0 {
			return UserError{
				ErrorCode: ErrorCodeCandidatesNotAllowed,
				ErrorContext: fmt.Sprintf("referendum ballot %v has %v "+
					"candidates", b.ID, len(b.CandidateIDs)),
			}
		}

	case BallotKindSingleSeat, BallotKindMultiSeat:
		// Candidate ballots require at least one candidate and the
		// seats available can never exceed the candidate count.
		if len(b.CandidateIDs) == 0 {
			return UserError{
				ErrorCode:    ErrorCodeCandidatesEmpty,
				ErrorContext: fmt.Sprintf("ballot %v", b.ID),
			}
		}
		if b.SeatsAvailable == 0 ||
			b.SeatsAvailable > uint32(len(b.CandidateIDs)) {
			return UserError{
				ErrorCode: ErrorCodeSeatsInvalid,
				ErrorContext: fmt.Sprintf("ballot %v has %v seats and %v "+
					"candidates", b.ID, b.SeatsAvailable,
					len(b.CandidateIDs)),
			}
		}

	default:
		return UserError{
			ErrorCode:    ErrorCodeBallotKindInvalid,
			ErrorContext: fmt.Sprintf("kind %v", b.Kind),
		}
	}

	return nil
}

// VerifyPayload verifies that a vote payload is valid for the provided
// ballot. Ranked payloads are checked for duplicate candidate ids and for
// candidate ids that do not belong to the ballot. This check runs at cast
// time and is run again at tally time so that votes written directly to
// storage cannot bypass it.
func VerifyPayload(b Ballot, p VotePayload) error {
	switch p.Type {
	case PayloadYes, PayloadNo, PayloadAbstain:
		if b.Kind != BallotKindReferendum {
			return UserError{
				ErrorCode: ErrorCodePayloadTypeInvalid,
				ErrorContext: fmt.Sprintf("payload %v not valid on a %v "+
					"ballot", Payloads[p.Type], BallotKinds[b.Kind]),
			}
		}

	case PayloadRanked:
		if b.Kind != BallotKindSingleSeat && b.Kind != BallotKindMultiSeat {
			return UserError{
				ErrorCode: ErrorCodePayloadTypeInvalid,
				ErrorContext: fmt.Sprintf("payload %v not valid on a %v "+
					"ballot", Payloads[p.Type], BallotKinds[b.Kind]),
			}
		}
		if len(p.Ranking) == 0 {
			return UserError{
				ErrorCode: ErrorCodeRankingEmpty,
			}
		}
		onBallot := make(map[string]struct{}, len(b.CandidateIDs))
		for _, cid := range b.CandidateIDs {
			onBallot[cid] = struct{}{}
		}
		seen := make(map[string]struct{}, len(p.Ranking))
		for _, cid := range p.Ranking {
			if _, ok := onBallot[cid]; !ok {
				return UserError{
					ErrorCode:    ErrorCodeRankingUnknownCandidate,
					ErrorContext: fmt.Sprintf("candidate %v", cid),
				}
			}
			if _, ok := seen[cid]; ok {
				return UserError{
					ErrorCode:    ErrorCodeRankingDuplicate,
					ErrorContext: fmt.Sprintf("candidate %v", cid),
				}
			}
			seen[cid] = struct{}{}
		}

	default:
		return UserError{
			ErrorCode:    ErrorCodePayloadTypeInvalid,
			ErrorContext: fmt.Sprintf("type %v", p.Type),
		}
	}

	return nil
}

// OrderVoteRecords returns a copy of the provided vote records in canonical
// leaf order: timestamp ascending, ties broken by lexical vote hash order.
// This is the fixed order that vote hashes must be fed to the merkle engine
// in so that the same vote set always produces the same root.
func OrderVoteRecords(records []VoteRecord) []VoteRecord {
	ordered := make([]VoteRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Timestamp != ordered[j].Timestamp {
			return ordered[i].Timestamp < ordered[j].Timestamp
		}
		return ordered[i].VoteHash < ordered[j].VoteHash
	})
	return ordered
}
