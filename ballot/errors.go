// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import "fmt"

// ErrorCodeT represents a structural violation in ballot or vote data. These
// are contract errors that are returned synchronously to the caller; the
// caller decides whether to drop the offending vote or abort.
type ErrorCodeT uint32

const (
	// ErrorCodeInvalid is an invalid error code.
	ErrorCodeInvalid ErrorCodeT = 0

	// ErrorCodeBallotKindInvalid is returned when a ballot kind is not
	// one of the defined kinds.
	ErrorCodeBallotKindInvalid ErrorCodeT = 1

	// ErrorCodeCandidatesEmpty is returned when a candidate ballot has
	// no candidates.
	ErrorCodeCandidatesEmpty ErrorCodeT = 2

	// ErrorCodeCandidatesNotAllowed is returned when a referendum
	// ballot has candidates.
	ErrorCodeCandidatesNotAllowed ErrorCodeT = 3

	// ErrorCodeSeatsInvalid is returned when the seats available on a
	// candidate ballot is zero or exceeds the candidate count.
	ErrorCodeSeatsInvalid ErrorCodeT = 4

	// ErrorCodePayloadTypeInvalid is returned when a vote payload type
	// is not one of the defined types or is not allowed on the ballot
	// kind being voted on.
	ErrorCodePayloadTypeInvalid ErrorCodeT = 5

	// ErrorCodeRankingEmpty is returned when a ranked payload contains
	// no candidate ids.
	ErrorCodeRankingEmpty ErrorCodeT = 6

	// ErrorCodeRankingDuplicate is returned when a ranked payload
	// contains the same candidate id more than once.
	ErrorCodeRankingDuplicate ErrorCodeT = 7

	// ErrorCodeRankingUnknownCandidate is returned when a ranked
	// payload contains a candidate id that does not belong to the
	// ballot being voted on.
	ErrorCodeRankingUnknownCandidate ErrorCodeT = 8

	// ErrorCodeFieldInvalid is returned when an id field contains the
	// hash input delimiter or is empty.
	ErrorCodeFieldInvalid ErrorCodeT = 9

	// ErrorCodeVotesEmpty is returned when a tally is requested with
	// no vote records.
	ErrorCodeVotesEmpty ErrorCodeT = 10

	// ErrorCodeLast unit test only.
	ErrorCodeLast ErrorCodeT = 11
)

var (
	// ErrorCodes contains the human readable error codes.
	ErrorCodes = map[ErrorCodeT]string{
		ErrorCodeInvalid:                 "error code invalid",
		ErrorCodeBallotKindInvalid:       "ballot kind invalid",
		ErrorCodeCandidatesEmpty:         "candidates empty",
		ErrorCodeCandidatesNotAllowed:    "candidates not allowed",
		ErrorCodeSeatsInvalid:            "seats invalid",
		ErrorCodePayloadTypeInvalid:      "payload type invalid",
		ErrorCodeRankingEmpty:            "ranking empty",
		ErrorCodeRankingDuplicate:        "ranking duplicate",
		ErrorCodeRankingUnknownCandidate: "ranking unknown candidate",
		ErrorCodeFieldInvalid:            "field invalid",
		ErrorCodeVotesEmpty:              "votes empty",
	}
)

// UserError is a structural violation in caller provided data.
type UserError struct {
	ErrorCode    ErrorCodeT
	ErrorContext string
}

// Error satisfies the error interface.
func (e UserError) Error() string {
	if e.ErrorContext == "" {
		return fmt.Sprintf("user error (%v): %v",
			e.ErrorCode, ErrorCodes[e.ErrorCode])
	}
	return fmt.Sprintf("user error (%v): %v, %v",
		e.ErrorCode, ErrorCodes[e.ErrorCode], e.ErrorContext)
}
