// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tally

import (
	"fmt"

	"github.com/campusgov/scrutineer/ballot"
)

// ReferendumResult is the result of a yes/no count for a referendum ballot.
// Abstentions count toward turnout, and therefore toward quorum, but not
// toward the outcome.
type ReferendumResult struct {
	Yes           uint64  `json:"yes"`
	No            uint64  `json:"no"`
	Abstain       uint64  `json:"abstain"`
	Passed        bool    `json:"passed"`
	IsTied        bool    `json:"istied"`
	YesPercentage float64 `json:"yespercentage"`
	NoPercentage  float64 `json:"nopercentage"`
}

// Referendum counts the yes and no votes of a referendum ballot. The
// referendum passes when yes votes strictly outnumber no votes. An equal
// nonzero count is a tie, which is a first class result state, not an
// error.
func Referendum(b ballot.Ballot, votes []ballot.VoteRecord) (*ReferendumResult, error) {
	if b.Kind != ballot.BallotKindReferendum {
		return nil, ballot.UserError{
			ErrorCode: ballot.ErrorCodeBallotKindInvalid,
			ErrorContext: fmt.Sprintf("referendum tally requires a "+
				"referendum ballot, got %v", ballot.BallotKinds[b.Kind]),
		}
	}
	err := ballot.VerifyBallot(b)
	if err != nil {
		return nil, err
	}

	var r ReferendumResult
	for _, v := range votes {
		switch v.Payload.Type {
		case ballot.PayloadYes:
			r.Yes++
		case ballot.PayloadNo:
			r.No++
		case ballot.PayloadAbstain:
			r.Abstain++
		case ballot.PayloadRanked, ballot.PayloadInvalid:
			return nil, ballot.UserError{
				ErrorCode: ballot.ErrorCodePayloadTypeInvalid,
				ErrorContext: fmt.Sprintf("payload %v on referendum "+
					"ballot %v", ballot.Payloads[v.Payload.Type], b.ID),
			}
		default:
			return nil, ballot.UserError{
				ErrorCode:    ballot.ErrorCodePayloadTypeInvalid,
				ErrorContext: fmt.Sprintf("type %v", v.Payload.Type),
			}
		}
	}

	decided := r.Yes + r.No
	r.Passed = r.Yes > r.No
	r.IsTied = r.Yes == r.No && decided > 0
	r.YesPercentage = roundPercentage(r.Yes, decided)
	r.NoPercentage = roundPercentage(r.No, decided)

	return &r, nil
}
