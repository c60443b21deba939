// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot

import (
	"testing"

	"github.com/campusgov/scrutineer/unittest"
)

func TestBallotKinds(t *testing.T) {
	err := unittest.TestGenericConstMap(BallotKinds, uint64(BallotKindLast))
	if err != nil {
		t.Fatalf("BallotKinds: %v", err)
	}
}

func TestPayloads(t *testing.T) {
	err := unittest.TestGenericConstMap(Payloads, uint64(PayloadLast))
	if err != nil {
		t.Fatalf("Payloads: %v", err)
	}
}

func TestErrorCodes(t *testing.T) {
	err := unittest.TestGenericConstMap(ErrorCodes, uint64(ErrorCodeLast))
	if err != nil {
		t.Fatalf("ErrorCodes: %v", err)
	}
}
