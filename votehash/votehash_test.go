// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package votehash

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/campusgov/scrutineer/ballot"
)

var (
	testKey = make([]byte, KeySize)

	testPayload = ballot.VotePayload{
		Type:    ballot.PayloadRanked,
		Ranking: []string{"alice", "bob"},
	}

	testTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

func init() {
	for i := range testKey {
		testKey[i] = byte(i)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
		err  error
	}{
		{
			name: "no key",
			key:  nil,
			err:  ErrKeyNotSet,
		},
		{
			name: "short key",
			key:  make([]byte, KeySize-1),
			err:  ErrKeyInvalid,
		},
		{
			name: "valid key",
			key:  testKey,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.key)
			if !errors.Is(err, tc.err) {
				t.Errorf("got err %v, want %v", err, tc.err)
			}
		})
	}
}

func TestHash(t *testing.T) {
	e, err := New(testKey)
	if err != nil {
		t.Fatal(err)
	}

	// The same inputs must always hash to the same value
	h1, err := e.Hash("e1", "b1", testPayload, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := e.Hash("e1", "b1", testPayload, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("hash not deterministic: %v != %v", h1, h2)
	}

	// The same instant must hash identically regardless of the time
	// zone it was recorded in.
	zoned := testTime.In(time.FixedZone("UTC+5", 5*60*60))
	h3, err := e.Hash("e1", "b1", testPayload, "voter1", zoned)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h3 {
		t.Errorf("hash is zone sensitive: %v != %v", h1, h3)
	}

	// Any change to the inputs must change the hash
	altered := []struct {
		name       string
		electionID string
		ballotID   string
		payload    ballot.VotePayload
		voterID    string
		ts         time.Time
	}{
		{"election id", "e2", "b1", testPayload, "voter1", testTime},
		{"ballot id", "e1", "b2", testPayload, "voter1", testTime},
		{"payload", "e1", "b1", ballot.VotePayload{
			Type:    ballot.PayloadRanked,
			Ranking: []string{"bob", "alice"},
		}, "voter1", testTime},
		{"voter id", "e1", "b1", testPayload, "voter2", testTime},
		{"timestamp", "e1", "b1", testPayload, "voter1",
			testTime.Add(time.Second)},
	}
	for _, tc := range altered {
		t.Run(tc.name, func(t *testing.T) {
			h, err := e.Hash(tc.electionID, tc.ballotID, tc.payload,
				tc.voterID, tc.ts)
			if err != nil {
				t.Fatal(err)
			}
			if h == h1 {
				t.Errorf("altered %v did not change the hash", tc.name)
			}
		})
	}

	// A different key must change the hash
	key2 := make([]byte, KeySize)
	copy(key2, testKey)
	key2[0] ^= 0xff
	e2, err := New(key2)
	if err != nil {
		t.Fatal(err)
	}
	h4, err := e2.Hash("e1", "b1", testPayload, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}
	if h4 == h1 {
		t.Errorf("different key produced the same hash")
	}
}

func TestHashCanonical(t *testing.T) {
	e, err := New(testKey)
	if err != nil {
		t.Fatal(err)
	}

	// Logically identical payloads must hash identically regardless of
	// the JSON field order they arrived in.
	var p1, p2 ballot.VotePayload
	err = json.Unmarshal([]byte(`{"type":4,"ranking":["alice","bob"]}`), &p1)
	if err != nil {
		t.Fatal(err)
	}
	err = json.Unmarshal([]byte(`{"ranking":["alice","bob"],"type":4}`), &p2)
	if err != nil {
		t.Fatal(err)
	}

	h1, err := e.Hash("e1", "b1", p1, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := e.Hash("e1", "b1", p2, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("field order changed the hash: %v != %v", h1, h2)
	}
}

func TestHashFieldInvalid(t *testing.T) {
	e, err := New(testKey)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name       string
		electionID string
		ballotID   string
		payload    ballot.VotePayload
		voterID    string
	}{
		{"empty election id", "", "b1", testPayload, "voter1"},
		{"delimiter in ballot id", "e1", "b|1", testPayload, "voter1"},
		{"delimiter in voter id", "e1", "b1", testPayload, "vot|er1"},
		{"delimiter in ranking", "e1", "b1", ballot.VotePayload{
			Type:    ballot.PayloadRanked,
			Ranking: []string{"al|ice"},
		}, "voter1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Hash(tc.electionID, tc.ballotID, tc.payload,
				tc.voterID, testTime)
			var ue ballot.UserError
			if !errors.As(err, &ue) {
				t.Fatalf("got err %v, want user error", err)
			}
			if ue.ErrorCode != ballot.ErrorCodeFieldInvalid {
				t.Errorf("got error code %v, want %v", ue.ErrorCode,
					ballot.ErrorCodeFieldInvalid)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	e, err := New(testKey)
	if err != nil {
		t.Fatal(err)
	}
	h, err := e.Hash("e1", "b1", testPayload, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}

	// Untampered contents must verify
	ok, err := e.Verify(h, "e1", "b1", testPayload, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("valid hash did not verify")
	}

	// Tampered contents must not verify
	tampered := ballot.VotePayload{
		Type:    ballot.PayloadRanked,
		Ranking: []string{"bob", "alice"},
	}
	ok, err = e.Verify(h, "e1", "b1", tampered, "voter1", testTime)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("tampered payload verified")
	}
}
