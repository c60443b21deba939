// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package votehash computes the keyed tamper evidence hash that is stamped
// onto every vote record at cast time.
//
// The hash is an HMAC-SHA256 over the canonical serialization of the vote
// contents. A keyed MAC is used instead of a plain hash so that a privileged
// database operator cannot edit a vote payload and recompute a matching
// hash; forging a hash requires the secret key, which is never persisted
// alongside the data it protects.
package votehash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/campusgov/scrutineer/ballot"
	"github.com/pkg/errors"
)

const (
	// KeySize is the required size of the secret key in bytes.
	KeySize = 32

	// delimiter separates the hash input fields. Fields are rejected
	// if they contain the delimiter since a collision would allow two
	// different votes to serialize identically.
	delimiter = "|"
)

var (
	// ErrKeyNotSet is returned when an engine is created without a
	// secret key. This is a configuration error and is fatal; the
	// engine refuses to operate rather than falling back to an
	// unkeyed hash.
	ErrKeyNotSet = errors.New("secret key not set")

	// ErrKeyInvalid is returned when the secret key is not KeySize
	// bytes.
	ErrKeyInvalid = errors.New("secret key invalid")
)

// Engine computes and verifies vote hashes using a secret key.
type Engine struct {
	key []byte
}

// New returns a new hash engine. The key is copied; the caller may zero its
// copy after the call returns.
func New(key []byte) (*Engine, error) {
	switch {
	case len(key) == 0:
		return nil, ErrKeyNotSet
	case len(key) != KeySize:
		return nil, errors.WithMessagef(ErrKeyInvalid,
			"got %v bytes, want %v", len(key), KeySize)
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &Engine{key: k}, nil
}

// Hash returns the hex encoded vote hash for the provided vote contents.
//
// The hash input is the canonical payload serialization and the remaining
// fields joined with a fixed delimiter:
//
//	electionID|ballotID|payload|voterID|timestamp
//
// The timestamp is rendered as RFC 3339 UTC so that the same instant always
// serializes identically regardless of the zone it was recorded in.
func (e *Engine) Hash(electionID, ballotID string, p ballot.VotePayload, voterID string, ts time.Time) (string, error) {
	msg, err := hashInput(electionID, ballotID, p, voterID, ts)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, e.key)
	mac.Write(msg)
	h := hex.EncodeToString(mac.Sum(nil))

	log.Tracef("Vote hash %v computed for election %v ballot %v",
		h, electionID, ballotID)

	return h, nil
}

// Verify recomputes the vote hash from the provided vote contents and
// compares it to the provided hash in constant time. A false return with a
// nil error means the stored hash does not match the stored contents, i.e.
// tampering should be suspected.
func (e *Engine) Verify(voteHash, electionID, ballotID string, p ballot.VotePayload, voterID string, ts time.Time) (bool, error) {
	h, err := e.Hash(electionID, ballotID, p, voterID, ts)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(h), []byte(voteHash)), nil
}

// Zero zeros out the secret key. The engine must not be used afterwards.
func (e *Engine) Zero() {
	for i := range e.key {
		e.key[i] ^= e.key[i]
	}
}

// hashInput builds the canonical hash input for a vote.
func hashInput(electionID, ballotID string, p ballot.VotePayload, voterID string, ts time.Time) ([]byte, error) {
	// Verify the id fields. Empty fields and fields that contain the
	// delimiter are rejected.
	fields := []string{electionID, ballotID, voterID}
	fields = append(fields, p.Ranking...)
	for _, f := range fields {
		if f == "" || strings.Contains(f, delimiter) {
			return nil, ballot.UserError{
				ErrorCode:    ballot.ErrorCodeFieldInvalid,
				ErrorContext: f,
			}
		}
	}

	payload, err := encodeCanonical(p)
	if err != nil {
		return nil, err
	}

	msg := strings.Join([]string{
		electionID,
		ballotID,
		string(payload),
		voterID,
		ts.UTC().Format(time.RFC3339),
	}, delimiter)

	return []byte(msg), nil
}

// encodeCanonical serializes a vote payload to JSON with the object keys
// sorted so that logically identical payloads always serialize identically
// regardless of field order.
func encodeCanonical(p ballot.VotePayload) ([]byte, error) {
	// Round trip the payload through a generic map. encoding/json
	// marshals map keys in sorted order, which gives the canonical
	// form.
	b, err := json.Marshal(p)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var m map[string]interface{}
	err = json.Unmarshal(b, &m)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	b, err = json.Marshal(m)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
