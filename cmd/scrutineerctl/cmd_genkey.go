// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/campusgov/scrutineer/util"
	"github.com/pkg/errors"
)

// cmdGenKey generates a new random vote key and saves it to the vote key
// file, encrypted under the passphrase from the config. The command fails if
// a vote key file already exists; rotating the vote key invalidates every
// vote hash that was stamped with the old one, so an existing key must be
// removed manually and deliberately.
type cmdGenKey struct{}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdGenKey) Execute(args []string) error {
	if cfg.VoteKeyPass == "" {
		return errors.Errorf("vote key passphrase not set; use --votekeypass")
	}

	key, err := util.CreateVoteKey(log, cfg.VoteKeyFile,
		[]byte(cfg.VoteKeyPass))
	if err != nil {
		return err
	}
	util.Zero(key[:])

	return nil
}
