// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// cmds contains the list of CLI commands.
type cmds struct {
	// The config is parsed separately from the commands and set as a global
	// variable. The DoNotUse config field is here as a workaround to prevent
	// go-flags unknown flag errors during parsing and to allow the config fields
	// to be printed in the go-flags created help message. It should not be used
	// by the commands.
	DoNotUse *config

	Version    cmdVersion    `command:"version" description:"Print the application version"`
	GenKey     cmdGenKey     `command:"genkey" description:"Generate a new vote key"`
	Hash       cmdHash       `command:"hash" description:"Compute the vote hash for a cast vote"`
	Tally      cmdTally      `command:"tally" description:"Tally an election from a vote bundle"`
	CommitTree cmdCommitTree `command:"committree" description:"Commit the merkle tree for a closed election"`
	Prove      cmdProve      `command:"prove" description:"Generate an inclusion proof for a vote hash"`
	SelfCheck  cmdSelfCheck  `command:"selfcheck" description:"Verify the integrity of a committed tree"`
}
