// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"time"

	v1 "github.com/campusgov/scrutineer/api/v1"
	"github.com/campusgov/scrutineer/merkle"
	"github.com/campusgov/scrutineer/util"
	"github.com/campusgov/scrutineer/votehash"
	"github.com/decred/slog"
)

var (
	flagVerifyProof   = flag.Bool("proof", false, "Verify inclusion proof bundle")
	flagVerifyReceipt = flag.Bool("receipt", false, "Verify voter receipt bundle")
	flagKeyFile       = flag.String("keyfile", "", "Vote key file path (receipt verification only)")
	flagKeyPass       = flag.String("keypass", "", "Vote key passphrase (receipt verification only)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: ballotverify [flags] <bundle>\n")
	fmt.Fprintf(os.Stderr, " flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, " <bundle> - Path to the JSON bundle being "+
		"verified\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Proof verification needs nothing but the "+
		"bundle; anyone can run it against a published root. Receipt "+
		"verification recomputes the keyed vote hash and therefore "+
		"requires the vote key file and passphrase.\n")
}

// verifyProof verifies an inclusion proof bundle against the root it
// carries. This is the public verification path: no key, no database, no
// network.
func verifyProof(payload []byte) error {
	var pb v1.ProofBundle
	err := json.Unmarshal(payload, &pb)
	if err != nil {
		return fmt.Errorf("proof bundle JSON in bad format: %v", err)
	}

	if !merkle.VerifyProof(pb.Proof) {
		return fmt.Errorf("proof does NOT verify; the vote hash %v is "+
			"not part of the tree with root %v",
			pb.Proof.Leaf, pb.Proof.Root)
	}

	fmt.Println("Inclusion proof:")
	fmt.Printf("  Election : %s\n", pb.ElectionID)
	fmt.Printf("  Vote hash: %s\n", pb.Proof.Leaf)
	fmt.Printf("  Root     : %s\n", pb.Proof.Root)
	fmt.Printf("  Path len : %d\n\n", len(pb.Proof.SiblingPath))
	fmt.Println("Proof successfully verified")

	return nil
}

// verifyReceipt recomputes the vote hash from the vote contents in the
// receipt bundle and compares it to the vote hash from the voter's receipt.
func verifyReceipt(payload []byte, keyFile, keyPass string) error {
	var rb v1.ReceiptBundle
	err := json.Unmarshal(payload, &rb)
	if err != nil {
		return fmt.Errorf("receipt bundle JSON in bad format: %v", err)
	}

	if keyFile == "" || keyPass == "" {
		return fmt.Errorf("receipt verification requires -keyfile and " +
			"-keypass")
	}
	key, err := util.LoadVoteKey(slog.Disabled, keyFile, []byte(keyPass))
	if err != nil {
		return err
	}
	e, err := votehash.New(key[:])
	util.Zero(key[:])
	if err != nil {
		return err
	}
	defer e.Zero()

	cv := rb.Vote
	ok, err := e.Verify(rb.VoteHash, cv.ElectionID, cv.BallotID,
		cv.Payload, cv.VoterID, time.Unix(cv.Timestamp, 0))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("vote hash does NOT match the vote contents; "+
			"the vote for ballot %v has been altered", cv.BallotID)
	}

	fmt.Println("Voter receipt:")
	fmt.Printf("  Election : %s\n", cv.ElectionID)
	fmt.Printf("  Ballot   : %s\n", cv.BallotID)
	fmt.Printf("  Vote hash: %s\n\n", rb.VoteHash)
	fmt.Println("Receipt successfully verified")

	return nil
}

func _main() error {
	flag.Parse()
	args := flag.Args()

	// Validate flags and arguments
	switch {
	case len(args) != 1:
		usage()
		return fmt.Errorf("must provide json bundle path as input")
	case *flagVerifyProof && *flagVerifyReceipt:
		usage()
		return fmt.Errorf("must choose only one verification type")
	}

	// Read bundle payload
	file := args[0]
	payload, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	// Call verify method
	switch {
	case *flagVerifyProof:
		return verifyProof(payload)
	case *flagVerifyReceipt:
		return verifyReceipt(payload, *flagKeyFile, *flagKeyPass)
	default:
		// No flags used, read filename and try to call corresponding
		// verify method
		if strings.Contains(path.Base(file), "receipt") {
			return verifyReceipt(payload, *flagKeyFile, *flagKeyPass)
		}
		return verifyProof(payload)
	}
}

func main() {
	err := _main()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
