// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/campusgov/scrutineer/version"
)

// cmdVersion prints the application version.
type cmdVersion struct{}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdVersion) Execute(args []string) error {
	log.Infof("%v %v", appName, version.String())
	return nil
}
