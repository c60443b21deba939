// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

// SaveJSON marshals the provided interface with indentation and writes it
// to the provided file path.
func SaveJSON(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	err = ioutil.WriteFile(path, b, 0600)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// LoadJSON reads the file at the provided path and unmarshals it into the
// provided interface.
func LoadJSON(path string, v interface{}) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	err = json.Unmarshal(b, v)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
