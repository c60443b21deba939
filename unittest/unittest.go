// Copyright (c) 2024-2026 The Scrutineer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unittest provides helpers that are shared between the package unit
// tests.
package unittest

import (
	"reflect"

	"github.com/pkg/errors"
)

// TestGenericConstMap tests a map of a typed constant enum and verifies that
// the constant values are consecutive and that every value is represented in
// the human readable map. This function is for unit tests only.
func TestGenericConstMap(constsMap interface{}, lastConst uint64) error {
	if reflect.TypeOf(constsMap).Kind() != reflect.Map {
		return errors.Errorf("constsMap not a map: %T", constsMap)
	}
	val := reflect.ValueOf(constsMap)

	leftover := make(map[uint64]struct{}, len(val.MapKeys()))
	for i := uint64(0); i < uint64(len(val.MapKeys())); i++ {
		leftover[i] = struct{}{}
	}
	for _, mapKey := range val.MapKeys() {
		var key uint64
		switch mapKey.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
			reflect.Uint64:
			key = mapKey.Uint()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64:
			key = uint64(mapKey.Int())
		default:
			return errors.Errorf("unsupported key type: %v",
				mapKey.Kind())
		}
		delete(leftover, key)
	}
	if len(leftover) != 0 {
		return errors.Errorf("leftover length not 0: %v", leftover)
	}
	if len(val.MapKeys()) != int(lastConst) {
		return errors.Errorf("someone added a const without adding a "+
			"human readable description. Got %v, want %v",
			len(val.MapKeys()), lastConst)
	}

	return nil
}
