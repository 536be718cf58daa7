// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// stateEncoding writes Core Deterministic CBOR (RFC 8949 §4.2) with
// timestamps as RFC 3339 text carrying nanoseconds and the zone
// offset. Integer-second timestamps would make a restored SavedAt
// differ from the one written.
var stateEncoding = mustEncMode(func() cbor.EncOptions {
	options := cbor.CoreDetEncOptions()
	options.Time = cbor.TimeRFC3339Nano
	return options
}())

// stateDecoding accepts any well-formed CBOR and ignores unknown
// fields, so snapshots from a newer version still load. Untyped maps
// decode as map[string]any rather than map[interface{}]interface{}.
var stateDecoding = mustDecMode(cbor.DecOptions{
	DefaultMapType: reflect.TypeOf(map[string]any(nil)),
})

func mustEncMode(options cbor.EncOptions) cbor.EncMode {
	mode, err := options.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	return mode
}

func mustDecMode(options cbor.DecOptions) cbor.DecMode {
	mode, err := options.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
	return mode
}

// Marshal encodes v deterministically: equal values always produce
// equal bytes.
func Marshal(v any) ([]byte, error) {
	return stateEncoding.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return stateDecoding.Unmarshal(data, v)
}

// Diagnose renders data in CBOR diagnostic notation (RFC 8949 §8), for
// the demo's --dump-state flag.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
