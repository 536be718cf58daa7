// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration used
// for on-disk state.
//
// Configuration and tree files are human-edited and stay YAML or JSONC
// (see lib/config). State the program writes for itself, such as the
// session snapshots in lib/session, is CBOR: compact, typed, and
// tolerant of fields added by later versions.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes, so rewriting an
// unchanged snapshot leaves the file byte-for-byte identical.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Persisted types use `cbor` struct tags. Decoding skips fields the
// target type does not know, and [Diagnose] renders stored bytes for
// inspection.
package codec
