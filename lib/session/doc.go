// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists per-view UI state between runs: the
// selected row, collapsed tree nodes, and view toggles.
//
// A [Store] keeps one CBOR file per view in a state directory. Files
// are named by the keyed BLAKE3 digest of the view key and written
// atomically (temporary file, fsync, rename). Encoding goes through
// lib/codec, so the same snapshot always produces the same bytes.
//
// Snapshots carry a format version; a snapshot from another version
// loads as "not found" rather than an error, so an upgraded program
// starts from defaults instead of refusing to start.
package session
