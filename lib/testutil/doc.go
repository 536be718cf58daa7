// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for tuikit packages.
//
// [RequireReceive] and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. These are
// the only place in the test suite where real wall-clock timeouts are
// used: watcher and follower tests wait on real filesystem events, and
// a hung watcher must fail the test rather than stall it.
// [RunCmd] and [RequireMsg] apply the same guard to bubbletea commands
// that block until an event arrives.
//
// [WriteFile] and [Mkdir] build fixture trees under a test's temporary
// directory for the file explorer, log source, and session tests.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation, such as view keys that must not collide between
// subtests sharing a state directory.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package depends only on bubbletea, for the command helpers.
package testutil
