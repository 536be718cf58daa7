// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strconv"
	"sync/atomic"
)

var viewCounter atomic.Uint64

// UniqueID returns "prefix:N" with N increasing across the test
// binary, shaped like the demo's view keys ("tree:sample"). Tests that
// share a session store use it to keep their snapshots apart.
//
//	view := testutil.UniqueID("tree")  // "tree:1", "tree:2", ...
func UniqueID(prefix string) string {
	return prefix + ":" + strconv.FormatUint(viewCounter.Add(1), 10)
}
