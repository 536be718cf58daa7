// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewport implements the cursor and scroll arithmetic shared
// by every list-shaped widget in tuikit: tree views, list pickers,
// select dropdowns, file explorers, log and diff viewers.
//
// Two shapes are provided. [Window] tracks a selection cursor inside a
// scrollable region and keeps the cursor visible by moving the scroll
// offset, never the cursor. [Pager] has no cursor: its offset is the
// first visible line, as in a pager or log viewer. [Horizontal] adds
// column scrolling to either.
//
// The free functions ([SelectNext], [SelectPrev], [EnsureVisible], ...)
// are the primitives both types are built from. They are total: empty
// lists and zero-height viewports produce neutral results instead of
// errors, so callers never need to guard against degenerate layouts.
//
// This package depends on no other tuikit packages.
package viewport
