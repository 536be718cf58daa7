// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package diffview is a bubbletea sub-model for reading unified diffs.
//
// [Parse] turns `diff -u` / `git diff` output for one file into a
// [Diff] of hunks whose lines carry their old and new line numbers;
// [FromTexts] computes the same structure from two texts with
// go-difflib. The [Model] lays the hunks out as rows (one header row
// per hunk followed by its lines) in either a unified or a
// side-by-side layout, where each run of deletions is paired with the
// additions that replace it.
//
// Navigation mirrors the log viewer: a [viewport.Pager] for vertical
// scrolling, a [viewport.Horizontal] for long lines, and a
// case-insensitive search walked with n/N. Without search results n/N
// walk changed lines instead (wrapping), and ]/[ step between hunks
// (saturating at either end). Context lines are syntax highlighted
// with chroma using a lexer chosen from the new file name.
package diffview
