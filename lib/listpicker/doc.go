// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package listpicker is a bubbletea sub-model for choosing one item
// from a flat list, with an optional fuzzy filter.
//
// The visible rows are the items themselves, or the items that match
// the filter ordered by fzf score. The cursor indexes the visible rows
// and a [viewport.Window] keeps it on screen; [Model.Selected] maps it
// back to the item and its index in the unfiltered list.
package listpicker
