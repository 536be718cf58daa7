// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package treeview is a bubbletea sub-model that displays a forest of
// [tree.Node] values as an indented, collapsible list.
//
// The model owns the collapse state and a [viewport.Window]. Each
// render re-flattens the forest with [tree.Flatten], so the visible
// rows always reflect the current collapse set; the cursor is an index
// into those rows and the window keeps it on screen. Callers supply a
// [RenderFunc] that turns a node into its label; the model draws the
// cursor marker, connector glyphs, and expand icons around it.
//
// Mouse coordinates passed to [Model.Update] are relative to the
// widget's top-left corner. Parents that place the tree at an offset
// translate the event before forwarding it.
package treeview
