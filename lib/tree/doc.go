// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tree flattens a forest of nodes into the rows a tree view
// displays, honouring a set of collapsed node IDs.
//
// The forest is owned by the caller; this package never mutates it.
// Flatten walks depth-first in pre-order and emits one [Row] per
// visible node. A node's children are visited only when its ID is not
// in the [CollapsedSet]. Rows carry the structural information a
// renderer needs to draw branch connectors (depth, whether the node is
// the last sibling, and the same for every ancestor), so rendering is
// a pure function of the row slice.
//
// Rows are recomputed from the forest on every render and never
// stored: any change to the forest or the collapsed set is reflected
// by flattening again.
package tree
