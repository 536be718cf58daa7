// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tree

// Row is one visible line of a flattened tree.
type Row[T any] struct {
	// Node points into the caller's forest.
	Node *Node[T]

	// Depth is 0 for roots.
	Depth int

	// IsLast is true when the node is the last of its siblings.
	IsLast bool

	// ParentIsLast holds, for each ancestor from the root down to the
	// direct parent, whether that ancestor was the last of its
	// siblings. len(ParentIsLast) == Depth. Renderers use it to choose
	// between a continuation bar and blank space in each indent column.
	ParentIsLast []bool
}

// ID returns the node's ID.
func (row Row[T]) ID() string {
	return row.Node.ID
}

// HasChildren reports whether the row's node has children, whether or
// not they are currently visible.
func (row Row[T]) HasChildren() bool {
	return row.Node.HasChildren()
}

// Flatten returns the visible rows of the forest in depth-first
// pre-order. Children of a node whose ID is in collapsed are skipped
// along with all their descendants. A nil set expands everything.
func Flatten[T any](nodes []Node[T], collapsed *CollapsedSet) []Row[T] {
	rows := make([]Row[T], 0, len(nodes))
	return flatten(rows, nodes, collapsed, 0, nil)
}

func flatten[T any](rows []Row[T], nodes []Node[T], collapsed *CollapsedSet, depth int, ancestors []bool) []Row[T] {
	for index := range nodes {
		node := &nodes[index]
		isLast := index == len(nodes)-1

		parentIsLast := make([]bool, len(ancestors))
		copy(parentIsLast, ancestors)

		rows = append(rows, Row[T]{
			Node:         node,
			Depth:        depth,
			IsLast:       isLast,
			ParentIsLast: parentIsLast,
		})

		if node.HasChildren() && !collapsed.IsCollapsed(node.ID) {
			rows = flatten(rows, node.Children, collapsed, depth+1, append(parentIsLast, isLast))
		}
	}
	return rows
}

// IndexOf returns the index of the row whose node has the given ID,
// or -1 when it is not visible.
func IndexOf[T any](rows []Row[T], id string) int {
	for index, row := range rows {
		if row.Node.ID == id {
			return index
		}
	}
	return -1
}

// ParentIndex returns the index of the row's parent: the nearest
// preceding row one level shallower. Returns -1 for roots and
// out-of-range indices.
func ParentIndex[T any](rows []Row[T], index int) int {
	if index <= 0 || index >= len(rows) {
		return -1
	}
	depth := rows[index].Depth
	if depth == 0 {
		return -1
	}
	for candidate := index - 1; candidate >= 0; candidate-- {
		if rows[candidate].Depth == depth-1 {
			return candidate
		}
	}
	return -1
}
