// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tree

// Node is one element of a forest. ID must be unique across the whole
// forest: the collapsed set and selection tracking are keyed by it.
type Node[T any] struct {
	ID       string
	Data     T
	Children []Node[T]
}

// NewNode builds a node with the given children.
func NewNode[T any](id string, data T, children ...Node[T]) Node[T] {
	return Node[T]{ID: id, Data: data, Children: children}
}

// HasChildren reports whether the node has at least one child.
func (node *Node[T]) HasChildren() bool {
	return len(node.Children) > 0
}

// Count returns the total number of nodes in the forest.
func Count[T any](nodes []Node[T]) int {
	total := 0
	for index := range nodes {
		total += 1 + Count(nodes[index].Children)
	}
	return total
}

// Find returns a pointer to the node with the given ID, searching in
// pre-order. Returns nil when no node matches.
func Find[T any](nodes []Node[T], id string) *Node[T] {
	for index := range nodes {
		if nodes[index].ID == id {
			return &nodes[index]
		}
		if found := Find(nodes[index].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls visit for every node in pre-order with its depth.
// Returning false from visit skips that node's children.
func Walk[T any](nodes []Node[T], visit func(node *Node[T], depth int) bool) {
	walk(nodes, 0, visit)
}

func walk[T any](nodes []Node[T], depth int, visit func(node *Node[T], depth int) bool) {
	for index := range nodes {
		if visit(&nodes[index], depth) {
			walk(nodes[index].Children, depth+1, visit)
		}
	}
}

// Path returns the IDs from the root down to the node with the given
// ID, inclusive. Returns nil when no node matches.
func Path[T any](nodes []Node[T], id string) []string {
	for index := range nodes {
		if nodes[index].ID == id {
			return []string{id}
		}
		if below := Path(nodes[index].Children, id); below != nil {
			return append([]string{nodes[index].ID}, below...)
		}
	}
	return nil
}
