// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tree

import "slices"

// CollapsedSet records which node IDs are collapsed. The zero value is
// an empty set ready for use. Collapse and Expand are idempotent.
type CollapsedSet struct {
	ids map[string]struct{}
}

// NewCollapsedSet creates a set holding the given IDs.
func NewCollapsedSet(ids ...string) *CollapsedSet {
	set := &CollapsedSet{}
	for _, id := range ids {
		set.Collapse(id)
	}
	return set
}

// IsCollapsed reports whether id is in the set. Safe on a nil set,
// which holds nothing.
func (set *CollapsedSet) IsCollapsed(id string) bool {
	if set == nil || set.ids == nil {
		return false
	}
	_, collapsed := set.ids[id]
	return collapsed
}

// Collapse adds id to the set.
func (set *CollapsedSet) Collapse(id string) {
	if set.ids == nil {
		set.ids = make(map[string]struct{})
	}
	set.ids[id] = struct{}{}
}

// Expand removes id from the set.
func (set *CollapsedSet) Expand(id string) {
	delete(set.ids, id)
}

// Toggle flips the collapsed state of id and returns the new state
// (true when the node is now collapsed).
func (set *CollapsedSet) Toggle(id string) bool {
	if set.IsCollapsed(id) {
		set.Expand(id)
		return false
	}
	set.Collapse(id)
	return true
}

// Len returns the number of collapsed IDs.
func (set *CollapsedSet) Len() int {
	if set == nil {
		return 0
	}
	return len(set.ids)
}

// IDs returns the collapsed IDs in sorted order.
func (set *CollapsedSet) IDs() []string {
	if set == nil {
		return nil
	}
	ids := make([]string, 0, len(set.ids))
	for id := range set.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clear empties the set.
func (set *CollapsedSet) Clear() {
	clear(set.ids)
}

// CollapseAll collapses every node in the forest that has children.
// Leaves are never added: collapsing a leaf has no visible effect and
// would only bloat persisted state.
func CollapseAll[T any](set *CollapsedSet, nodes []Node[T]) {
	Walk(nodes, func(node *Node[T], depth int) bool {
		if node.HasChildren() {
			set.Collapse(node.ID)
		}
		return true
	})
}

// ExpandAll expands every node.
func ExpandAll(set *CollapsedSet) {
	set.Clear()
}
