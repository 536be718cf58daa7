// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

// FocusManager tracks which of a set of registered elements has
// keyboard focus. Elements are kept in registration order; Next and
// Prev cycle through them and wrap at the ends. The zero value is an
// empty manager with nothing focused.
type FocusManager[T comparable] struct {
	elements []T
	current  int  // Index into elements; meaningful only when valid.
	valid    bool // False when nothing has focus.
}

// NewFocusManager creates a manager holding the given elements in
// order. The first element receives focus.
func NewFocusManager[T comparable](elements ...T) *FocusManager[T] {
	manager := &FocusManager[T]{}
	for _, element := range elements {
		manager.Register(element)
	}
	return manager
}

// Register appends an element. Duplicates are ignored. The first
// element registered into an unfocused, empty manager receives focus.
func (manager *FocusManager[T]) Register(element T) {
	for _, existing := range manager.elements {
		if existing == element {
			return
		}
	}
	manager.elements = append(manager.elements, element)
	if !manager.valid && len(manager.elements) == 1 {
		manager.current = 0
		manager.valid = true
	}
}

// Current returns the focused element. ok is false when nothing has
// focus.
func (manager *FocusManager[T]) Current() (element T, ok bool) {
	if !manager.valid {
		return element, false
	}
	return manager.elements[manager.current], true
}

// CurrentIndex returns the focused element's index, or -1.
func (manager *FocusManager[T]) CurrentIndex() int {
	if !manager.valid {
		return -1
	}
	return manager.current
}

// IsFocused reports whether element has focus.
func (manager *FocusManager[T]) IsFocused(element T) bool {
	current, ok := manager.Current()
	return ok && current == element
}

// HasFocus reports whether any element has focus.
func (manager *FocusManager[T]) HasFocus() bool {
	return manager.valid
}

// Next moves focus to the following element, wrapping to the first.
// With nothing focused, focuses the first element.
func (manager *FocusManager[T]) Next() {
	if len(manager.elements) == 0 {
		return
	}
	if !manager.valid {
		manager.current, manager.valid = 0, true
		return
	}
	manager.current = (manager.current + 1) % len(manager.elements)
}

// Prev moves focus to the preceding element, wrapping to the last.
// With nothing focused, focuses the first element.
func (manager *FocusManager[T]) Prev() {
	if len(manager.elements) == 0 {
		return
	}
	if !manager.valid {
		manager.current, manager.valid = 0, true
		return
	}
	if manager.current == 0 {
		manager.current = len(manager.elements) - 1
		return
	}
	manager.current--
}

// Set focuses element if it is registered.
func (manager *FocusManager[T]) Set(element T) bool {
	for index, existing := range manager.elements {
		if existing == element {
			manager.current, manager.valid = index, true
			return true
		}
	}
	return false
}

// SetIndex focuses the element at index if it is in range.
func (manager *FocusManager[T]) SetIndex(index int) bool {
	if index < 0 || index >= len(manager.elements) {
		return false
	}
	manager.current, manager.valid = index, true
	return true
}

// First focuses the first element.
func (manager *FocusManager[T]) First() {
	manager.SetIndex(0)
}

// Last focuses the last element.
func (manager *FocusManager[T]) Last() {
	manager.SetIndex(len(manager.elements) - 1)
}

// Unfocus clears focus without forgetting any element.
func (manager *FocusManager[T]) Unfocus() {
	manager.valid = false
	manager.current = 0
}

// Remove drops element. Focus stays on the same element when another
// one is removed; when the focused element itself is removed, focus
// moves to whichever element took its position, or to the new last
// element when it was last. Returns false if element was not
// registered.
func (manager *FocusManager[T]) Remove(element T) bool {
	removed := -1
	for index, existing := range manager.elements {
		if existing == element {
			removed = index
			break
		}
	}
	if removed < 0 {
		return false
	}
	manager.elements = append(manager.elements[:removed], manager.elements[removed+1:]...)

	switch {
	case len(manager.elements) == 0:
		manager.Unfocus()
	case !manager.valid:
	case manager.current > removed:
		manager.current--
	case manager.current >= len(manager.elements):
		manager.current = len(manager.elements) - 1
	}
	return true
}

// Clear forgets every element.
func (manager *FocusManager[T]) Clear() {
	manager.elements = nil
	manager.Unfocus()
}

// Len returns the number of registered elements.
func (manager *FocusManager[T]) Len() int {
	return len(manager.elements)
}

// Elements returns the registered elements in order. The slice must
// not be modified.
func (manager *FocusManager[T]) Elements() []T {
	return manager.elements
}
