// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diffview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the diff viewer.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	NextHunk     key.Binding
	PreviousHunk key.Binding
	// Next and Previous walk search matches while a search has
	// results, and changed lines otherwise.
	Next     key.Binding
	Previous key.Binding

	ToggleMode  key.Binding
	Search      key.Binding
	SearchClear key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k", "scroll"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "scroll down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←", "scroll left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→", "scroll right"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	NextHunk: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]/[", "hunk"),
	),
	PreviousHunk: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous hunk"),
	),
	Next: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n/N", "change"),
	),
	Previous: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "previous change"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("v", "m"),
		key.WithHelp("v", "mode"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	SearchClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
}

// ShortHelp returns the bindings shown in the status bar.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.NextHunk, keys.Next, keys.ToggleMode, keys.Search}
}

// FullHelp returns every binding, grouped by column.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Left, keys.Right, keys.PageUp, keys.PageDown, keys.Top, keys.Bottom},
		{keys.NextHunk, keys.PreviousHunk, keys.Next, keys.Previous, keys.ToggleMode, keys.Search, keys.SearchClear},
	}
}
