// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileexplorer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the file explorer bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Open   key.Binding // Enter a directory or choose a file.
	Parent key.Binding

	Mark       key.Binding
	MarkAll    key.Binding
	MarkNone   key.Binding
	Hidden     key.Binding
	Search     key.Binding
	SearchExit key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑↓", "move"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "open"),
	),
	Parent: key.NewBinding(
		key.WithKeys("backspace", "h", "left"),
		key.WithHelp("bksp", "up"),
	),
	Mark: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "mark"),
	),
	MarkAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "mark all"),
	),
	MarkNone: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "mark none"),
	),
	Hidden: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "hidden"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	SearchExit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
}

// ShortHelp returns the bindings for the one-line help footer.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Open, keys.Parent, keys.Mark, keys.Search, keys.Hidden}
}

// FullHelp returns every binding, grouped for the help modal.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.PageUp, keys.PageDown, keys.Home, keys.End},
		{keys.Open, keys.Parent, keys.Hidden},
		{keys.Mark, keys.MarkAll, keys.MarkNone, keys.Search, keys.SearchExit},
	}
}
