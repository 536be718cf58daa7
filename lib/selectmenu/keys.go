// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selectmenu

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the select box bindings. Open applies while closed;
// the rest apply while the dropdown is showing. Letters are left
// unbound in the open state so they reach type-ahead.
type KeyMap struct {
	Open     key.Binding
	Close    key.Binding
	Choose   key.Binding
	Clear    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Open: key.NewBinding(
		key.WithKeys("enter", " ", "down"),
		key.WithHelp("enter", "open"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Choose: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "choose"),
	),
	Clear: key.NewBinding(
		key.WithKeys("backspace", "delete"),
		key.WithHelp("del", "clear"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last"),
	),
}

// ShortHelp returns the bindings for the one-line help footer.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Open, keys.Choose, keys.Close, keys.Clear}
}

// FullHelp returns every binding, grouped for the help modal.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Open, keys.Choose, keys.Close, keys.Clear},
		{keys.Up, keys.Down, keys.PageUp, keys.PageDown, keys.Home, keys.End},
	}
}
