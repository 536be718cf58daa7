// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package treeview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// Style holds the glyphs and colours used to draw each row.
type Style struct {
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Connector lipgloss.Style
	Icon      lipgloss.Style

	CollapsedIcon string
	ExpandedIcon  string

	// Connector glyphs. Branch and Last prefix a node at depth > 0;
	// Vertical and Space continue the column of each ancestor
	// depending on whether that ancestor was the last of its siblings.
	Branch   string
	Last     string
	Vertical string
	Space    string

	CursorSelected string
	CursorNormal   string
}

// DefaultStyle draws box connectors between parents and children.
func DefaultStyle(theme tui.Theme) Style {
	return Style{
		Selected: lipgloss.NewStyle().
			Foreground(theme.FocusAccent).
			Bold(true),
		Normal:    lipgloss.NewStyle().Foreground(theme.NormalText),
		Connector: lipgloss.NewStyle().Foreground(theme.BranchForeground),
		Icon:      lipgloss.NewStyle().Foreground(theme.DirectoryForeground),

		CollapsedIcon: "▶ ",
		ExpandedIcon:  "▼ ",

		Branch:   "├── ",
		Last:     "└── ",
		Vertical: "│   ",
		Space:    "    ",

		CursorSelected: "> ",
		CursorNormal:   "  ",
	}
}

// MinimalStyle indents by depth without drawing connectors.
func MinimalStyle(theme tui.Theme) Style {
	style := DefaultStyle(theme)
	style.Branch = "  "
	style.Last = "  "
	style.Vertical = "  "
	style.Space = "  "
	return style
}

// StyleByName resolves a configured style name. Unknown names fall
// back to [DefaultStyle].
func StyleByName(name string, theme tui.Theme) Style {
	if name == "minimal" {
		return MinimalStyle(theme)
	}
	return DefaultStyle(theme)
}
