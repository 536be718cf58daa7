// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package listpicker

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// Style holds the indicator glyphs and colours of the picker.
type Style struct {
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Indicator lipgloss.Style
	Empty     lipgloss.Style
	Border    lipgloss.Style

	// IndicatorOn prefixes the row under the cursor, IndicatorOff
	// every other row. Both should have the same display width.
	IndicatorOn  string
	IndicatorOff string

	// Bordered draws a rounded border around the picker.
	Bordered bool
}

// ArrowStyle marks the cursor row with a triangle.
func ArrowStyle(theme tui.Theme) Style {
	return Style{
		Title: lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(theme.FocusAccent).
			Bold(true),
		Normal:    lipgloss.NewStyle().Foreground(theme.NormalText),
		Indicator: lipgloss.NewStyle().Foreground(theme.FocusAccent),
		Empty:     lipgloss.NewStyle().Foreground(theme.FaintText),
		Border:    lipgloss.NewStyle().Foreground(theme.BorderColor),

		IndicatorOn:  "▶ ",
		IndicatorOff: "  ",
	}
}

// BracketStyle marks the cursor row with "> ".
func BracketStyle(theme tui.Theme) Style {
	style := ArrowStyle(theme)
	style.IndicatorOn = "> "
	return style
}

// CheckboxStyle draws a checkbox on every row, ticked on the cursor.
func CheckboxStyle(theme tui.Theme) Style {
	style := ArrowStyle(theme)
	style.IndicatorOn = "[x] "
	style.IndicatorOff = "[ ] "
	style.Selected = lipgloss.NewStyle().Foreground(theme.LevelSuccess)
	return style
}
