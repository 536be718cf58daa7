// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selectmenu

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// Style controls the closed field.
type Style struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Label       lipgloss.Style

	FocusedBorder   lipgloss.Color
	UnfocusedBorder lipgloss.Color
	DisabledBorder  lipgloss.Color

	// Indicator is drawn at the right edge of the field.
	Indicator string
}

// DefaultStyle returns the ▼ field style for theme.
func DefaultStyle(theme tui.Theme) Style {
	return Style{
		Text:            lipgloss.NewStyle().Foreground(theme.NormalText),
		Placeholder:     lipgloss.NewStyle().Foreground(theme.FaintText),
		Label:           lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		FocusedBorder:   theme.FocusAccent,
		UnfocusedBorder: theme.BorderColor,
		DisabledBorder:  theme.HelpText,
		Indicator:       "▼",
	}
}

// ArrowStyle is DefaultStyle with a chevron indicator.
func ArrowStyle(theme tui.Theme) Style {
	style := DefaultStyle(theme)
	style.Indicator = "⌄"
	return style
}
