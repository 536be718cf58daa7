// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package diffview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// Style holds the colours of the diff viewer.
type Style struct {
	Title        lipgloss.Style
	Added        lipgloss.Style
	Removed      lipgloss.Style
	Context      lipgloss.Style
	HunkHeader   lipgloss.Style
	LineNumber   lipgloss.Style
	Separator    lipgloss.Style
	Match        lipgloss.Style
	CurrentMatch lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style

	// SyntaxTheme names the chroma style used for code. Empty turns
	// syntax highlighting off.
	SyntaxTheme string
}

// DefaultStyle builds the diff viewer colours from a theme.
func DefaultStyle(theme tui.Theme) Style {
	return Style{
		Title: lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true),
		Added:   lipgloss.NewStyle().Foreground(theme.DiffAdded),
		Removed: lipgloss.NewStyle().Foreground(theme.DiffRemoved),
		Context: lipgloss.NewStyle().Foreground(theme.NormalText),
		HunkHeader: lipgloss.NewStyle().
			Foreground(theme.DiffHunk).
			Bold(true),
		LineNumber: lipgloss.NewStyle().Foreground(theme.FaintText),
		Separator:  lipgloss.NewStyle().Foreground(theme.BorderColor),
		Match: lipgloss.NewStyle().
			Background(theme.SearchHighlightBackground).
			Foreground(theme.SelectedForeground),
		CurrentMatch: lipgloss.NewStyle().
			Background(theme.SearchCurrentBackground).
			Foreground(theme.SelectedForeground).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.NormalText),
		StatusKey: lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.FocusAccent),
		SyntaxTheme: "monokai",
	}
}

// MonochromeStyle drops colour, marking changes with bold and faint
// text only.
func MonochromeStyle(theme tui.Theme) Style {
	style := DefaultStyle(theme)
	style.Added = lipgloss.NewStyle().Bold(true)
	style.Removed = lipgloss.NewStyle().Faint(true)
	style.Context = lipgloss.NewStyle()
	style.HunkHeader = lipgloss.NewStyle().Underline(true)
	style.SyntaxTheme = ""
	return style
}

// HighContrastStyle uses bright foregrounds over dark green and red
// backgrounds for additions and deletions.
func HighContrastStyle(theme tui.Theme) Style {
	style := DefaultStyle(theme)
	style.Added = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")).
		Background(lipgloss.Color("#003c00"))
	style.Removed = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Background(lipgloss.Color("#3c0000"))
	return style
}

// StyleByName resolves a configured style name: "default",
// "high-contrast" or "monochrome". Unknown names fall back to
// [DefaultStyle].
func StyleByName(name string, theme tui.Theme) Style {
	switch name {
	case "high-contrast":
		return HighContrastStyle(theme)
	case "monochrome":
		return MonochromeStyle(theme)
	default:
		return DefaultStyle(theme)
	}
}

// ForKind returns the style of a line kind.
func (style Style) ForKind(kind LineKind) lipgloss.Style {
	switch kind {
	case Addition:
		return style.Added
	case Deletion:
		return style.Removed
	default:
		return style.Context
	}
}
