// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logviewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// Style holds the colours of the log viewer.
type Style struct {
	Title        lipgloss.Style
	LineNumber   lipgloss.Style
	Content      lipgloss.Style
	Match        lipgloss.Style
	CurrentMatch lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style

	Error   lipgloss.Style
	Warn    lipgloss.Style
	Debug   lipgloss.Style
	Trace   lipgloss.Style
	Success lipgloss.Style
	Start   lipgloss.Style
}

// DefaultStyle builds the log viewer colours from a theme.
func DefaultStyle(theme tui.Theme) Style {
	return Style{
		Title: lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true),
		LineNumber: lipgloss.NewStyle().Foreground(theme.FaintText),
		Content:    lipgloss.NewStyle().Foreground(theme.NormalText),
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

		Error:   lipgloss.NewStyle().Foreground(theme.LevelError),
		Warn:    lipgloss.NewStyle().Foreground(theme.LevelWarn),
		Debug:   lipgloss.NewStyle().Foreground(theme.LevelDebug),
		Trace:   lipgloss.NewStyle().Foreground(theme.LevelTrace),
		Success: lipgloss.NewStyle().Foreground(theme.LevelSuccess),
		Start:   lipgloss.NewStyle().Foreground(theme.LevelStart),
	}
}

// ForLine picks the colour of a line from the keywords it contains.
// Checks run in priority order, so "[warn] retry failed" is an error.
func (style Style) ForLine(line string) lipgloss.Style {
	lower := strings.ToLower(line)
	switch {
	case containsAny(lower, "[error]", "error:", "failed"):
		return style.Error
	case containsAny(lower, "[warn]", "warning:"):
		return style.Warn
	case strings.Contains(lower, "[debug]"):
		return style.Debug
	case strings.Contains(lower, "[trace]"):
		return style.Trace
	case containsAny(lower, "✓", "success", "completed", "[ok]"):
		return style.Success
	case strings.Contains(lower, "✗"):
		return style.Error
	case containsAny(lower, "▶", "starting"):
		return style.Start
	}
	return style.Content
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
