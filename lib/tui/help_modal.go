// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tuikit/lib/viewport"
)

// Help modal chrome: 2 columns of border plus 2 of padding, and 2
// lines of border plus a title and a footer line.
const (
	helpModalChromeWidth  = 4
	helpModalChromeHeight = 4
	helpModalMinInner     = 20
	helpModalMaxInner     = 76
	helpModalMargin       = 2
)

// HelpModal is a centred, scrollable overlay listing key bindings
// followed by free-form markdown help text.
type HelpModal struct {
	Title string

	theme    Theme
	bindings [][]key.Binding
	body     string

	pager     viewport.Pager
	lines     []string
	layoutFor int // Inner width lines were rendered for.
}

// NewHelpModal creates a modal. Each binding group renders as its own
// block; disabled bindings are skipped.
func NewHelpModal(title string, theme Theme, bindings [][]key.Binding, body string) HelpModal {
	return HelpModal{
		Title:    title,
		theme:    theme,
		bindings: bindings,
		body:     body,
	}
}

// Update scrolls the modal. Returns false when the key dismisses it
// (esc, q or ?).
func (modal *HelpModal) Update(message tea.KeyMsg) bool {
	switch message.String() {
	case "esc", "q", "?":
		return false
	case "up", "k":
		modal.pager.LineUp()
	case "down", "j":
		modal.pager.LineDown()
	case "pgup", "b":
		modal.pager.PageUp()
	case "pgdown", "f", " ":
		modal.pager.PageDown()
	case "home", "g":
		modal.pager.Top()
	case "end", "G":
		modal.pager.Bottom()
	}
	return true
}

// Scroll moves the modal content by delta lines (mouse wheel).
func (modal *HelpModal) Scroll(delta int) {
	for ; delta > 0; delta-- {
		modal.pager.LineDown()
	}
	for ; delta < 0; delta++ {
		modal.pager.LineUp()
	}
}

// layout renders the content for the given inner width. Rendering is
// cached per width since markdown rendering is not free.
func (modal *HelpModal) layout(innerWidth int) {
	if modal.layoutFor == innerWidth && modal.lines != nil {
		return
	}
	modal.layoutFor = innerWidth

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(modal.theme.FocusAccent)
	descriptionStyle := lipgloss.NewStyle().Foreground(modal.theme.NormalText)

	keyWidth := 0
	for _, group := range modal.bindings {
		for _, binding := range group {
			if width := ansi.StringWidth(binding.Help().Key); width > keyWidth {
				keyWidth = width
			}
		}
	}

	var lines []string
	for _, group := range modal.bindings {
		emitted := false
		for _, binding := range group {
			if !binding.Enabled() {
				continue
			}
			help := binding.Help()
			lines = append(lines, keyStyle.Render(PadToWidth(help.Key, keyWidth))+"  "+descriptionStyle.Render(help.Desc))
			emitted = true
		}
		if emitted {
			lines = append(lines, "")
		}
	}
	if body := RenderMarkdown(modal.body, modal.theme, innerWidth); body != "" {
		lines = append(lines, strings.Split(body, "\n")...)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	modal.lines = lines
	modal.pager.SetTotal(len(lines))
}

// Render produces the modal lines and the anchor that centres them on
// a screen of the given size, ready for [SpliceOverlay].
func (modal *HelpModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth := screenWidth - helpModalMargin*2 - helpModalChromeWidth
	innerWidth = min(max(innerWidth, helpModalMinInner), helpModalMaxInner)
	modal.layout(innerWidth)

	innerHeight := screenHeight - helpModalMargin*2 - helpModalChromeHeight
	innerHeight = max(min(innerHeight, len(modal.lines)), 1)
	modal.pager.Height = innerHeight
	modal.pager.Total = len(modal.lines)
	if modal.pager.Offset > len(modal.lines)-innerHeight {
		modal.pager.Bottom()
	}

	background := lipgloss.NewStyle().Background(modal.theme.TooltipBackground)
	title := lipgloss.NewStyle().Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.TooltipBackground).
		Render(modal.Title)
	footer := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.TooltipBackground).
		Render("↑/↓ scroll  esc close")

	body := make([]string, 0, innerHeight+2)
	body = append(body, fillLine(title, innerWidth, background))
	start, end := modal.pager.Range()
	for index := start; index < end; index++ {
		body = append(body, fillLine(modal.lines[index], innerWidth, background))
	}
	for len(body) < innerHeight+1 {
		body = append(body, fillLine("", innerWidth, background))
	}
	body = append(body, fillLine(footer, innerWidth, background))

	rendered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		BorderBackground(modal.theme.TooltipBackground).
		Background(modal.theme.TooltipBackground).
		Padding(0, 1).
		Render(strings.Join(body, "\n"))

	lines := strings.Split(rendered, "\n")
	anchorX, anchorY := CenterAnchor(screenWidth, screenHeight, ansi.StringWidth(lines[0]), len(lines))
	return lines, anchorX, anchorY
}

// fillLine truncates or pads a styled line to exactly width columns,
// painting the padding with the background style.
func fillLine(line string, width int, background lipgloss.Style) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth > width {
		return ansi.Truncate(line, width, "…")
	}
	return line + background.Render(strings.Repeat(" ", width-lineWidth))
}
