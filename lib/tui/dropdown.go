// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tuikit/lib/viewport"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text.
	Value string // Value reported to the caller on selection.
}

// DefaultDropdownHeight is the number of options a dropdown shows
// before it scrolls.
const DefaultDropdownHeight = 8

// DropdownOverlay renders a floating option list anchored at a screen
// position. The highlight is a saturating cursor inside a
// [viewport.Window] so long option lists scroll instead of running off
// the screen.
type DropdownOverlay struct {
	Options []DropdownOption

	// Selected is the index of the committed choice, marked with a
	// check, or -1 for none.
	Selected int

	// Window tracks the highlighted option and the scroll offset.
	Window viewport.Window

	AnchorX int // Screen X of the overlay's top-left corner.
	AnchorY int // Screen Y of the overlay's top-left corner.
}

// NewDropdownOverlay creates an overlay showing at most maxVisible
// options (DefaultDropdownHeight when zero or less). The highlight
// starts on the selected option, or the first one when nothing is
// selected.
func NewDropdownOverlay(options []DropdownOption, selected, maxVisible int) DropdownOverlay {
	if maxVisible <= 0 {
		maxVisible = DefaultDropdownHeight
	}
	height := maxVisible
	if len(options) < height {
		height = len(options)
	}
	if selected < 0 || selected >= len(options) {
		selected = -1
	}
	dropdown := DropdownOverlay{
		Options:  options,
		Selected: selected,
		Window:   viewport.NewWindow(len(options), height),
	}
	if selected >= 0 {
		dropdown.Window.Select(selected)
	}
	return dropdown
}

// Highlighted returns the index of the highlighted option.
func (dropdown *DropdownOverlay) Highlighted() int {
	return dropdown.Window.Cursor
}

// MoveUp moves the highlight up one option, stopping at the first.
func (dropdown *DropdownOverlay) MoveUp() { dropdown.Window.Prev() }

// MoveDown moves the highlight down one option, stopping at the last.
func (dropdown *DropdownOverlay) MoveDown() { dropdown.Window.Next() }

// HighlightedOption returns the highlighted option. ok is false when
// there are no options.
func (dropdown *DropdownOverlay) HighlightedOption() (DropdownOption, bool) {
	if dropdown.Window.Empty() {
		return DropdownOption{}, false
	}
	return dropdown.Options[dropdown.Window.Cursor], true
}

// Width returns the rendered width in columns. Layout per line:
// padding, two-column marker, label, padding.
func (dropdown *DropdownOverlay) Width() int {
	widest := 0
	for _, option := range dropdown.Options {
		if width := ansi.StringWidth(option.Label); width > widest {
			widest = width
		}
	}
	return 1 + 2 + widest + 1
}

// Height returns the number of rendered lines.
func (dropdown *DropdownOverlay) Height() int {
	start, end := dropdown.Window.Range()
	return end - start
}

// Contains reports whether the screen coordinate falls inside the
// overlay.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	return Rect{X: dropdown.AnchorX, Y: dropdown.AnchorY, Width: dropdown.Width(), Height: dropdown.Height()}.Contains(x, y)
}

// OptionAt maps a screen coordinate to an option index.
func (dropdown *DropdownOverlay) OptionAt(x, y int) (int, bool) {
	if !dropdown.Contains(x, y) {
		return 0, false
	}
	return dropdown.Window.RowAt(y - dropdown.AnchorY)
}

// Render produces the overlay lines for [SpliceOverlay]. Every line
// has the same visible width and a solid background; the highlighted
// option uses the selection colours and the committed choice is
// marked with a check.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	innerWidth := dropdown.Width() - 2

	backgroundStyle := lipgloss.NewStyle().
		Foreground(theme.TooltipForeground).
		Background(theme.TooltipBackground)
	highlightStyle := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground)

	start, end := dropdown.Window.Range()
	lines := make([]string, 0, end-start)
	for index := start; index < end; index++ {
		marker := "  "
		if index == dropdown.Selected {
			marker = "✓ "
		}
		content := marker + dropdown.Options[index].Label
		if pad := innerWidth - ansi.StringWidth(content); pad > 0 {
			content += strings.Repeat(" ", pad)
		}

		style := backgroundStyle
		if index == dropdown.Window.Cursor {
			style = highlightStyle
		}
		lines = append(lines, style.Render(" "+content+" "))
	}
	return lines
}
