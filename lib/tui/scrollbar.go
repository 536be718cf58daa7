// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	scrollbarThumb = "┃"
	scrollbarTrack = "│"
)

// ScrollbarThumb computes the thumb geometry for a track of height
// rows showing visible of total items starting at offset. The thumb is
// at least one row and spans the whole track when everything fits.
func ScrollbarThumb(height, total, visible, offset int) (start, size int) {
	if height <= 0 {
		return 0, 0
	}
	if total <= visible || total <= 0 {
		return 0, height
	}

	size = height * visible / total
	if size < 1 {
		size = 1
	}

	scrollable := total - visible
	travel := height - size
	if scrollable > 0 && travel > 0 {
		start = offset * travel / scrollable
	}
	if start+size > height {
		start = height - size
	}
	if start < 0 {
		start = 0
	}
	return start, size
}

// RenderScrollbar produces a single-column scrollbar of the given
// height. The thumb uses the focus accent when focused and the border
// colour otherwise.
func RenderScrollbar(theme Theme, height, total, visible, offset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.FocusAccent
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	start, size := ScrollbarThumb(height, total, visible, offset)
	lines := make([]string, height)
	for index := range lines {
		if index >= start && index < start+size {
			lines[index] = thumbStyle.Render(scrollbarThumb)
		} else {
			lines[index] = trackStyle.Render(scrollbarTrack)
		}
	}
	return strings.Join(lines, "\n")
}

// JoinScrollbar places a scrollbar to the right of a block of lines.
// The block is expected to be exactly height lines of equal width.
func JoinScrollbar(content string, theme Theme, height, total, visible, offset int, focused bool) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		content,
		RenderScrollbar(theme, height, total, visible, offset, focused),
	)
}
