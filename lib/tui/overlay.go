// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// sgrReset clears all attributes so neither side of a splice bleeds
// its styling into the other.
const sgrReset = "\x1b[0m"

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). Truncation is ANSI-aware
// so escape sequences in the view survive on both sides of the overlay.
// Overlay lines falling outside the view are dropped; a view line
// shorter than anchorX is padded with spaces first.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}
	if anchorX < 0 {
		anchorX = 0
	}

	viewLines := strings.Split(view, "\n")
	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}

		line := viewLines[row]
		lineWidth := ansi.StringWidth(line)
		overlayWidth := ansi.StringWidth(overlayLine)

		var builder strings.Builder
		if anchorX > 0 {
			builder.WriteString(ansi.Truncate(line, anchorX, ""))
			if lineWidth < anchorX {
				builder.WriteString(strings.Repeat(" ", anchorX-lineWidth))
			}
		}
		builder.WriteString(sgrReset)
		builder.WriteString(overlayLine)
		builder.WriteString(sgrReset)

		if suffixStart := anchorX + overlayWidth; suffixStart < lineWidth {
			builder.WriteString(ansi.TruncateLeft(line, suffixStart, ""))
		}
		viewLines[row] = builder.String()
	}
	return strings.Join(viewLines, "\n")
}

// PadOverlayLine surrounds styled content with one column of padding
// on each side and fills to innerWidth, applying the background style
// to the padding so the overlay reads as a solid block.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := innerWidth - ansi.StringWidth(styledContent)
	if rightPad < 0 {
		styledContent = ansi.Truncate(styledContent, innerWidth, "")
		rightPad = 0
	}
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}

// CenterAnchor returns the top-left position that centres a block of
// the given size on a screen, clamped to the screen origin.
func CenterAnchor(screenWidth, screenHeight, blockWidth, blockHeight int) (x, y int) {
	x = (screenWidth - blockWidth) / 2
	y = (screenHeight - blockHeight) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
