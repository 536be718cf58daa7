// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// CleanForDisplay prepares raw program output for a single terminal
// row: only the text after the last carriage return survives (that is
// what a terminal would show after progress-bar style rewrites), ANSI
// escapes are removed, and remaining control characters are dropped.
func CleanForDisplay(text string) string {
	if index := strings.LastIndexByte(text, '\r'); index >= 0 {
		text = text[index+1:]
	}
	text = ansi.Strip(text)
	return strings.Map(func(character rune) rune {
		if unicode.IsControl(character) {
			return -1
		}
		return character
	}, text)
}

// StripANSI removes ANSI escape sequences.
func StripANSI(text string) string {
	return ansi.Strip(text)
}

// DisplayWidth returns the number of terminal columns text occupies,
// ignoring escape sequences.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(ansi.Strip(text))
}

// TruncateToWidth cleans text for display and shortens it to at most
// maxWidth columns, marking the cut with "...".
func TruncateToWidth(text string, maxWidth int) string {
	clean := CleanForDisplay(text)
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(clean) <= maxWidth {
		return clean
	}
	return runewidth.Truncate(clean, maxWidth, "...")
}

// PadToWidth appends spaces until text occupies targetWidth columns.
// Wider text is returned unchanged.
func PadToWidth(text string, targetWidth int) string {
	width := DisplayWidth(text)
	if width >= targetWidth {
		return text
	}
	return text + strings.Repeat(" ", targetWidth-width)
}

// FitToWidth truncates styled text to width columns (ANSI-aware) and
// pads it with spaces to exactly width.
func FitToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) > width {
		text = ansi.Truncate(text, width, "")
	}
	return PadToWidth(text, width)
}

const (
	kilobyte = 1024
	megabyte = 1024 * kilobyte
	gigabyte = 1024 * megabyte
)

// FormatSize renders a byte count with a binary unit and one decimal:
// "512 B", "1.5 KB", "3.0 MB", "1.2 GB".
func FormatSize(bytes int64) string {
	switch {
	case bytes >= gigabyte:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gigabyte)
	case bytes >= megabyte:
		return fmt.Sprintf("%.1f MB", float64(bytes)/megabyte)
	case bytes >= kilobyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kilobyte)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
