// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlay(t *testing.T) {
	view := "0123456789\nabcdefghij\nKLMNOPQRST"
	result := SpliceOverlay(view, []string{"XX", "YY"}, 3, 1)
	lines := strings.Split(ansi.Strip(result), "\n")

	expected := []string{"0123456789", "abcXXfghij", "KLMYYPQRST"}
	for index, want := range expected {
		if lines[index] != want {
			t.Errorf("line %d: expected %q, got %q", index, want, lines[index])
		}
	}
}

func TestSpliceOverlayClipsOutsideView(t *testing.T) {
	view := "aaaa\nbbbb"
	result := ansi.Strip(SpliceOverlay(view, []string{"1", "2", "3"}, 0, 1))
	if result != "aaaa\n1bbb" {
		t.Errorf("expected overlay rows past the view to be dropped, got %q", result)
	}
}

func TestSpliceOverlayPadsShortLines(t *testing.T) {
	result := ansi.Strip(SpliceOverlay("ab", []string{"ZZ"}, 5, 0))
	if result != "ab   ZZ" {
		t.Errorf("expected short line padded to the anchor, got %q", result)
	}
}

func TestSpliceOverlayPreservesStyledSuffix(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("0123456789")
	result := SpliceOverlay(styled, []string{"--"}, 2, 0)
	if got := ansi.Strip(result); got != "01--456789" {
		t.Errorf("expected %q, got %q", "01--456789", got)
	}
}

func TestPadOverlayLine(t *testing.T) {
	line := PadOverlayLine("abc", 6, lipgloss.NewStyle())
	if got := ansi.Strip(line); got != " abc    " {
		t.Errorf("expected %q, got %q", " abc    ", got)
	}
	if width := ansi.StringWidth(PadOverlayLine("abcdefgh", 4, lipgloss.NewStyle())); width != 6 {
		t.Errorf("expected overlong content truncated to width 6, got %d", width)
	}
}

func TestCenterAnchor(t *testing.T) {
	x, y := CenterAnchor(80, 24, 40, 10)
	if x != 20 || y != 7 {
		t.Errorf("expected (20, 7), got (%d, %d)", x, y)
	}
	x, y = CenterAnchor(10, 5, 40, 10)
	if x != 0 || y != 0 {
		t.Errorf("expected clamped (0, 0), got (%d, %d)", x, y)
	}
}
