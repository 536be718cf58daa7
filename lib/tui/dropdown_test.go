// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func sampleOptions(count int) []DropdownOption {
	options := make([]DropdownOption, count)
	for index := range options {
		label := string(rune('a'+index)) + "-option"
		options[index] = DropdownOption{Label: label, Value: label}
	}
	return options
}

func TestDropdownSaturates(t *testing.T) {
	dropdown := NewDropdownOverlay(sampleOptions(3), -1, 0)
	dropdown.MoveUp()
	if dropdown.Highlighted() != 0 {
		t.Errorf("expected MoveUp at top to stay at 0, got %d", dropdown.Highlighted())
	}
	for range 5 {
		dropdown.MoveDown()
	}
	if dropdown.Highlighted() != 2 {
		t.Errorf("expected MoveDown to stop at 2, got %d", dropdown.Highlighted())
	}
}

func TestDropdownStartsOnSelection(t *testing.T) {
	dropdown := NewDropdownOverlay(sampleOptions(20), 15, 5)
	if dropdown.Highlighted() != 15 {
		t.Errorf("expected highlight on the selection, got %d", dropdown.Highlighted())
	}
	if dropdown.Height() != 5 {
		t.Errorf("expected 5 visible rows, got %d", dropdown.Height())
	}
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != 5 {
		t.Fatalf("expected 5 rendered lines, got %d", len(lines))
	}
	last := ansi.Strip(lines[len(lines)-1])
	if !strings.Contains(last, "✓ p-option") {
		t.Errorf("expected selected option marked on the last visible line, got %q", last)
	}
	width := dropdown.Width()
	for index, line := range lines {
		if got := ansi.StringWidth(line); got != width {
			t.Errorf("line %d: expected width %d, got %d", index, width, got)
		}
	}
}

func TestDropdownOptionAt(t *testing.T) {
	dropdown := NewDropdownOverlay(sampleOptions(4), -1, 8)
	dropdown.AnchorX, dropdown.AnchorY = 10, 3

	if index, ok := dropdown.OptionAt(12, 5); !ok || index != 2 {
		t.Errorf("expected option 2, got %d (ok=%v)", index, ok)
	}
	if _, ok := dropdown.OptionAt(12, 7); ok {
		t.Error("expected click below the overlay to miss")
	}
	if _, ok := dropdown.OptionAt(9, 4); ok {
		t.Error("expected click left of the overlay to miss")
	}
}

func TestDropdownEmpty(t *testing.T) {
	dropdown := NewDropdownOverlay(nil, 3, 8)
	if _, ok := dropdown.HighlightedOption(); ok {
		t.Error("expected no highlighted option")
	}
	if dropdown.Selected != -1 {
		t.Errorf("expected out-of-range selection reset to -1, got %d", dropdown.Selected)
	}
	if len(dropdown.Render(DefaultTheme)) != 0 {
		t.Error("expected no rendered lines")
	}
}
