// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func testBindings() [][]key.Binding {
	return [][]key.Binding{{
		key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "disabled"), key.WithDisabled()),
	}}
}

func TestHelpModalRendersBindingsAndBody(t *testing.T) {
	modal := NewHelpModal("Help", DefaultTheme, testBindings(), "Use **arrows** to move.")
	lines, anchorX, anchorY := modal.Render(100, 40)
	content := ansi.Strip(strings.Join(lines, "\n"))

	for _, fragment := range []string{"Help", "move up", "move down", "Use arrows to move."} {
		if !strings.Contains(content, fragment) {
			t.Errorf("expected %q in modal:\n%s", fragment, content)
		}
	}
	if strings.Contains(content, "disabled") {
		t.Error("expected disabled bindings to be hidden")
	}

	width := ansi.StringWidth(lines[0])
	for index, line := range lines {
		if got := ansi.StringWidth(line); got != width {
			t.Errorf("line %d: expected width %d, got %d", index, width, got)
		}
	}
	if anchorX != (100-width)/2 || anchorY != (40-len(lines))/2 {
		t.Errorf("expected centred anchor, got (%d, %d)", anchorX, anchorY)
	}
}

func TestHelpModalScrollsAndCloses(t *testing.T) {
	var body strings.Builder
	for index := range 60 {
		fmt.Fprintf(&body, "- item %d\n", index)
	}
	modal := NewHelpModal("Help", DefaultTheme, nil, body.String())
	modal.Render(80, 20)

	if !modal.Update(tea.KeyMsg{Type: tea.KeyEnd}) {
		t.Fatal("expected end to keep the modal open")
	}
	lines, _, _ := modal.Render(80, 20)
	if !strings.Contains(ansi.Strip(strings.Join(lines, "\n")), "item 59") {
		t.Error("expected the last item visible after scrolling to the end")
	}

	if modal.Update(tea.KeyMsg{Type: tea.KeyEsc}) {
		t.Error("expected esc to close the modal")
	}
}
