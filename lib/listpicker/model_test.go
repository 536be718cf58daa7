// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package listpicker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

func fruits() []string {
	return []string{"apple", "banana", "cherry", "date", "elderberry", "fig", "grape"}
}

func testPicker(height int) Model[string] {
	model := New(fruits(), func(item string, _ int, _ bool) string { return item })
	model.SetShowHelp(false)
	model.SetSize(30, height)
	model.Focus()
	return model
}

func send(model Model[string], message tea.Msg) (Model[string], tea.Msg) {
	updated, cmd := model.Update(message)
	if cmd == nil {
		return updated, nil
	}
	return updated, cmd()
}

func typeText(model Model[string], text string) Model[string] {
	for _, character := range text {
		model, _ = send(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
	return model
}

func selectedItem(t *testing.T, model Model[string]) string {
	t.Helper()
	item, _, ok := model.Selected()
	if !ok {
		t.Fatal("expected a selected item")
	}
	return item
}

func viewLines(model Model[string]) []string {
	lines := strings.Split(tui.StripANSI(model.View()), "\n")
	for index := range lines {
		lines[index] = strings.TrimRight(lines[index], " ")
	}
	return lines
}

func TestNavigationAndScroll(t *testing.T) {
	model := testPicker(3)

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyUp})
	if selectedItem(t, model) != "apple" {
		t.Errorf("expected up at the top to stay on apple, got %s", selectedItem(t, model))
	}

	for range 4 {
		model, _ = send(model, tea.KeyMsg{Type: tea.KeyDown})
	}
	window := model.Window()
	if window.Cursor != 4 || window.Scroll != 2 {
		t.Errorf("expected cursor 4 scroll 2, got cursor %d scroll %d", window.Cursor, window.Scroll)
	}

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyEnd})
	if selectedItem(t, model) != "grape" {
		t.Errorf("expected end to select grape, got %s", selectedItem(t, model))
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyDown})
	if selectedItem(t, model) != "grape" {
		t.Errorf("expected down at the bottom to stay on grape, got %s", selectedItem(t, model))
	}
}

func TestPickEmitsMessage(t *testing.T) {
	model := testPicker(10)
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyDown})
	_, message := send(model, tea.KeyMsg{Type: tea.KeyEnter})

	picked, ok := message.(PickedMsg[string])
	if !ok {
		t.Fatalf("expected PickedMsg, got %#v", message)
	}
	if picked.Index != 1 || picked.Item != "banana" {
		t.Errorf("expected banana at 1, got %s at %d", picked.Item, picked.Index)
	}
}

func TestNilRenderFormatsItems(t *testing.T) {
	model := New([]int{3, 14, 159}, nil)
	model.SetShowHelp(false)
	model.SetSize(20, 5)

	if view := tui.StripANSI(model.View()); !strings.Contains(view, "159") {
		t.Errorf("expected items formatted with %%v, got %q", view)
	}
	model.SetFilter("14")
	if visible := model.Visible(); len(visible) != 1 || visible[0].Item != 14 {
		t.Errorf("expected the filter to match 14, got %+v", visible)
	}
}

func TestEmptyListShowsPlaceholder(t *testing.T) {
	model := New[string](nil, func(item string, _ int, _ bool) string { return item })
	model.SetShowHelp(false)
	model.SetSize(20, 3)
	model.Focus()

	_, message := send(model, tea.KeyMsg{Type: tea.KeyEnter})
	if message != nil {
		t.Errorf("expected no pick on an empty list, got %#v", message)
	}
	if lines := viewLines(model); lines[0] != "No items" {
		t.Errorf("expected placeholder, got %q", lines[0])
	}
}

func TestSetItemsClampsCursor(t *testing.T) {
	model := testPicker(10)
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyEnd})
	model.SetItems([]string{"one", "two"})
	if selectedItem(t, model) != "two" {
		t.Errorf("expected cursor clamped to two, got %s", selectedItem(t, model))
	}

	model.SetItems(nil)
	if _, _, ok := model.Selected(); ok {
		t.Error("expected no selection after emptying the list")
	}
}

func TestFilterRanksAndMapsIndices(t *testing.T) {
	model := testPicker(10)

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !model.Filtering() {
		t.Fatal("expected / to activate the filter")
	}
	model = typeText(model, "rr")

	visible := model.Visible()
	if len(visible) != 2 {
		t.Fatalf("expected cherry and elderberry, got %d rows", len(visible))
	}
	for _, row := range visible {
		if !strings.Contains(row.Item, "rr") {
			t.Errorf("unexpected match %q", row.Item)
		}
	}

	// Navigation keys typed into the filter are query text, not moves.
	if model.Filter() != "rr" {
		t.Errorf("expected query rr, got %q", model.Filter())
	}

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyEnter})
	if model.Filtering() {
		t.Error("expected enter to leave filter editing")
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyEnd})
	_, message := send(model, tea.KeyMsg{Type: tea.KeyEnter})
	picked, ok := message.(PickedMsg[string])
	if !ok {
		t.Fatalf("expected PickedMsg, got %#v", message)
	}
	if fruits()[picked.Index] != picked.Item {
		t.Errorf("expected index %d to map back to %s", picked.Index, picked.Item)
	}
}

func TestFilterNoMatchesAndClear(t *testing.T) {
	model := testPicker(10)
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model = typeText(model, "xyz")

	if len(model.Visible()) != 0 {
		t.Errorf("expected no matches, got %d", len(model.Visible()))
	}
	lines := viewLines(model)
	if lines[1] != "No matches" {
		t.Errorf("expected No matches under the filter bar, got %q", lines)
	}

	model, _ = send(model, tea.KeyMsg{Type: tea.KeyEsc})
	if model.Filter() != "" || model.Filtering() {
		t.Error("expected esc to discard the filter")
	}
	if len(model.Visible()) != len(fruits()) {
		t.Errorf("expected all items after clearing, got %d", len(model.Visible()))
	}
}

func TestFilterBackspace(t *testing.T) {
	model := testPicker(10)
	model.SetFilter("grx")
	if len(model.Visible()) != 0 {
		t.Fatalf("expected no match for grx, got %d", len(model.Visible()))
	}
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model, _ = send(model, tea.KeyMsg{Type: tea.KeyBackspace})
	if model.Filter() != "gr" {
		t.Errorf("expected gr after backspace, got %q", model.Filter())
	}
	if selectedItem(t, model) != "grape" {
		t.Errorf("expected the best match grape selected, got %s", selectedItem(t, model))
	}
}

func TestStyles(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		selected string
		normal   string
	}{
		{"arrow", ArrowStyle(tui.DefaultTheme), "▶ apple", "  banana"},
		{"bracket", BracketStyle(tui.DefaultTheme), "> apple", "  banana"},
		{"checkbox", CheckboxStyle(tui.DefaultTheme), "[x] apple", "[ ] banana"},
	}
	for _, test := range tests {
		model := testPicker(3)
		model.SetStyle(test.style)
		lines := viewLines(model)
		if lines[0] != test.selected {
			t.Errorf("%s: expected %q, got %q", test.name, test.selected, lines[0])
		}
		if lines[1] != test.normal {
			t.Errorf("%s: expected %q, got %q", test.name, test.normal, lines[1])
		}
	}
}

func TestTitleAndFooterLayout(t *testing.T) {
	model := New(fruits(), func(item string, _ int, _ bool) string { return item })
	model.SetTitle("Fruit")
	model.SetSize(40, 8)

	// 8 rows: title, blank, 4 items, blank, key hints.
	if model.Window().Height != 4 {
		t.Errorf("expected 4 item rows, got %d", model.Window().Height)
	}
	lines := viewLines(model)
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Fruit" {
		t.Errorf("expected title, got %q", lines[0])
	}
	if lines[2] != "▶ apple" {
		t.Errorf("expected first item on line 2, got %q", lines[2])
	}
	if !strings.Contains(lines[7], "select") {
		t.Errorf("expected key hints in the footer, got %q", lines[7])
	}
}

func TestBorderedView(t *testing.T) {
	model := testPicker(5)
	style := ArrowStyle(tui.DefaultTheme)
	style.Bordered = true
	model.SetStyle(style)

	if model.Window().Height != 3 {
		t.Errorf("expected 3 item rows inside the border, got %d", model.Window().Height)
	}
	lines := viewLines(model)
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "╭") || !strings.HasPrefix(lines[4], "╰") {
		t.Errorf("expected rounded border, got %q", lines)
	}
}

func TestMouseClickSelectsThenPicks(t *testing.T) {
	model := testPicker(5)
	click := tea.MouseMsg{X: 3, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}

	model, message := send(model, click)
	if message != nil {
		t.Errorf("expected first click to only select, got %#v", message)
	}
	if selectedItem(t, model) != "cherry" {
		t.Fatalf("expected cherry, got %s", selectedItem(t, model))
	}
	_, message = send(model, click)
	if picked, ok := message.(PickedMsg[string]); !ok || picked.Item != "cherry" {
		t.Errorf("expected second click to pick cherry, got %#v", message)
	}

	model, _ = send(model, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if selectedItem(t, model) != "date" {
		t.Errorf("expected wheel down to select date, got %s", selectedItem(t, model))
	}
}
