// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestSearchInputEditing(t *testing.T) {
	var input SearchInput
	for _, character := range "héllo" {
		input.HandleRune(character)
	}
	if input.Value() != "héllo" {
		t.Errorf("expected %q, got %q", "héllo", input.Value())
	}
	if !input.HandleBackspace() {
		t.Error("expected backspace to change the value")
	}
	if input.Value() != "héll" {
		t.Errorf("expected %q, got %q", "héll", input.Value())
	}

	input.Active = true
	input.Clear()
	if input.Value() != "" || input.Active {
		t.Error("expected Clear to empty and deactivate")
	}
	if input.HandleBackspace() {
		t.Error("expected backspace on empty input to report no change")
	}
}

func TestSearchInputView(t *testing.T) {
	input := SearchInput{Prompt: "/"}
	if view := input.View(DefaultTheme, 40); view != "" {
		t.Errorf("expected hidden input, got %q", view)
	}
	input.Active = true
	input.SetValue("err")
	view := ansi.Strip(input.View(DefaultTheme, 40))
	if !strings.Contains(view, "/err") {
		t.Errorf("expected prompt and query in view, got %q", view)
	}
	if width := ansi.StringWidth(view); width != 40 {
		t.Errorf("expected view padded to 40 columns, got %d", width)
	}
}

func TestFindMatchesCaseInsensitive(t *testing.T) {
	lines := []string{
		"Error: disk full",
		"all good",
		"another ERROR and an error",
	}
	matches := FindMatches(lines, "error")
	expected := []TextMatch{
		{Line: 0, Column: 0},
		{Line: 2, Column: 8},
		{Line: 2, Column: 21},
	}
	if !reflect.DeepEqual(matches, expected) {
		t.Errorf("expected %v, got %v", expected, matches)
	}
	if FindMatches(lines, "") != nil {
		t.Error("expected no matches for an empty query")
	}
}

func TestFindMatchesNonOverlapping(t *testing.T) {
	matches := FindMatches([]string{"aaaa"}, "aa")
	if len(matches) != 2 {
		t.Errorf("expected 2 non-overlapping matches, got %v", matches)
	}
}

func TestHighlightTextPreservesText(t *testing.T) {
	plain := lipgloss.NewStyle()
	result := HighlightText("Find the needle, NEEDLE", "needle", 9, plain, plain.Bold(true), plain.Underline(true))
	if got := ansi.Strip(result); got != "Find the needle, NEEDLE" {
		t.Errorf("expected text preserved, got %q", got)
	}
}

func TestSearchStateWraps(t *testing.T) {
	var search SearchState
	if _, ok := search.Next(); ok {
		t.Error("expected Next without matches to fail")
	}
	search.SetMatches([]TextMatch{{Line: 1}, {Line: 4}, {Line: 9}})

	if match, _ := search.Current(); match.Line != 1 {
		t.Errorf("expected first match on line 1, got %d", match.Line)
	}
	search.Next()
	search.Next()
	if match, _ := search.Next(); match.Line != 1 {
		t.Errorf("expected Next to wrap to line 1, got %d", match.Line)
	}
	if match, _ := search.Prev(); match.Line != 9 {
		t.Errorf("expected Prev to wrap to line 9, got %d", match.Line)
	}
	if search.CurrentColumnOn(9) != 0 || search.CurrentColumnOn(4) != -1 {
		t.Error("unexpected CurrentColumnOn result")
	}

	if !search.Select(1) || search.CurrentIndex() != 1 {
		t.Errorf("expected Select(1) to move to the second match, got %d", search.CurrentIndex())
	}
	if search.Select(3) {
		t.Error("expected Select past the end to fail")
	}

	search.Reset()
	if search.MatchCount() != 0 {
		t.Errorf("expected no matches after Reset, got %d", search.MatchCount())
	}
}
