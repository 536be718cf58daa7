// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SearchInput is a single-line query editor for filter and search
// bars. The owning widget routes keystrokes to it while Active and
// reads Value afterwards.
type SearchInput struct {
	// Prompt is shown before the query, e.g. "/" or "filter: ".
	Prompt string

	// Active is true while the input has keyboard focus.
	Active bool

	query []rune
}

// Value returns the current query.
func (input *SearchInput) Value() string {
	return string(input.query)
}

// SetValue replaces the query.
func (input *SearchInput) SetValue(value string) {
	input.query = []rune(value)
}

// HandleRune appends a character. Returns true: the value changed.
func (input *SearchInput) HandleRune(character rune) bool {
	input.query = append(input.query, character)
	return true
}

// HandleBackspace removes the last character. Returns true if the
// value changed.
func (input *SearchInput) HandleBackspace() bool {
	if len(input.query) == 0 {
		return false
	}
	input.query = input.query[:len(input.query)-1]
	return true
}

// Clear empties the query and deactivates the input.
func (input *SearchInput) Clear() {
	input.query = nil
	input.Active = false
}

// View renders the input bar at the given width. While active it shows
// the prompt, query and a cursor; while inactive with a query it shows
// the query dimmed; otherwise it renders nothing.
func (input *SearchInput) View(theme Theme, width int) string {
	if !input.Active && len(input.query) == 0 {
		return ""
	}
	if input.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		line := lipgloss.NewStyle().Foreground(theme.NormalText).
			Render(" " + input.Prompt + string(input.query))
		return FitToWidth(line+cursor, width)
	}
	line := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render(" " + input.Prompt + string(input.query))
	return FitToWidth(line, width)
}

// TextMatch is one occurrence of a search query in a list of lines.
type TextMatch struct {
	Line   int // 0-based line index.
	Column int // Rune offset of the first matched character.
}

// FindMatches returns every case-insensitive, non-overlapping
// occurrence of query in lines, in reading order. ANSI escapes in the
// lines are ignored.
func FindMatches(lines []string, query string) []TextMatch {
	if query == "" {
		return nil
	}
	needle := []rune(strings.ToLower(query))
	var matches []TextMatch
	for lineIndex, line := range lines {
		haystack := []rune(strings.ToLower(ansi.Strip(line)))
		for _, column := range runeIndexAll(haystack, needle) {
			matches = append(matches, TextMatch{Line: lineIndex, Column: column})
		}
	}
	return matches
}

// runeIndexAll returns the start of every non-overlapping occurrence
// of needle in haystack.
func runeIndexAll(haystack, needle []rune) []int {
	if len(needle) == 0 {
		return nil
	}
	var starts []int
	limit := len(haystack) - len(needle)
	for index := 0; index <= limit; {
		matched := true
		for offset := range needle {
			if haystack[index+offset] != needle[offset] {
				matched = false
				break
			}
		}
		if matched {
			starts = append(starts, index)
			index += len(needle)
			continue
		}
		index++
	}
	return starts
}

// HighlightText styles plain text, painting case-insensitive
// occurrences of query with highlight and everything else with base.
// The occurrence starting at rune column current (if any) uses
// currentStyle instead.
func HighlightText(text, query string, current int, base, highlight, currentStyle lipgloss.Style) string {
	if query == "" {
		return base.Render(text)
	}
	runes := []rune(text)
	lowered := []rune(strings.ToLower(text))
	needle := []rune(strings.ToLower(query))
	if len(lowered) != len(runes) {
		// Case folding changed the rune count; positions would be
		// unreliable.
		return base.Render(text)
	}

	var builder strings.Builder
	position := 0
	for _, start := range runeIndexAll(lowered, needle) {
		if start > position {
			builder.WriteString(base.Render(string(runes[position:start])))
		}
		style := highlight
		if start == current {
			style = currentStyle
		}
		builder.WriteString(style.Render(string(runes[start : start+len(needle)])))
		position = start + len(needle)
	}
	if position < len(runes) {
		builder.WriteString(base.Render(string(runes[position:])))
	}
	return builder.String()
}

// SearchState walks a list of matches with wrap-around n/N navigation.
type SearchState struct {
	Input   SearchInput
	matches []TextMatch
	current int
}

// SetMatches replaces the matches and moves to the first one.
func (search *SearchState) SetMatches(matches []TextMatch) {
	search.matches = matches
	search.current = 0
}

// Matches returns all matches.
func (search *SearchState) Matches() []TextMatch {
	return search.matches
}

// MatchCount returns the number of matches.
func (search *SearchState) MatchCount() int {
	return len(search.matches)
}

// CurrentIndex returns the index of the current match.
func (search *SearchState) CurrentIndex() int {
	return search.current
}

// Current returns the current match. ok is false without matches.
func (search *SearchState) Current() (TextMatch, bool) {
	if len(search.matches) == 0 {
		return TextMatch{}, false
	}
	return search.matches[search.current], true
}

// Select makes the match at index current. Returns false when index
// is out of range.
func (search *SearchState) Select(index int) bool {
	if index < 0 || index >= len(search.matches) {
		return false
	}
	search.current = index
	return true
}

// Next advances to the following match, wrapping to the first.
func (search *SearchState) Next() (TextMatch, bool) {
	if len(search.matches) == 0 {
		return TextMatch{}, false
	}
	search.current = (search.current + 1) % len(search.matches)
	return search.matches[search.current], true
}

// Prev moves to the preceding match, wrapping to the last.
func (search *SearchState) Prev() (TextMatch, bool) {
	if len(search.matches) == 0 {
		return TextMatch{}, false
	}
	search.current--
	if search.current < 0 {
		search.current = len(search.matches) - 1
	}
	return search.matches[search.current], true
}

// Reset clears the query and the matches.
func (search *SearchState) Reset() {
	search.Input.Clear()
	search.matches = nil
	search.current = 0
}

// CurrentColumnOn returns the column of the current match when it is
// on line, or -1.
func (search *SearchState) CurrentColumnOn(line int) int {
	match, ok := search.Current()
	if !ok || match.Line != line {
		return -1
	}
	return match.Column
}
