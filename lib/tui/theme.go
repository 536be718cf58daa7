// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette shared by every widget. All colours
// are lipgloss ANSI 256-colour codes (or #rrggbb hex strings) for broad
// terminal compatibility.
type Theme struct {
	// Text colours.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// FocusAccent marks the focused widget: scrollbar thumb, active
	// tab, cursor marker.
	FocusAccent lipgloss.Color

	// Tree and file explorer accents.
	BranchForeground    lipgloss.Color // Connector glyphs (├── └── │).
	DirectoryForeground lipgloss.Color

	// Log level colours, chosen by keyword match on each line.
	LevelError   lipgloss.Color
	LevelWarn    lipgloss.Color
	LevelDebug   lipgloss.Color
	LevelTrace   lipgloss.Color
	LevelSuccess lipgloss.Color
	LevelStart   lipgloss.Color

	// Diff colours.
	DiffAdded   lipgloss.Color
	DiffRemoved lipgloss.Color
	DiffHunk    lipgloss.Color

	// Heat accents: background tint for recently changed rows.
	HotAccentPut    lipgloss.Color
	HotAccentRemove lipgloss.Color

	// Search and filter match highlighting.
	SearchHighlightBackground lipgloss.Color
	SearchCurrentBackground   lipgloss.Color

	// Links in rendered markdown.
	LinkForeground lipgloss.Color

	// Overlays (dropdowns, help modal).
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal colour scheme, designed
// for 256-colour terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	FocusAccent: lipgloss.Color("220"), // yellow/amber

	BranchForeground:    lipgloss.Color("240"),
	DirectoryForeground: lipgloss.Color("75"), // blue

	LevelError:   lipgloss.Color("196"), // bright red
	LevelWarn:    lipgloss.Color("208"), // orange
	LevelDebug:   lipgloss.Color("245"), // gray
	LevelTrace:   lipgloss.Color("240"), // dim gray
	LevelSuccess: lipgloss.Color("114"), // green
	LevelStart:   lipgloss.Color("75"),  // blue

	DiffAdded:   lipgloss.Color("114"),
	DiffRemoved: lipgloss.Color("203"),
	DiffHunk:    lipgloss.Color("141"), // light purple

	HotAccentPut:    lipgloss.Color("58"), // dark amber background tint
	HotAccentRemove: lipgloss.Color("52"), // dark red background tint

	SearchHighlightBackground: lipgloss.Color("58"),
	SearchCurrentBackground:   lipgloss.Color("100"),

	LinkForeground: lipgloss.Color("75"),

	TooltipForeground: lipgloss.Color("252"),
	TooltipBackground: lipgloss.Color("237"),
}

// themeFields maps the configuration key of every overridable colour
// to its field. Keys are the snake_case spelling used in config files.
func (theme *Theme) themeFields() map[string]*lipgloss.Color {
	return map[string]*lipgloss.Color{
		"normal_text":                 &theme.NormalText,
		"faint_text":                  &theme.FaintText,
		"selected_background":         &theme.SelectedBackground,
		"selected_foreground":         &theme.SelectedForeground,
		"header_foreground":           &theme.HeaderForeground,
		"border":                      &theme.BorderColor,
		"help_text":                   &theme.HelpText,
		"focus_accent":                &theme.FocusAccent,
		"branch":                      &theme.BranchForeground,
		"directory":                   &theme.DirectoryForeground,
		"level_error":                 &theme.LevelError,
		"level_warn":                  &theme.LevelWarn,
		"level_debug":                 &theme.LevelDebug,
		"level_trace":                 &theme.LevelTrace,
		"level_success":               &theme.LevelSuccess,
		"level_start":                 &theme.LevelStart,
		"diff_added":                  &theme.DiffAdded,
		"diff_removed":                &theme.DiffRemoved,
		"diff_hunk":                   &theme.DiffHunk,
		"hot_accent_put":              &theme.HotAccentPut,
		"hot_accent_remove":           &theme.HotAccentRemove,
		"search_highlight_background": &theme.SearchHighlightBackground,
		"search_current_background":   &theme.SearchCurrentBackground,
		"link":                        &theme.LinkForeground,
		"tooltip_foreground":          &theme.TooltipForeground,
		"tooltip_background":          &theme.TooltipBackground,
	}
}

// ThemeKeys returns the sorted list of colour names accepted by
// [Theme.Override].
func ThemeKeys() []string {
	var theme Theme
	fields := theme.themeFields()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// Override returns a copy of the theme with the named colours
// replaced. Values are either a 256-colour index ("0".."255") or a
// "#rrggbb" hex string. Unknown keys and malformed values are all
// reported together; on error the original theme is returned.
func (theme Theme) Override(overrides map[string]string) (Theme, error) {
	result := theme
	fields := result.themeFields()

	var errs []error
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := overrides[key]
		field, known := fields[key]
		if !known {
			errs = append(errs, fmt.Errorf("unknown theme colour %q", key))
			continue
		}
		if !validColor(value) {
			errs = append(errs, fmt.Errorf("theme colour %s: invalid value %q (want 0-255 or #rrggbb)", key, value))
			continue
		}
		*field = lipgloss.Color(value)
	}
	if len(errs) > 0 {
		return theme, errors.Join(errs...)
	}
	return result, nil
}

func validColor(value string) bool {
	if !colorPattern.MatchString(value) {
		return false
	}
	if value[0] == '#' {
		return true
	}
	index := 0
	for _, digit := range value {
		index = index*10 + int(digit-'0')
	}
	return index <= 255
}
