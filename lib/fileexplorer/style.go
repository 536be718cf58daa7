// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileexplorer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/tui"
)

// Style controls the listing.
type Style struct {
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Directory lipgloss.Style
	Symlink   lipgloss.Style
	File      lipgloss.Style
	Size      lipgloss.Style
	Error     lipgloss.Style

	// FileColors colours regular files by lower-case extension.
	FileColors map[string]lipgloss.Color

	Checked   string
	Unchecked string

	DirectoryIcon string
	ParentIcon    string
	SymlinkIcon   string
	FileIcon      string
}

// DefaultStyle returns the bracketed-icon style for theme.
func DefaultStyle(theme tui.Theme) Style {
	code := lipgloss.Color("186")
	data := lipgloss.Color("114")
	script := lipgloss.Color("203")
	web := lipgloss.Color("176")
	return Style{
		Title: lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Bold(true),
		Directory: lipgloss.NewStyle().Foreground(theme.DirectoryForeground).Bold(true),
		Symlink:   lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
		File:      lipgloss.NewStyle().Foreground(theme.NormalText),
		Size:      lipgloss.NewStyle().Foreground(theme.FaintText),
		Error:     lipgloss.NewStyle().Foreground(theme.LevelError),
		FileColors: map[string]lipgloss.Color{
			"go": code, "rs": code, "c": code, "py": code,
			"toml": data, "json": data, "jsonc": data, "yaml": data, "yml": data,
			"sh": script, "bash": script, "zsh": script,
			"js": web, "ts": web, "tsx": web, "jsx": web,
			"md": theme.NormalText, "txt": theme.NormalText,
		},
		Checked:       "[x]",
		Unchecked:     "[ ]",
		DirectoryIcon: "[DIR]",
		ParentIcon:    " .. ",
		SymlinkIcon:   "[LNK]",
		FileIcon:      "     ",
	}
}

// nameStyle picks the style for an entry's name when not under the
// cursor.
func (style Style) nameStyle(entry Entry) lipgloss.Style {
	switch entry.Kind {
	case KindDirectory, KindParent:
		return style.Directory
	case KindSymlink:
		return style.Symlink
	}
	if colour, ok := style.FileColors[entry.Extension()]; ok {
		return style.File.Foreground(colour)
	}
	return style.File
}

func (style Style) icon(entry Entry) string {
	switch entry.Kind {
	case KindDirectory:
		return style.DirectoryIcon
	case KindParent:
		return style.ParentIcon
	case KindSymlink:
		return style.SymlinkIcon
	}
	return style.FileIcon
}
