// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/bureau-foundation/tuikit/lib/config"
	"github.com/bureau-foundation/tuikit/lib/diffview"
	"github.com/bureau-foundation/tuikit/lib/tree"
	"github.com/bureau-foundation/tuikit/lib/tui"
)

// treeFileNode is one node of a tree file. Label defaults to ID.
type treeFileNode struct {
	ID       string         `yaml:"id" json:"id"`
	Label    string         `yaml:"label" json:"label"`
	Children []treeFileNode `yaml:"children" json:"children"`
}

// loadTree reads a YAML or JSONC tree file: a list of nodes, each with
// an id, an optional label, and optional children.
func loadTree(path string) ([]tree.Node[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree file: %w", err)
	}
	var roots []treeFileNode
	if err := config.Decode(path, data, &roots); err != nil {
		return nil, fmt.Errorf("parsing tree file %s: %w", path, err)
	}
	seen := make(map[string]bool)
	nodes, err := convertTree(roots, seen)
	if err != nil {
		return nil, fmt.Errorf("tree file %s: %w", path, err)
	}
	return nodes, nil
}

func convertTree(entries []treeFileNode, seen map[string]bool) ([]tree.Node[string], error) {
	var errs []error
	nodes := make([]tree.Node[string], 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.ID == "":
			errs = append(errs, fmt.Errorf("node %q has no id", entry.Label))
			continue
		case seen[entry.ID]:
			errs = append(errs, fmt.Errorf("duplicate node id %q", entry.ID))
			continue
		}
		seen[entry.ID] = true
		children, err := convertTree(entry.Children, seen)
		if err != nil {
			errs = append(errs, err)
		}
		label := entry.Label
		if label == "" {
			label = entry.ID
		}
		nodes = append(nodes, tree.NewNode(entry.ID, label, children...))
	}
	return nodes, errors.Join(errs...)
}

// sampleTree is shown when no tree file is configured.
func sampleTree() []tree.Node[string] {
	leaf := func(id, label string) tree.Node[string] { return tree.NewNode(id, label) }
	return []tree.Node[string]{
		tree.NewNode("cmd", "cmd",
			tree.NewNode("cmd/tuikit-demo", "tuikit-demo",
				leaf("cmd/tuikit-demo/main.go", "main.go"),
				leaf("cmd/tuikit-demo/app.go", "app.go"),
			),
		),
		tree.NewNode("lib", "lib",
			tree.NewNode("lib/tree", "tree",
				leaf("lib/tree/flatten.go", "flatten.go"),
				leaf("lib/tree/collapse.go", "collapse.go"),
			),
			tree.NewNode("lib/viewport", "viewport",
				leaf("lib/viewport/window.go", "window.go"),
				leaf("lib/viewport/pager.go", "pager.go"),
			),
			tree.NewNode("lib/tui", "tui",
				leaf("lib/tui/theme.go", "theme.go"),
				leaf("lib/tui/search.go", "search.go"),
				leaf("lib/tui/overlay.go", "overlay.go"),
			),
		),
		leaf("go.mod", "go.mod"),
		leaf("README.md", "README.md"),
	}
}

// syntaxThemes lists the chroma styles the list tab offers for the
// diff viewer.
func syntaxThemes() []string {
	return styles.Names()
}

// diffModeOptions are the choices of the select tab.
func diffModeOptions() []tui.DropdownOption {
	return []tui.DropdownOption{
		{Label: diffview.Unified.String(), Value: "unified"},
		{Label: diffview.SideBySide.String(), Value: "side-by-side"},
	}
}

// diffModeFromName maps a configured mode name.
func diffModeFromName(name string) diffview.Mode {
	if name == "side-by-side" {
		return diffview.SideBySide
	}
	return diffview.Unified
}

// loadDiff builds the diff for the diff tab: a patch file, a diff of
// two files, or a built-in sample.
func loadDiff(cfg config.DiffConfig) (diffview.Diff, error) {
	switch {
	case cfg.Patch != "":
		data, err := os.ReadFile(cfg.Patch)
		if err != nil {
			return diffview.Diff{}, fmt.Errorf("reading patch: %w", err)
		}
		return diffview.Parse(string(data)), nil

	case cfg.Old != "":
		oldText, err := os.ReadFile(cfg.Old)
		if err != nil {
			return diffview.Diff{}, fmt.Errorf("reading diff.old: %w", err)
		}
		newText, err := os.ReadFile(cfg.New)
		if err != nil {
			return diffview.Diff{}, fmt.Errorf("reading diff.new: %w", err)
		}
		return diffview.FromTexts(cfg.Old, cfg.New, string(oldText), string(newText), cfg.Context)

	default:
		return diffview.FromTexts("a/window.go", "b/window.go", sampleOld, sampleNew, cfg.Context)
	}
}

const sampleOld = `package viewport

// Window is a cursor over a list.
type Window struct {
	Cursor int
	Offset int
	Height int
	Total  int
}

// Next moves the cursor down, wrapping to the top.
func (window *Window) Next() {
	window.Cursor = (window.Cursor + 1) % window.Total
}

// Prev moves the cursor up, wrapping to the bottom.
func (window *Window) Prev() {
	window.Cursor = (window.Cursor - 1 + window.Total) % window.Total
}
`

const sampleNew = `package viewport

// Window is a saturating cursor over a list with a scroll offset that
// keeps the cursor visible.
type Window struct {
	Cursor int
	Offset int
	Height int
	Total  int
}

// Next moves the cursor down. Returns false at the last row.
func (window *Window) Next() bool {
	if window.Cursor >= window.Total-1 {
		return false
	}
	window.Cursor++
	window.EnsureVisible()
	return true
}

// Prev moves the cursor up. Returns false at the first row.
func (window *Window) Prev() bool {
	if window.Cursor <= 0 {
		return false
	}
	window.Cursor--
	window.EnsureVisible()
	return true
}
`
