// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the shared infrastructure the tuikit widgets
// are built from: a colour theme, overlay splicing, scrollbars, focus
// and click routing, fuzzy matching, a single-line search input, change
// heat, clipboard access, markdown rendering for help text, and a slog
// handler that delivers log records into a running bubbletea program.
//
// Widgets (tree view, list picker, log viewer, select menu, file
// explorer, diff viewer) live in their own packages and import this
// one for consistent look and behaviour: same theme, same keyboard
// conventions, same overlay mechanics. Each widget owns its own state
// and rendering; nothing here knows about any particular widget.
package tui
