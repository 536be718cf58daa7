// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logviewer is a bubbletea sub-model for scrolling through
// lines of log output.
//
// Content scrolls through a [viewport.Pager] (no cursor: the offset is
// the top visible line) and a [viewport.Horizontal] for long lines.
// Lines are coloured by keyword ("[error]", "warning:", "[debug]",
// "✓", "starting", ...). A case-insensitive search highlights matching
// lines and walks them with n/N, wrapping at either end. Follow mode
// keeps the view pinned to the newest line while content is appended,
// and appended lines glow briefly through a [tui.HeatTracker].
//
// The model consumes [logsource.LinesMsg] batches from a followed file
// and [tui.LogRecordMsg] records from the program's own slog handler.
package logviewer
