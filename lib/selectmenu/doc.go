// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package selectmenu is a single-choice select box.
//
// Closed, the widget is a bordered field showing the chosen option's
// label (or a placeholder) with a ▼ indicator. Open, a
// [tui.DropdownOverlay] hangs below the field; the parent renders its
// own view and passes it through [Model.Overlay] so the dropdown is
// drawn on top of whatever lies beneath.
//
// The highlight is a saturating cursor: up on the first option and down
// on the last do nothing. Typing letters while open jumps to the next
// option whose label starts with the typed prefix, wrapping to the
// top. Committing a choice emits [ChangedMsg].
package selectmenu
