// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewport

// SelectNext returns the cursor moved down by one row. The cursor
// saturates at total-1; it never wraps to the top.
func SelectNext(cursor, total int) int {
	if total <= 0 {
		return 0
	}
	if cursor+1 < total {
		return cursor + 1
	}
	return total - 1
}

// SelectPrev returns the cursor moved up by one row, saturating at 0.
func SelectPrev(cursor, total int) int {
	if total <= 0 || cursor <= 0 {
		return 0
	}
	if cursor > total-1 {
		return total - 1
	}
	return cursor - 1
}

// SelectFirst returns the index of the first row.
func SelectFirst(total int) int {
	return 0
}

// SelectLast returns the index of the last row, or 0 for an empty list.
func SelectLast(total int) int {
	if total <= 0 {
		return 0
	}
	return total - 1
}

// Clamp returns cursor limited to [0, total-1], or 0 when total is 0.
func Clamp(cursor, total int) int {
	if total <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= total {
		return total - 1
	}
	return cursor
}

// EnsureVisible returns the scroll offset adjusted so that cursor lies
// in [scroll, scroll+height). Only the offset moves. A height of zero
// or less describes a degenerate viewport and leaves scroll unchanged.
func EnsureVisible(cursor, scroll, height int) int {
	if height <= 0 {
		return scroll
	}
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+height {
		return cursor - height + 1
	}
	return scroll
}

// ClampScroll limits scroll to [0, max(total-height, 0)] so the
// viewport never starts past the last full page. Used after the
// underlying list shrinks (filter applied, subtree collapsed).
func ClampScroll(scroll, total, height int) int {
	maxOffset := total - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if scroll > maxOffset {
		scroll = maxOffset
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// PageDown returns the cursor moved down by one page, saturating at
// the last row.
func PageDown(cursor, total, height int) int {
	if height < 1 {
		height = 1
	}
	return Clamp(cursor+height, total)
}

// PageUp returns the cursor moved up by one page, saturating at 0.
func PageUp(cursor, total, height int) int {
	if height < 1 {
		height = 1
	}
	return Clamp(cursor-height, total)
}
