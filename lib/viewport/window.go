// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewport

// Window is a selection cursor inside a scrollable region of Height
// rows over a list of Total rows. Every mutating method re-establishes
// the visibility invariant
//
//	Scroll <= Cursor < Scroll+Height
//
// whenever Height > 0 and Total > 0, by adjusting Scroll only. When
// Total is 0 the cursor rests at 0 and [Window.Empty] reports true so
// renderers know not to draw a selection.
type Window struct {
	// Cursor is the selected row index in [0, Total-1].
	Cursor int

	// Scroll is the index of the first visible row.
	Scroll int

	// Height is the number of rows the viewport can display.
	Height int

	// Total is the number of rows in the underlying list.
	Total int
}

// NewWindow creates a Window with the cursor on the first row.
func NewWindow(total, height int) Window {
	window := Window{Total: total, Height: height}
	window.settle()
	return window
}

// settle clamps the cursor into the list, clamps the scroll offset so
// the viewport never starts past the last page, then scrolls the
// cursor into view.
func (window *Window) settle() {
	window.Cursor = Clamp(window.Cursor, window.Total)
	window.Scroll = ClampScroll(window.Scroll, window.Total, window.Height)
	window.Scroll = EnsureVisible(window.Cursor, window.Scroll, window.Height)
}

// Empty reports whether the window has no rows to select.
func (window Window) Empty() bool {
	return window.Total <= 0
}

// Next moves the cursor down one row. Returns true if it moved.
func (window *Window) Next() bool {
	previous := window.Cursor
	window.Cursor = SelectNext(window.Cursor, window.Total)
	window.settle()
	return window.Cursor != previous
}

// Prev moves the cursor up one row. Returns true if it moved.
func (window *Window) Prev() bool {
	previous := window.Cursor
	window.Cursor = SelectPrev(window.Cursor, window.Total)
	window.settle()
	return window.Cursor != previous
}

// First moves the cursor to the first row.
func (window *Window) First() {
	window.Cursor = SelectFirst(window.Total)
	window.settle()
}

// Last moves the cursor to the last row.
func (window *Window) Last() {
	window.Cursor = SelectLast(window.Total)
	window.settle()
}

// PageDown moves the cursor down by one viewport height.
func (window *Window) PageDown() {
	window.Cursor = PageDown(window.Cursor, window.Total, window.Height)
	window.settle()
}

// PageUp moves the cursor up by one viewport height.
func (window *Window) PageUp() {
	window.Cursor = PageUp(window.Cursor, window.Total, window.Height)
	window.settle()
}

// Select moves the cursor to index. Out-of-range indices are ignored
// and reported by returning false.
func (window *Window) Select(index int) bool {
	if index < 0 || index >= window.Total {
		return false
	}
	window.Cursor = index
	window.settle()
	return true
}

// SetTotal replaces the row count, clamping the cursor to the new last
// row when the list shrank.
func (window *Window) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	window.Total = total
	window.settle()
}

// SetHeight replaces the viewport height (typically on resize).
func (window *Window) SetHeight(height int) {
	if height < 0 {
		height = 0
	}
	window.Height = height
	window.settle()
}

// EnsureVisible scrolls so the cursor is inside the viewport.
func (window *Window) EnsureVisible() {
	window.settle()
}

// Range returns the half-open range [start, end) of row indices
// currently inside the viewport.
func (window Window) Range() (start, end int) {
	start = window.Scroll
	end = window.Scroll + window.Height
	if end > window.Total {
		end = window.Total
	}
	if start > end {
		start = end
	}
	return start, end
}

// RowAt maps a y offset inside the viewport (0 = first visible row) to
// a row index. Returns false when y falls outside the viewport or past
// the end of the list.
func (window Window) RowAt(y int) (int, bool) {
	if y < 0 || y >= window.Height {
		return 0, false
	}
	index := window.Scroll + y
	if index >= window.Total {
		return 0, false
	}
	return index, true
}

// ScrollTo maps a y position on a scrollbar track of trackHeight rows
// to a scroll offset, then drags the cursor into the new viewport.
// Does nothing when the whole list already fits.
func (window *Window) ScrollTo(y, trackHeight int) {
	if window.Total <= window.Height || window.Height <= 0 || trackHeight <= 0 {
		return
	}
	maxOffset := window.Total - window.Height
	offset := 0
	if trackHeight > 1 {
		offset = y * maxOffset / (trackHeight - 1)
	}
	window.Scroll = ClampScroll(offset, window.Total, window.Height)

	if window.Cursor < window.Scroll {
		window.Cursor = window.Scroll
	}
	if window.Cursor >= window.Scroll+window.Height {
		window.Cursor = window.Scroll + window.Height - 1
	}
	window.settle()
}
