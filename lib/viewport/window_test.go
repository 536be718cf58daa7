// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewport

import "testing"

// requireVisible fails the test when the window's cursor has left the
// viewport.
func requireVisible(t *testing.T, window Window) {
	t.Helper()
	if window.Total == 0 || window.Height == 0 {
		return
	}
	if window.Cursor < window.Scroll || window.Cursor >= window.Scroll+window.Height {
		t.Fatalf("cursor %d outside viewport [%d, %d)",
			window.Cursor, window.Scroll, window.Scroll+window.Height)
	}
}

func TestWindowNavigation(t *testing.T) {
	window := NewWindow(20, 5)

	for step := 0; step < 17; step++ {
		window.Next()
		requireVisible(t, window)
	}
	if window.Cursor != 17 {
		t.Fatalf("expected cursor 17, got %d", window.Cursor)
	}
	if window.Scroll != 13 {
		t.Errorf("expected scroll 13, got %d", window.Scroll)
	}

	window.First()
	if window.Cursor != 0 || window.Scroll != 0 {
		t.Errorf("expected cursor/scroll 0/0 after First, got %d/%d", window.Cursor, window.Scroll)
	}

	window.Last()
	if window.Cursor != 19 || window.Scroll != 15 {
		t.Errorf("expected cursor/scroll 19/15 after Last, got %d/%d", window.Cursor, window.Scroll)
	}

	if window.Next() {
		t.Error("expected Next at the last row to report no movement")
	}
}

func TestWindowPrevAtTop(t *testing.T) {
	window := NewWindow(5, 3)
	if window.Prev() {
		t.Error("expected Prev at row 0 to report no movement")
	}
	if window.Cursor != 0 {
		t.Errorf("expected cursor 0, got %d", window.Cursor)
	}
}

func TestWindowSetTotalShrinks(t *testing.T) {
	window := NewWindow(20, 5)
	window.Last()

	window.SetTotal(8)
	if window.Cursor != 7 {
		t.Errorf("expected cursor clamped to 7, got %d", window.Cursor)
	}
	if window.Scroll != 3 {
		t.Errorf("expected scroll 3, got %d", window.Scroll)
	}
	requireVisible(t, window)

	window.SetTotal(0)
	if !window.Empty() {
		t.Error("expected empty window")
	}
	if window.Cursor != 0 || window.Scroll != 0 {
		t.Errorf("expected cursor/scroll 0/0 on empty list, got %d/%d", window.Cursor, window.Scroll)
	}
}

func TestWindowSetHeight(t *testing.T) {
	window := NewWindow(20, 10)
	window.Select(9)
	window.SetHeight(4)
	requireVisible(t, window)
	if window.Scroll != 6 {
		t.Errorf("expected scroll 6 after shrinking the viewport, got %d", window.Scroll)
	}
}

func TestWindowSelect(t *testing.T) {
	window := NewWindow(10, 3)
	if !window.Select(6) {
		t.Fatal("expected Select(6) to succeed")
	}
	requireVisible(t, window)
	if window.Select(10) {
		t.Error("expected Select past the end to fail")
	}
	if window.Select(-1) {
		t.Error("expected negative Select to fail")
	}
	if window.Cursor != 6 {
		t.Errorf("expected cursor to stay at 6, got %d", window.Cursor)
	}
}

func TestWindowRangeAndRowAt(t *testing.T) {
	window := NewWindow(7, 5)
	window.Last()

	start, end := window.Range()
	if start != 2 || end != 7 {
		t.Errorf("expected range [2, 7), got [%d, %d)", start, end)
	}

	index, ok := window.RowAt(0)
	if !ok || index != 2 {
		t.Errorf("expected RowAt(0) = 2, got %d (ok=%v)", index, ok)
	}
	if _, ok := window.RowAt(5); ok {
		t.Error("expected RowAt outside the viewport to fail")
	}

	short := NewWindow(2, 5)
	if _, ok := short.RowAt(3); ok {
		t.Error("expected RowAt past the end of a short list to fail")
	}
}

func TestWindowPaging(t *testing.T) {
	window := NewWindow(30, 10)
	window.PageDown()
	if window.Cursor != 10 {
		t.Errorf("expected cursor 10, got %d", window.Cursor)
	}
	requireVisible(t, window)
	window.PageDown()
	window.PageDown()
	if window.Cursor != 29 {
		t.Errorf("expected cursor to saturate at 29, got %d", window.Cursor)
	}
	window.PageUp()
	if window.Cursor != 19 {
		t.Errorf("expected cursor 19, got %d", window.Cursor)
	}
	requireVisible(t, window)
}

func TestWindowScrollTo(t *testing.T) {
	window := NewWindow(100, 10)

	window.ScrollTo(9, 10)
	if window.Scroll != 90 {
		t.Errorf("expected scroll 90 at the bottom of the track, got %d", window.Scroll)
	}
	if window.Cursor != 90 {
		t.Errorf("expected cursor dragged to 90, got %d", window.Cursor)
	}

	window.ScrollTo(0, 10)
	if window.Scroll != 0 {
		t.Errorf("expected scroll 0, got %d", window.Scroll)
	}
	if window.Cursor != 9 {
		t.Errorf("expected cursor dragged to 9, got %d", window.Cursor)
	}
}

func TestWindowZeroHeight(t *testing.T) {
	window := NewWindow(10, 0)
	window.Next()
	window.Next()
	if window.Cursor != 2 {
		t.Errorf("expected cursor 2, got %d", window.Cursor)
	}
	if window.Scroll != 0 {
		t.Errorf("expected zero-height viewport to leave scroll alone, got %d", window.Scroll)
	}
}
