// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewport

import "testing"

func TestSelectNextSaturates(t *testing.T) {
	cursor := 0
	for step := 0; step < 10; step++ {
		cursor = SelectNext(cursor, 5)
	}
	if cursor != 4 {
		t.Errorf("expected cursor 4 after overshooting, got %d", cursor)
	}
}

func TestSelectPrevSaturates(t *testing.T) {
	if cursor := SelectPrev(0, 5); cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", cursor)
	}
	if cursor := SelectPrev(3, 5); cursor != 2 {
		t.Errorf("expected cursor 2, got %d", cursor)
	}
}

func TestSelectOnEmptyList(t *testing.T) {
	if cursor := SelectNext(0, 0); cursor != 0 {
		t.Errorf("SelectNext on empty list: expected 0, got %d", cursor)
	}
	if cursor := SelectPrev(0, 0); cursor != 0 {
		t.Errorf("SelectPrev on empty list: expected 0, got %d", cursor)
	}
	if cursor := SelectLast(0); cursor != 0 {
		t.Errorf("SelectLast on empty list: expected 0, got %d", cursor)
	}
}

func TestSelectFirstLast(t *testing.T) {
	if cursor := SelectFirst(7); cursor != 0 {
		t.Errorf("expected first = 0, got %d", cursor)
	}
	if cursor := SelectLast(7); cursor != 6 {
		t.Errorf("expected last = 6, got %d", cursor)
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		scroll int
		height int
		want   int
	}{
		{"cursor above viewport", 2, 5, 5, 2},
		{"cursor below viewport", 17, 0, 5, 13},
		{"cursor inside viewport", 7, 5, 5, 5},
		{"cursor on last visible row", 9, 5, 5, 5},
		{"cursor one past last visible row", 10, 5, 5, 6},
		{"zero height is a no-op", 17, 3, 0, 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := EnsureVisible(test.cursor, test.scroll, test.height)
			if got != test.want {
				t.Errorf("EnsureVisible(%d, %d, %d) = %d, want %d",
					test.cursor, test.scroll, test.height, got, test.want)
			}
		})
	}
}

func TestEnsureVisibleTwentyItemsScenario(t *testing.T) {
	cursor := 0
	for cursor < 17 {
		cursor = SelectNext(cursor, 20)
	}
	scroll := EnsureVisible(cursor, 0, 5)
	if scroll != 13 {
		t.Errorf("expected scroll 13 (17-5+1), got %d", scroll)
	}
}

func TestClampScroll(t *testing.T) {
	if scroll := ClampScroll(40, 20, 5); scroll != 15 {
		t.Errorf("expected scroll clamped to 15, got %d", scroll)
	}
	if scroll := ClampScroll(3, 4, 10); scroll != 0 {
		t.Errorf("expected 0 when the list fits, got %d", scroll)
	}
	if scroll := ClampScroll(-2, 20, 5); scroll != 0 {
		t.Errorf("expected negative scroll clamped to 0, got %d", scroll)
	}
}

func TestPageUpDown(t *testing.T) {
	if cursor := PageDown(3, 20, 5); cursor != 8 {
		t.Errorf("expected 8, got %d", cursor)
	}
	if cursor := PageDown(17, 20, 5); cursor != 19 {
		t.Errorf("expected PageDown to saturate at 19, got %d", cursor)
	}
	if cursor := PageUp(3, 20, 5); cursor != 0 {
		t.Errorf("expected PageUp to saturate at 0, got %d", cursor)
	}
}
