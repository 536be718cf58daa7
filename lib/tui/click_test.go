// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "testing"

func TestRectContains(t *testing.T) {
	rect := Rect{X: 10, Y: 5, Width: 20, Height: 3}
	inside := [][2]int{{10, 5}, {29, 7}, {20, 6}}
	outside := [][2]int{{9, 5}, {30, 5}, {10, 4}, {10, 8}}
	for _, point := range inside {
		if !rect.Contains(point[0], point[1]) {
			t.Errorf("expected %v inside %+v", point, rect)
		}
	}
	for _, point := range outside {
		if rect.Contains(point[0], point[1]) {
			t.Errorf("expected %v outside %+v", point, rect)
		}
	}
}

func TestRectZeroSize(t *testing.T) {
	if (Rect{X: 5, Y: 5}).Contains(5, 5) {
		t.Error("expected a zero-size rect to contain nothing")
	}
}

func TestClickRegistryFirstMatchWins(t *testing.T) {
	var registry ClickRegistry[string]
	registry.Register(Rect{X: 0, Y: 0, Width: 10, Height: 1}, "first")
	registry.Register(Rect{X: 5, Y: 0, Width: 10, Height: 1}, "second")
	registry.Register(Rect{X: 20, Y: 0, Width: 5, Height: 1}, "third")

	regions := registry.Regions()
	if len(regions) != 3 || regions[0].Data != "first" || regions[2].Area.X != 20 {
		t.Errorf("expected regions in registration order, got %+v", regions)
	}

	tests := []struct {
		x, y int
		want string
		ok   bool
	}{
		{2, 0, "first", true},
		{7, 0, "first", true},
		{12, 0, "second", true},
		{22, 0, "third", true},
		{17, 0, "", false},
		{2, 1, "", false},
	}
	for _, test := range tests {
		got, ok := registry.HandleClick(test.x, test.y)
		if ok != test.ok || got != test.want {
			t.Errorf("HandleClick(%d, %d) = %q, %v; want %q, %v", test.x, test.y, got, ok, test.want, test.ok)
		}
	}

	registry.Clear()
	if registry.Len() != 0 {
		t.Errorf("expected empty registry after Clear, got %d", registry.Len())
	}
	if _, ok := registry.HandleClick(2, 0); ok {
		t.Error("expected no match after Clear")
	}
}
