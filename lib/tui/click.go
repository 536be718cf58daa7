// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

// Rect is a screen rectangle in cell coordinates. The far edges are
// exclusive: a Rect{X: 10, Width: 20} covers columns 10 through 29.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether (x, y) lies inside the rectangle. Zero or
// negative sized rectangles contain nothing.
func (rect Rect) Contains(x, y int) bool {
	return x >= rect.X && x < rect.X+rect.Width &&
		y >= rect.Y && y < rect.Y+rect.Height
}

// ClickRegion associates a rectangle with the value a click inside it
// resolves to.
type ClickRegion[T any] struct {
	Area Rect
	Data T
}

// ClickRegistry collects clickable regions during rendering and maps
// mouse coordinates back to them. Views clear and re-register every
// frame, so regions always match what is on screen. When regions
// overlap the one registered first wins.
type ClickRegistry[T any] struct {
	regions []ClickRegion[T]
}

// Register adds a region.
func (registry *ClickRegistry[T]) Register(area Rect, data T) {
	registry.regions = append(registry.regions, ClickRegion[T]{Area: area, Data: data})
}

// HandleClick returns the data of the first region containing (x, y).
func (registry *ClickRegistry[T]) HandleClick(x, y int) (data T, ok bool) {
	for _, region := range registry.regions {
		if region.Area.Contains(x, y) {
			return region.Data, true
		}
	}
	return data, false
}

// Clear removes all regions.
func (registry *ClickRegistry[T]) Clear() {
	registry.regions = registry.regions[:0]
}

// Len returns the number of registered regions.
func (registry *ClickRegistry[T]) Len() int {
	return len(registry.regions)
}

// Regions returns the registered regions in registration order.
func (registry *ClickRegistry[T]) Regions() []ClickRegion[T] {
	return registry.regions
}
