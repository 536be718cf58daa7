// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewport

// DefaultHorizontalStep is the number of columns one left/right
// keypress scrolls.
const DefaultHorizontalStep = 4

// Horizontal tracks a column offset for content wider than the
// viewport. Max bounds the offset; a negative Max leaves it unbounded
// (useful when line widths are not known up front).
type Horizontal struct {
	Offset int
	Step   int
	Max    int
}

// NewHorizontal creates an unbounded horizontal scroller. A step of
// zero or less selects [DefaultHorizontalStep].
func NewHorizontal(step int) Horizontal {
	if step <= 0 {
		step = DefaultHorizontalStep
	}
	return Horizontal{Step: step, Max: -1}
}

func (horizontal Horizontal) step() int {
	if horizontal.Step <= 0 {
		return DefaultHorizontalStep
	}
	return horizontal.Step
}

// Left scrolls one step towards column 0, saturating there.
func (horizontal *Horizontal) Left() {
	horizontal.Offset -= horizontal.step()
	if horizontal.Offset < 0 {
		horizontal.Offset = 0
	}
}

// Right scrolls one step to the right, stopping at Max when bounded.
func (horizontal *Horizontal) Right() {
	horizontal.Offset += horizontal.step()
	horizontal.clamp()
}

// Reset returns to column 0.
func (horizontal *Horizontal) Reset() {
	horizontal.Offset = 0
}

// Bound limits scrolling so the widest line's end can just reach the
// right edge of a viewport visibleWidth columns wide.
func (horizontal *Horizontal) Bound(contentWidth, visibleWidth int) {
	limit := contentWidth - visibleWidth
	if limit < 0 {
		limit = 0
	}
	horizontal.Max = limit
	horizontal.clamp()
}

func (horizontal *Horizontal) clamp() {
	if horizontal.Max >= 0 && horizontal.Offset > horizontal.Max {
		horizontal.Offset = horizontal.Max
	}
	if horizontal.Offset < 0 {
		horizontal.Offset = 0
	}
}
