// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewport

// Pager is a cursor-less viewport: Offset is the first visible line.
// Text viewers (logs, diffs) scroll their content directly rather than
// moving a selection through it.
//
// LineDown stops once the last line reaches the top of the viewport,
// while PageDown and Bottom stop at the last full page. That matches
// how a pager lets a single-line scroll reveal trailing blank space but
// keeps page jumps aligned to the content.
type Pager struct {
	Offset int
	Height int
	Total  int
}

// LineDown scrolls one line towards the end of the content.
func (pager *Pager) LineDown() {
	if pager.Offset+1 < pager.Total {
		pager.Offset++
	}
}

// LineUp scrolls one line towards the start, saturating at 0.
func (pager *Pager) LineUp() {
	if pager.Offset > 0 {
		pager.Offset--
	}
}

// maxOffset is the offset that shows the last full page.
func (pager Pager) maxOffset() int {
	maxOffset := pager.Total - pager.Height
	if maxOffset < 0 {
		return 0
	}
	return maxOffset
}

// PageDown scrolls one viewport height, stopping at the last page.
func (pager *Pager) PageDown() {
	target := pager.Offset + pager.Height
	if maxOffset := pager.maxOffset(); target > maxOffset {
		target = maxOffset
	}
	if target > pager.Offset {
		pager.Offset = target
	}
}

// PageUp scrolls one viewport height towards the start.
func (pager *Pager) PageUp() {
	pager.Offset -= pager.Height
	if pager.Offset < 0 {
		pager.Offset = 0
	}
}

// Top scrolls to the first line.
func (pager *Pager) Top() {
	pager.Offset = 0
}

// Bottom scrolls so the last full page is visible.
func (pager *Pager) Bottom() {
	pager.Offset = pager.maxOffset()
}

// GoTo places line at the top of the viewport, clamped to the last
// line of the content.
func (pager *Pager) GoTo(line int) {
	pager.Offset = Clamp(line, pager.Total)
}

// AtBottom reports whether the last line is inside the viewport.
func (pager Pager) AtBottom() bool {
	return pager.Offset >= pager.maxOffset()
}

// SetTotal replaces the line count. The offset is pulled back when it
// would point past the new last line.
func (pager *Pager) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	pager.Total = total
	pager.Offset = Clamp(pager.Offset, total)
}

// Range returns the half-open range [start, end) of visible lines.
func (pager Pager) Range() (start, end int) {
	start = pager.Offset
	end = pager.Offset + pager.Height
	if end > pager.Total {
		end = pager.Total
	}
	if start > end {
		start = end
	}
	return start, end
}

// Percent returns how far through the content the top visible line
// is, as an integer percentage of the 1-based line number.
func (pager Pager) Percent() int {
	if pager.Total <= 0 {
		return 0
	}
	return (pager.Offset + 1) * 100 / pager.Total
}

// ScrollTo maps a y position on a scrollbar track of trackHeight rows
// to an offset between the first and the last full page.
func (pager *Pager) ScrollTo(y, trackHeight int) {
	maxOffset := pager.maxOffset()
	if maxOffset == 0 || trackHeight <= 0 {
		return
	}
	offset := 0
	if trackHeight > 1 {
		offset = y * maxOffset / (trackHeight - 1)
	}
	pager.Offset = ClampScroll(offset, pager.Total, pager.Height)
}
