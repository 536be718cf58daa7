// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tuikit/lib/clock"
)

// HeatDecayDuration is how long a row glows after a change. Heat
// starts at 1.0 and decays linearly to 0.0 over this duration.
const HeatDecayDuration = 5 * time.Second

// HeatTickInterval is the re-render interval while any row is hot.
const HeatTickInterval = 100 * time.Millisecond

// HeatKind distinguishes kinds of change for colour selection.
type HeatKind int

const (
	// HeatPut marks a row that appeared or changed (amber glow).
	HeatPut HeatKind = iota
	// HeatRemove marks a row that is going away (red glow).
	HeatRemove
)

type heatEntry struct {
	ignition time.Time
	kind     HeatKind
}

// HeatTracker maps row keys to ignition times. Each change ignites a
// row, which then decays to zero over [HeatDecayDuration]. Time is
// always passed in so callers can drive it from a fake clock.
type HeatTracker struct {
	entries map[string]heatEntry
}

// NewHeatTracker creates an empty tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{entries: make(map[string]heatEntry)}
}

// Ignite records a change. Reigniting a hot row restarts its decay.
func (tracker *HeatTracker) Ignite(key string, kind HeatKind, now time.Time) {
	tracker.entries[key] = heatEntry{ignition: now, kind: kind}
}

// Heat returns the current intensity for a row in [0, 1].
func (tracker *HeatTracker) Heat(key string, now time.Time) float64 {
	entry, exists := tracker.entries[key]
	if !exists {
		return 0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= HeatDecayDuration || elapsed < 0 {
		return 0
	}
	return 1 - float64(elapsed)/float64(HeatDecayDuration)
}

// Kind returns the kind of the row's last change. Only meaningful
// while Heat is positive.
func (tracker *HeatTracker) Kind(key string) HeatKind {
	return tracker.entries[key].kind
}

// HasHot reports whether any row is still glowing, and drops entries
// that have fully decayed.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for key, entry := range tracker.entries {
		if now.Sub(entry.ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.entries, key)
	}
	return hot
}

// Reset forgets every row.
func (tracker *HeatTracker) Reset() {
	clear(tracker.entries)
}

// Accent returns the background tint for a hot row and whether the row
// is hot at all.
func (tracker *HeatTracker) Accent(theme Theme, key string, now time.Time) (lipgloss.Color, bool) {
	if tracker.Heat(key, now) <= 0 {
		return "", false
	}
	if tracker.Kind(key) == HeatRemove {
		return theme.HotAccentRemove, true
	}
	return theme.HotAccentPut, true
}

// HeatTickMsg drives heat decay re-renders.
type HeatTickMsg struct{}

// ScheduleHeatTick returns a command delivering [HeatTickMsg] after
// [HeatTickInterval] on source. Widgets keep rescheduling while
// [HeatTracker.HasHot] is true.
func ScheduleHeatTick(source clock.Clock) tea.Cmd {
	return clock.Tick(source, HeatTickInterval, func(time.Time) tea.Msg {
		return HeatTickMsg{}
	})
}
