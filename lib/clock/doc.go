// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the injectable time source used by the widgets.
//
// Anything that animates or expires (heat tints, copy notices,
// type-ahead buffers, follower debounce) holds a Clock instead of
// calling the time package. Production code passes [Real]; tests pass
// [Fake] and step time with [FakeClock.Advance].
//
// [Tick] adapts a Clock to bubbletea: it is the clock-aware form of
// tea.Tick, so a scheduled animation frame can be released by a test
// without sleeping:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	cmd := clock.Tick(fake, 100*time.Millisecond, toMsg)
//	go func() { messages <- cmd() }()
//	fake.WaitForTimers(1)
//	fake.Advance(100 * time.Millisecond)
package clock
