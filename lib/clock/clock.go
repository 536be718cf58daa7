// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source for widgets and followers. Widgets hold
// one so that animation, notice fades, and type-ahead timeouts can be
// stepped by a test instead of waiting on the wall clock.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. If d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time

	// AfterFunc calls f once d has elapsed. Stop on the returned
	// Timer cancels a call that has not happened yet.
	AfterFunc(d time.Duration, f func()) *Timer

	// Sleep blocks the calling goroutine for at least d.
	Sleep(d time.Duration)
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop cancels the call. Returns false if it already ran or was
// stopped before.
func (t *Timer) Stop() bool { return t.stopFunc() }
