// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fataler is the part of *testing.T the helpers need.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive reads one value from ch within timeout, or fails the
// test. Followers and watchers deliver on channels; this keeps the
// hang guard out of every test.
//
//	batch := testutil.RequireReceive(t, follower.Batches(), 5*time.Second, "waiting for %s", path)
func RequireReceive[T any](t fataler, ch <-chan T, timeout time.Duration, msgAndArgs ...any) T {
	t.Helper()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without a value: %s", describe(msgAndArgs))
		}
		return value
	case <-time.After(timeout): //nolint:realclock test hang prevention
		t.Fatalf("timed out after %v: %s", timeout, describe(msgAndArgs))
	}
	panic("unreachable")
}

// RequireClosed waits for ch to be closed (or to deliver) within
// timeout, or fails the test.
func RequireClosed(t fataler, ch <-chan struct{}, timeout time.Duration, msgAndArgs ...any) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout): //nolint:realclock test hang prevention
		t.Fatalf("timed out after %v waiting for close: %s", timeout, describe(msgAndArgs))
	}
}

// RunCmd runs cmd on its own goroutine, as the bubbletea runtime does,
// and returns a channel that receives the resulting message. A nil cmd
// delivers nil.
func RunCmd(cmd tea.Cmd) <-chan tea.Msg {
	messages := make(chan tea.Msg, 1)
	go func() {
		if cmd == nil {
			messages <- nil
			return
		}
		messages <- cmd()
	}()
	return messages
}

// RequireMsg waits for the next message on messages and fails the test
// unless it has type M.
//
//	changed := testutil.RequireMsg[fileexplorer.ChangedMsg](t, testutil.RunCmd(model.Init()), 5*time.Second)
func RequireMsg[M tea.Msg](t fataler, messages <-chan tea.Msg, timeout time.Duration, msgAndArgs ...any) M {
	t.Helper()
	message := RequireReceive(t, messages, timeout, msgAndArgs...)
	typed, ok := message.(M)
	if !ok {
		var zero M
		t.Fatalf("expected %T, got %#v: %s", zero, message, describe(msgAndArgs))
	}
	return typed
}

// describe renders optional message arguments: a single value, or a
// format string followed by its arguments.
func describe(msgAndArgs []any) string {
	switch {
	case len(msgAndArgs) == 0:
		return "(no message)"
	case len(msgAndArgs) == 1:
		return fmt.Sprint(msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs...)
}
