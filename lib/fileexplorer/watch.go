// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileexplorer

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/bureau-foundation/tuikit/lib/clock"
)

// DefaultWatchDebounce is how long the watcher keeps collecting events
// after the first one before reporting a change.
const DefaultWatchDebounce = 100 * time.Millisecond

// ChangedMsg reports that the watched directory changed. Err is set
// when the watcher failed instead.
type ChangedMsg struct {
	Dir string
	Err error
}

// Watcher follows one directory at a time with fsnotify.
type Watcher struct {
	watcher  *fsnotify.Watcher
	clock    clock.Clock
	debounce time.Duration

	mu        sync.Mutex
	directory string
}

// NewWatcher creates a watcher that is not yet watching anything.
func NewWatcher(source clock.Clock) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if source == nil {
		source = clock.Real()
	}
	return &Watcher{watcher: watcher, clock: source, debounce: DefaultWatchDebounce}, nil
}

// Watch replaces the watched directory.
func (watcher *Watcher) Watch(directory string) error {
	directory = filepath.Clean(directory)

	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if directory == watcher.directory {
		return nil
	}
	if watcher.directory != "" {
		// The old directory may already be gone.
		_ = watcher.watcher.Remove(watcher.directory)
	}
	watcher.directory = ""
	if err := watcher.watcher.Add(directory); err != nil {
		return fmt.Errorf("watching %s: %w", directory, err)
	}
	watcher.directory = directory
	return nil
}

// Directory returns the directory being watched, or "".
func (watcher *Watcher) Directory() string {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	return watcher.directory
}

// Listen returns a command that waits for the next change and yields
// a [ChangedMsg]. Events within the debounce window after the first
// are folded into it. Yields nil once the watcher is closed.
func (watcher *Watcher) Listen() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-watcher.watcher.Events:
				if !ok {
					return nil
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				directory := filepath.Dir(event.Name)
				watcher.drain(watcher.clock.After(watcher.debounce))
				return ChangedMsg{Dir: directory}
			case err, ok := <-watcher.watcher.Errors:
				if !ok {
					return nil
				}
				return ChangedMsg{Dir: watcher.Directory(), Err: err}
			}
		}
	}
}

func (watcher *Watcher) drain(deadline <-chan time.Time) {
	for {
		select {
		case _, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
		case <-deadline:
			return
		}
	}
}

// Close stops watching. Pending Listen commands yield nil.
func (watcher *Watcher) Close() error {
	return watcher.watcher.Close()
}
