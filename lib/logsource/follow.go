// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package logsource

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/tuikit/lib/clock"
)

// DefaultDebounce is how long the follower waits after a change before
// reading, so a burst of writes arrives as one batch.
const DefaultDebounce = 50 * time.Millisecond

// FollowConfig configures [Follow].
type FollowConfig struct {
	// Path is the file to tail. It does not need to exist yet.
	Path string

	// Offset is the byte position to start from, normally the offset
	// returned by [Snapshot]. Lines before it are not delivered.
	Offset int64

	// Debounce defaults to [DefaultDebounce].
	Debounce time.Duration

	// Clock defaults to clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Follower tails one file. Stop it when done.
type Follower struct {
	path     string
	filename string
	debounce time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	fd      int
	offset  int64
	inode   uint64
	partial []byte

	batches  chan LinesMsg
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Follow starts tailing config.Path. Any content already past
// config.Offset is delivered as the first batch.
func Follow(config FollowConfig) (*Follower, error) {
	if config.Path == "" {
		return nil, errors.New("logsource: follow path is empty")
	}
	if Compressed(config.Path) {
		return nil, fmt.Errorf("logsource: cannot follow compressed file %s", config.Path)
	}
	absolutePath, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, err
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify init: %w", err)
	}
	// The directory is watched rather than the file: a rename-based
	// rotation creates a new inode that a file watch would never see.
	mask := uint32(unix.IN_MODIFY | unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_CREATE)
	if _, err := unix.InotifyAddWatch(fd, filepath.Dir(absolutePath), mask); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absolutePath), err)
	}

	follower := &Follower{
		path:     absolutePath,
		filename: filepath.Base(absolutePath),
		debounce: config.Debounce,
		clock:    config.Clock,
		logger:   config.Logger.With("path", absolutePath),
		fd:       fd,
		offset:   config.Offset,
		batches:  make(chan LinesMsg, 16),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	var stat unix.Stat_t
	if unix.Stat(absolutePath, &stat) == nil {
		follower.inode = stat.Ino
	}

	go follower.loop()
	return follower, nil
}

// Path returns the absolute path being followed.
func (follower *Follower) Path() string {
	return follower.path
}

// Batches returns the channel of line batches. It is closed after
// Stop.
func (follower *Follower) Batches() <-chan LinesMsg {
	return follower.batches
}

// Stop ends the watch and waits for the goroutine to exit. Safe to
// call more than once.
func (follower *Follower) Stop() {
	follower.stopOnce.Do(func() { close(follower.stop) })
	<-follower.done
}

// Listen returns a command that yields the follower's next batch, or
// nil once the follower has stopped.
func Listen(follower *Follower) tea.Cmd {
	return func() tea.Msg {
		batch, ok := <-follower.batches
		if !ok {
			return nil
		}
		return batch
	}
}

// loop polls the inotify descriptor with a short timeout so Stop is
// noticed promptly.
func (follower *Follower) loop() {
	defer close(follower.done)
	defer close(follower.batches)
	defer unix.Close(follower.fd)

	buffer := make([]byte, 4096)
	follower.readAvailable()

	for {
		select {
		case <-follower.stop:
			return
		default:
		}

		descriptors := []unix.PollFd{{Fd: int32(follower.fd), Events: unix.POLLIN}}
		count, err := unix.Poll(descriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			follower.logger.Error("inotify poll failed", "error", err)
			follower.deliver(LinesMsg{Path: follower.path, Err: err})
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(follower.fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			follower.logger.Error("inotify read failed", "error", err)
			follower.deliver(LinesMsg{Path: follower.path, Err: err})
			return
		}
		if !eventsName(buffer[:bytesRead], follower.filename) {
			continue
		}

		follower.clock.Sleep(follower.debounce)
		drainEvents(follower.fd, buffer)
		follower.readAvailable()
	}
}

// readAvailable reads everything past the current offset and delivers
// the complete lines. A shrunken or replaced file restarts from zero.
func (follower *Follower) readAvailable() {
	var stat unix.Stat_t
	if err := unix.Stat(follower.path, &stat); err != nil {
		// Absent between a rotation's rename and create.
		return
	}

	reset := false
	if stat.Ino != follower.inode || stat.Size < follower.offset {
		if follower.inode != 0 || follower.offset > 0 {
			follower.logger.Info("log file replaced, reading from start",
				"previous_offset", follower.offset, "size", stat.Size)
			reset = true
		}
		follower.inode = stat.Ino
		follower.offset = 0
		follower.partial = nil
	}
	if stat.Size == follower.offset && !reset {
		return
	}

	file, err := os.Open(follower.path)
	if err != nil {
		follower.deliver(LinesMsg{Path: follower.path, Err: err})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.NewSectionReader(file, follower.offset, stat.Size-follower.offset))
	if err != nil {
		follower.deliver(LinesMsg{Path: follower.path, Err: fmt.Errorf("reading %s: %w", follower.path, err)})
		return
	}
	follower.offset += int64(len(data))

	lines := follower.splitComplete(data)
	if len(lines) == 0 && !reset {
		return
	}
	follower.deliver(LinesMsg{Path: follower.path, Lines: lines, Reset: reset})
}

// splitComplete joins data onto any buffered partial line and returns
// the lines that are terminated. The unterminated tail is kept.
func (follower *Follower) splitComplete(data []byte) []string {
	follower.partial = append(follower.partial, data...)
	last := bytes.LastIndexByte(follower.partial, '\n')
	if last < 0 {
		return nil
	}
	complete := follower.partial[:last]
	follower.partial = append([]byte(nil), follower.partial[last+1:]...)

	lines := strings.Split(string(complete), "\n")
	for index, line := range lines {
		lines[index] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (follower *Follower) deliver(batch LinesMsg) {
	batch.Source = follower
	select {
	case follower.batches <- batch:
	case <-follower.stop:
	}
}

// eventsName reports whether any event in buffer names filename. Event
// layout from inotify(7):
//
//	struct inotify_event {
//	    int32_t  wd;     // offset 0
//	    uint32_t mask;   // offset 4
//	    uint32_t cookie; // offset 8
//	    uint32_t len;    // offset 12
//	    char     name[]; // offset 16, null-padded
//	};
func eventsName(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		name := buffer[offset+unix.SizeofInotifyEvent : offset+eventSize]
		if end := bytes.IndexByte(name, 0); end >= 0 {
			name = name[:end]
		}
		if string(name) == filename {
			return true
		}
		offset += eventSize
	}
	return false
}

// drainEvents discards queued events so a burst produces one read.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
