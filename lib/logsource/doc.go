// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logsource feeds log files into the log viewer.
//
// [ReadLines] and [Snapshot] load a whole file. Files ending in .gz,
// .zst, or .lz4 are decompressed transparently, so rotated archives
// open the same way as the live log.
//
// [Follow] tails a plain file with inotify and delivers appended lines
// as [LinesMsg] batches. The watch is on the parent directory, so a
// logrotate-style rename followed by a fresh file is picked up; a file
// that shrinks or changes inode is re-read from the start and the
// batch is marked Reset. A line is only delivered once its newline has
// been written.
//
// [Listen] bridges a Follower into bubbletea. Each call yields one
// batch; the program re-issues Listen after handling it:
//
//	case logsource.LinesMsg:
//	    viewer, cmd = viewer.Update(message)
//	    return model, tea.Batch(cmd, logsource.Listen(follower))
package logsource
