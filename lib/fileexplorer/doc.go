// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fileexplorer is a directory browser with multi-selection.
//
// The listing starts with a ".." entry (except at the filesystem root),
// then directories, then everything else, each group sorted by name
// without regard to case. Dot-files are hidden until toggled on.
// Regular files can be marked into a selection set that survives
// changing directory; directories cannot be marked.
//
// Typing "/" opens a fuzzy filter over the names of the current
// directory. Enter on a directory descends into it, backspace goes up,
// and enter on a file emits [ChosenMsg].
//
// A [Watcher] built on fsnotify reports changes to the directory being
// shown. Feeding its [ChangedMsg] back into the model reloads the
// listing while keeping the cursor on the same name.
package fileexplorer
