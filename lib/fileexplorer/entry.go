// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fileexplorer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// EntryKind classifies a listing entry.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindParent
	KindSymlink
)

// Entry is one row of a directory listing.
type Entry struct {
	Name string
	Path string
	Kind EntryKind

	// Size is the file size in bytes. Zero for anything but files.
	Size int64

	// Target is where a symlink points, when it could be read.
	Target string
}

// IsDir reports whether the entry is a directory or the parent link.
func (entry Entry) IsDir() bool {
	return entry.Kind == KindDirectory || entry.Kind == KindParent
}

// Selectable reports whether the entry can be marked. Only regular
// files can.
func (entry Entry) Selectable() bool {
	return entry.Kind == KindFile
}

// Extension returns the lower-cased extension without the dot.
func (entry Entry) Extension() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name), "."))
}

// ReadEntries lists directory: the parent link first when directory
// has a parent, then subdirectories, then files and symlinks, each
// group ordered by case-folded name. Names starting with "." are
// skipped unless showHidden is set. Symlinks are not followed.
func ReadEntries(directory string, showHidden bool) ([]Entry, error) {
	directory = filepath.Clean(directory)
	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", directory, err)
	}

	var directories, files []Entry
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		entry := Entry{Name: name, Path: filepath.Join(directory, name)}
		switch {
		case dirEntry.Type()&os.ModeSymlink != 0:
			entry.Kind = KindSymlink
			entry.Target, _ = os.Readlink(entry.Path)
		case dirEntry.IsDir():
			entry.Kind = KindDirectory
		default:
			entry.Kind = KindFile
			// A file removed between ReadDir and Info keeps size 0.
			if info, err := dirEntry.Info(); err == nil {
				entry.Size = info.Size()
			}
		}
		if entry.IsDir() {
			directories = append(directories, entry)
		} else {
			files = append(files, entry)
		}
	}
	sortByFoldedName(directories)
	sortByFoldedName(files)

	entries := make([]Entry, 0, len(directories)+len(files)+1)
	if parent := filepath.Dir(directory); parent != directory {
		entries = append(entries, Entry{Name: "..", Path: parent, Kind: KindParent})
	}
	entries = append(entries, directories...)
	return append(entries, files...), nil
}

func sortByFoldedName(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}
