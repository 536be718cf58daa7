// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/tuikit/lib/clock"
	"github.com/bureau-foundation/tuikit/lib/codec"
)

// CurrentVersion is the snapshot format written by [Store.Save].
// Snapshots with any other version are ignored on load.
const CurrentVersion = 1

// fileExtension names snapshot files on disk.
const fileExtension = ".cbor"

// viewDomainKey separates view-key digests from any other BLAKE3 use.
// The bytes are the ASCII domain name, zero-padded to 32 bytes.
var viewDomainKey = [32]byte{
	't', 'u', 'i', 'k', 'i', 't', '.', 's', 'e', 's', 's', 'i', 'o', 'n', '.', 'v',
	'i', 'e', 'w', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Snapshot is the persisted UI state of one view.
type Snapshot struct {
	Version int `cbor:"version"`

	// SelectedID is the identifier of the selected row (a tree node ID,
	// a file path, a list item key). Restoring by ID survives content
	// changes that would shift a bare index.
	SelectedID string `cbor:"selected_id,omitempty"`

	// Cursor is the selected row index, used when SelectedID is empty
	// or no longer present.
	Cursor int `cbor:"cursor"`

	// Collapsed lists the IDs of collapsed tree nodes.
	Collapsed []string `cbor:"collapsed,omitempty"`

	// Hidden records whether hidden entries were shown.
	Hidden bool `cbor:"hidden,omitempty"`

	SavedAt time.Time `cbor:"saved_at"`
}

// Store keeps snapshots as files in one directory, one file per view.
type Store struct {
	directory string
	clock     clock.Clock
}

// Open returns a store rooted at directory, creating it (mode 0700)
// when missing.
func Open(directory string) (*Store, error) {
	if directory == "" {
		return nil, errors.New("session state directory is empty")
	}
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return nil, fmt.Errorf("creating session state directory: %w", err)
	}
	return &Store{directory: directory, clock: clock.Real()}, nil
}

// SetClock replaces the time source stamping SavedAt.
func (store *Store) SetClock(source clock.Clock) {
	store.clock = source
}

// Directory returns the directory holding the snapshot files.
func (store *Store) Directory() string {
	return store.directory
}

// Path returns the file a view's snapshot is stored in. The name is
// the keyed BLAKE3 digest of the view key, so arbitrary keys (paths,
// titles) map to safe, fixed-length file names.
func (store *Store) Path(view string) string {
	hasher, err := blake3.NewKeyed(viewDomainKey[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("session: BLAKE3 keyed hasher: " + err.Error())
	}
	hasher.Write([]byte(view))
	return filepath.Join(store.directory, hex.EncodeToString(hasher.Sum(nil))+fileExtension)
}

// Load reads the snapshot of view. ok is false, with a nil error, when
// no snapshot exists or it was written in another format version.
func (store *Store) Load(view string) (snapshot Snapshot, ok bool, err error) {
	path := store.Path(view)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("reading session snapshot %s: %w", path, err)
	}
	if err := codec.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, false, fmt.Errorf("decoding session snapshot %s: %w", path, err)
	}
	if snapshot.Version != CurrentVersion {
		return Snapshot{}, false, nil
	}
	return snapshot, true, nil
}

// Save writes the snapshot of view, stamping Version and SavedAt. The
// file is written to a temporary name, synced, and renamed into place,
// so readers never see a partial snapshot.
func (store *Store) Save(view string, snapshot Snapshot) error {
	snapshot.Version = CurrentVersion
	snapshot.SavedAt = store.clock.Now().UTC()
	data, err := codec.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding session snapshot: %w", err)
	}

	path := store.Path(view)
	temporary, err := os.CreateTemp(store.directory, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary session snapshot: %w", err)
	}
	temporaryPath := temporary.Name()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("writing temporary session snapshot: %w", err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("syncing temporary session snapshot: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("closing temporary session snapshot: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("renaming session snapshot into place: %w", err)
	}
	return nil
}

// Delete removes the snapshot of view. A missing snapshot is not an
// error.
func (store *Store) Delete(view string) error {
	if err := os.Remove(store.Path(view)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session snapshot: %w", err)
	}
	return nil
}
