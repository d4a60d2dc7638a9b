package catalog

import (
	"time"

	"github.com/kailas-cloud/songrec/internal/domain/song"
)

// Snapshot is one immutable, fully loaded version of the catalog.
// The zero value is the empty snapshot that exists before the first load.
type Snapshot struct {
	songs    []song.Song
	version  uint64
	loadedAt time.Time
}

// NewSnapshot creates a snapshot that owns a copy of songs.
func NewSnapshot(songs []song.Song, version uint64, loadedAt time.Time) Snapshot {
	owned := make([]song.Song, len(songs))
	copy(owned, songs)
	return Snapshot{songs: owned, version: version, loadedAt: loadedAt}
}

// Len returns the number of records.
func (s Snapshot) Len() int { return len(s.songs) }

// IsEmpty reports whether the snapshot holds no records.
func (s Snapshot) IsEmpty() bool { return len(s.songs) == 0 }

// At returns the record at position i in load order.
func (s Snapshot) At(i int) *song.Song { return &s.songs[i] }

// Head returns up to n records from the start of the snapshot, copied.
func (s Snapshot) Head(n int) []song.Song {
	if n > len(s.songs) {
		n = len(s.songs)
	}
	if n <= 0 {
		return nil
	}
	out := make([]song.Song, n)
	copy(out, s.songs[:n])
	return out
}

// Version returns the load generation. 0 means never loaded.
func (s Snapshot) Version() uint64 { return s.version }

// LoadedAt returns the time the snapshot was installed.
func (s Snapshot) LoadedAt() time.Time { return s.loadedAt }
