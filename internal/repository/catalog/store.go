// Package catalog holds the in-memory song catalog.
package catalog

import (
	"sync"
	"sync/atomic"
	"time"

	domcat "github.com/kailas-cloud/songrec/internal/domain/catalog"
	"github.com/kailas-cloud/songrec/internal/domain/song"
)

// Store keeps the current catalog snapshot. Readers load the snapshot pointer
// without locking; Load builds a new snapshot and swaps it in one step.
type Store struct {
	current atomic.Pointer[domcat.Snapshot]

	mu      sync.Mutex // serializes version assignment between writers
	version uint64
	now     func() time.Time
}

// New creates a store holding the empty snapshot.
func New() *Store {
	s := &Store{now: time.Now}
	s.current.Store(&domcat.Snapshot{})
	return s
}

// Load replaces the current snapshot with songs. Duplicates are kept as-is.
func (s *Store) Load(songs []song.Song) domcat.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	snap := domcat.NewSnapshot(songs, s.version, s.now())
	s.current.Store(&snap)
	return snap
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() domcat.Snapshot {
	return *s.current.Load()
}

// Len returns the number of records in the current snapshot.
func (s *Store) Len() int {
	return s.current.Load().Len()
}
