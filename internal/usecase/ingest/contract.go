package ingest

import (
	"context"

	domcat "github.com/kailas-cloud/songrec/internal/domain/catalog"
	"github.com/kailas-cloud/songrec/internal/domain/song"
)

// Fetcher retrieves raw dataset bytes.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// Invalidator is implemented by caching fetchers; Reload uses it to force a fresh download.
type Invalidator interface {
	Invalidate(ctx context.Context, source string) error
}

// Catalog is the snapshot store being populated.
type Catalog interface {
	Load(songs []song.Song) domcat.Snapshot
	Snapshot() domcat.Snapshot
}
