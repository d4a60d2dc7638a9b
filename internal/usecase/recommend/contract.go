package recommend

import domcat "github.com/kailas-cloud/songrec/internal/domain/catalog"

// SnapshotReader exposes the current catalog snapshot.
type SnapshotReader interface {
	Snapshot() domcat.Snapshot
}
