package songrec

import "github.com/kailas-cloud/songrec/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrCatalogEmpty       = domain.ErrCatalogEmpty
	ErrDatasetUnavailable = domain.ErrDatasetUnavailable
	ErrUnsupportedFormat  = domain.ErrUnsupportedFormat
	ErrCircuitOpen        = domain.ErrCircuitOpen
)
