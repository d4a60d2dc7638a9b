package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed recommendation query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidSong signals a song record that violates its invariants.
	ErrInvalidSong = errors.New("invalid song")
	// ErrCatalogEmpty signals that no song records are loaded.
	ErrCatalogEmpty = errors.New("catalog is empty")
	// ErrDatasetUnavailable signals that the source dataset could not be fetched.
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	// ErrUnsupportedFormat signals an unknown dataset file format.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrCircuitOpen signals that dataset fetches are short-circuited after repeated failures.
	ErrCircuitOpen = errors.New("dataset fetch circuit open")
)
