package songrec

import "time"

// Query is a recommendation request. Empty hints add no constraint;
// a query with both hints empty returns no results.
type Query struct {
	Artist string // case-insensitive substring of the artist
	Genre  string // case-insensitive substring of the genre or subgenre
	Limit  *int   // nil means the default limit; 0 returns nothing
}

// Limit returns a pointer to n for Query.Limit.
func Limit(n int) *int { return &n }

// Recommendation is one ranked result.
type Recommendation struct {
	ID     string
	Title  string
	Artist string
	Genre  string
	Year   *int // not present in the current datasets
}

// Stats describes the loaded catalog and the last load attempt.
type Stats struct {
	Version     uint64
	Songs       int
	LoadedAt    time.Time
	Skipped     int // malformed rows dropped
	Dupes       int // rows dropped by WithDedupe
	LastAttempt time.Time
	LastError   string
}
