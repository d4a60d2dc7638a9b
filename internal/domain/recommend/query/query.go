package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/songrec/internal/domain"
)

// Query parameter limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query is a validated recommendation query.
// Artist and genre hints are independent even when a caller fills both from one input.
type Query struct {
	artistHint string
	genreHint  string
	limit      int
}

type settings struct {
	defaultLimit int
	maxLimit     int
}

// Option adjusts limit defaults during validation.
type Option func(*settings)

// WithDefaultLimit overrides the limit used when the caller omits one.
func WithDefaultLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithMaxLimit overrides the cap applied to the limit.
func WithMaxLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// New validates and normalizes query parameters. Hints of any length are accepted.
// Hints are lower-cased; a nil limit means DefaultLimit; 0 is a valid limit that yields no results.
func New(artistHint, genreHint string, limit *int, opts ...Option) (Query, error) {
	st := settings{defaultLimit: DefaultLimit, maxLimit: MaxLimit}
	for _, o := range opts {
		o(&st)
	}

	n := st.defaultLimit
	if limit != nil {
		n = *limit
	}
	if n < 0 {
		return Query{}, fmt.Errorf("%w: limit must be >= 0, got %d", domain.ErrInvalidQuery, n)
	}
	if n > st.maxLimit {
		n = st.maxLimit
	}

	return Query{
		artistHint: strings.ToLower(artistHint),
		genreHint:  strings.ToLower(genreHint),
		limit:      n,
	}, nil
}

// ArtistHint returns the lower-cased artist hint ("" means no constraint).
func (q *Query) ArtistHint() string { return q.artistHint }

// GenreHint returns the lower-cased genre hint ("" means no constraint).
func (q *Query) GenreHint() string { return q.genreHint }

// Limit returns the maximum number of results.
func (q *Query) Limit() int { return q.limit }

// IsEmpty reports whether neither hint constrains the result.
func (q *Query) IsEmpty() bool { return q.artistHint == "" && q.genreHint == "" }
