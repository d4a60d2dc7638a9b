package recommend

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kailas-cloud/songrec/internal/domain/recommend/item"
	"github.com/kailas-cloud/songrec/internal/domain/recommend/query"
	"github.com/kailas-cloud/songrec/internal/metrics"
)

// cacheKey identifies a result list. The snapshot version makes every reload
// miss the entries computed for older snapshots.
type cacheKey struct {
	version uint64
	artist  string
	genre   string
	limit   int
}

// Service ranks catalog records against artist/genre hints.
type Service struct {
	catalog SnapshotReader
	cache   *lru.Cache[cacheKey, []item.Item]
}

// New creates a recommendation service over the given catalog.
func New(catalog SnapshotReader) *Service {
	return &Service{catalog: catalog}
}

// WithCache enables an LRU cache of up to size result lists. size <= 0 disables caching.
func (s *Service) WithCache(size int) (*Service, error) {
	if size <= 0 {
		s.cache = nil
		return s, nil
	}
	c, err := lru.New[cacheKey, []item.Item](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	s.cache = c
	return s, nil
}

// Recommend returns up to q.Limit() items ordered by descending match score.
// A query with no hints, or one matching nothing, yields an empty list; the only
// error is a cancelled context.
func (s *Service) Recommend(ctx context.Context, q *query.Query) ([]item.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	// One snapshot per call: results never mix records from two loads.
	snap := s.catalog.Snapshot()

	if q.IsEmpty() || q.Limit() == 0 || snap.IsEmpty() {
		observe(0)
		return []item.Item{}, nil
	}

	key := cacheKey{version: snap.Version(), artist: q.ArtistHint(), genre: q.GenreHint(), limit: q.Limit()}
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			metrics.RecommendCacheTotal.WithLabelValues("hit").Inc()
			observe(len(cached))
			return cloneItems(cached), nil
		}
		metrics.RecommendCacheTotal.WithLabelValues("miss").Inc()
	}

	ranked := rank(snap, q.ArtistHint(), q.GenreHint())
	if len(ranked) > q.Limit() {
		ranked = ranked[:q.Limit()]
	}

	items := make([]item.Item, len(ranked))
	for i, c := range ranked {
		items[i] = item.FromSong(snap.At(c.pos))
	}

	if s.cache != nil {
		s.cache.Add(key, cloneItems(items))
	}
	observe(len(items))
	return items, nil
}

func observe(n int) {
	outcome := "matched"
	if n == 0 {
		outcome = "empty"
	}
	metrics.RecommendQueriesTotal.WithLabelValues(outcome).Inc()
	metrics.RecommendResultSize.Observe(float64(n))
}

func cloneItems(in []item.Item) []item.Item {
	out := make([]item.Item, len(in))
	copy(out, in)
	return out
}
