package songrec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/songrec/internal/db"
	dbRedis "github.com/kailas-cloud/songrec/internal/db/redis"
	"github.com/kailas-cloud/songrec/internal/domain/recommend/item"
	"github.com/kailas-cloud/songrec/internal/domain/recommend/query"
	catalogrepo "github.com/kailas-cloud/songrec/internal/repository/catalog"
	"github.com/kailas-cloud/songrec/internal/repository/datasetcache"
	"github.com/kailas-cloud/songrec/internal/transport/remote"
	healthuc "github.com/kailas-cloud/songrec/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/songrec/internal/usecase/ingest"
	recommenduc "github.com/kailas-cloud/songrec/internal/usecase/recommend"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type recommendUseCase interface {
	Recommend(ctx context.Context, q *query.Query) ([]item.Item, error)
}

type ingestUseCase interface {
	Load(ctx context.Context) (ingestuc.Stats, error)
	Reload(ctx context.Context) (ingestuc.Stats, error)
	Stats() ingestuc.Stats
}

// Client is the songrec SDK entry point.
type Client struct {
	store     db.Store // nil without a dataset cache
	recSvc    recommendUseCase
	ingestSvc ingestUseCase
	healthSvc healthUseCase
	queryOpts []query.Option
	obs       *observer
}

// New creates a Client and loads the dataset. The provided context bounds
// the cache readiness check and the initial load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.source == "" {
		return nil, errors.New("songrec: dataset source required (use WithDataset)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.cacheDriver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("songrec: %s cache not ready: %w", cfg.cacheDriver, err)
		}
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	start := time.Now()
	stats, err := c.ingestSvc.Load(ctx)
	c.obs.observe("load", start, err, "songs", stats.Songs)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("songrec: initial load: %w", err)
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.cacheDriver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("songrec: create %s store: %w", cfg.cacheDriver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("songrec: unknown cache driver %q", cfg.cacheDriver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	catalog := catalogrepo.New()

	fetcher := remote.NewFetcher(remote.Config{
		Timeout:    cfg.fetchTimeout,
		MaxBytes:   cfg.maxBytes,
		MaxRetries: cfg.maxRetries,
	})

	var source ingestuc.Fetcher = fetcher
	if store != nil {
		source = datasetcache.New(fetcher, store, cfg.cacheTTL, nil, zap.NewNop())
	}

	ingestSvc, err := ingestuc.New(source, catalog, ingestuc.Config{
		Source:  cfg.source,
		Format:  cfg.format,
		Dedupe:  cfg.dedupe,
		MaxRows: cfg.maxRows,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("songrec: %w", err)
	}

	recSvc, err := recommenduc.New(catalog).WithCache(cfg.resultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("songrec: %w", err)
	}

	// Pass a nil interface, not a typed nil pointer, when no cache is configured.
	var pinger healthuc.CachePinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:     store,
		recSvc:    recSvc,
		ingestSvc: ingestSvc,
		healthSvc: healthuc.New(catalog, pinger, fetcher),
		queryOpts: []query.Option{
			query.WithDefaultLimit(cfg.defaultLimit),
			query.WithMaxLimit(cfg.maxLimit),
		},
		obs: obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Recommend returns songs ranked by how well they match q. Artist matches
// weigh more than genre matches; ties keep dataset order.
func (c *Client) Recommend(ctx context.Context, q Query) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err, "results", len(recs)) }()

	dq, err := query.New(q.Artist, q.Genre, q.Limit, c.queryOpts...)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	items, err := c.recSvc.Recommend(ctx, &dq)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	recs = make([]Recommendation, len(items))
	for i := range items {
		recs[i] = recommendationFromItem(&items[i])
	}
	return recs, nil
}

// Reload downloads the dataset again, bypassing the dataset cache, and swaps
// in the new catalog. On error the previous catalog stays in place.
func (c *Client) Reload(ctx context.Context) (stats Stats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err, "songs", stats.Songs) }()

	s, err := c.ingestSvc.Reload(ctx)
	stats = statsFromIngest(&s)
	if err != nil {
		return stats, fmt.Errorf("reload: %w", err)
	}
	return stats, nil
}

// Stats describes the current catalog.
func (c *Client) Stats() Stats {
	s := c.ingestSvc.Stats()
	return statsFromIngest(&s)
}

func recommendationFromItem(it *item.Item) Recommendation {
	r := Recommendation{
		ID:     it.ID(),
		Title:  it.Title(),
		Artist: it.Artist(),
		Genre:  it.Genre(),
	}
	if y, ok := it.Year(); ok {
		r.Year = &y
	}
	return r
}

func statsFromIngest(s *ingestuc.Stats) Stats {
	return Stats{
		Version:     s.Version,
		Songs:       s.Songs,
		LoadedAt:    s.LoadedAt,
		Skipped:     s.Skipped,
		Dupes:       s.Dupes,
		LastAttempt: s.LastAttempt,
		LastError:   s.LastError,
	}
}
