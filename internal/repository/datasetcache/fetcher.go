// Package datasetcache caches raw dataset files in a key-value store.
package datasetcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/songrec/internal/db"
	"github.com/kailas-cloud/songrec/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "dataset:"

// fetcher is the wrapped dataset source.
type fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// store is the consumer interface for the dataset cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedFetcher serves remote datasets from the store when present.
// Local files are always read directly.
type CachedFetcher struct {
	inner      fetcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner fetcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedFetcher {
	return &CachedFetcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Fetch returns cached bytes for source or downloads and caches them.
// Store failures are logged and never fail the fetch.
func (c *CachedFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !isRemote(source) {
		return c.fetchInner(ctx, source)
	}

	key := cacheKey(source)
	if data, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		c.logger.Info("Dataset served from cache", zap.String("source", source), zap.Int("bytes", len(data)))
		return data, nil
	}
	c.incCache("miss")

	data, err := c.fetchInner(ctx, source)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, data)
	return data, nil
}

// Invalidate drops the cached copy of source so the next Fetch downloads it.
func (c *CachedFetcher) Invalidate(ctx context.Context, source string) error {
	if !isRemote(source) {
		return nil
	}
	if err := c.store.Del(ctx, cacheKey(source)); err != nil {
		return fmt.Errorf("invalidate dataset cache: %w", err)
	}
	return nil
}

func (c *CachedFetcher) fetchInner(ctx context.Context, source string) ([]byte, error) {
	data, err := c.inner.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	return data, nil
}

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedFetcher) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached dataset", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (c *CachedFetcher) putToCache(ctx context.Context, key string, data []byte) {
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache dataset", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(source string) string {
	h := sha256.Sum256([]byte(source))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
