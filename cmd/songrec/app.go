package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/songrec/internal/config"
	"github.com/kailas-cloud/songrec/internal/db"
	dbRedis "github.com/kailas-cloud/songrec/internal/db/redis"
	logpkg "github.com/kailas-cloud/songrec/internal/logger"
	"github.com/kailas-cloud/songrec/internal/metrics"
	catalogrepo "github.com/kailas-cloud/songrec/internal/repository/catalog"
	"github.com/kailas-cloud/songrec/internal/repository/datasetcache"
	"github.com/kailas-cloud/songrec/internal/transport/remote"
	healthuc "github.com/kailas-cloud/songrec/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/songrec/internal/usecase/ingest"
	recommenduc "github.com/kailas-cloud/songrec/internal/usecase/recommend"
)

// app is the composition root shared by serve and recommend.
type app struct {
	catalog   *catalogrepo.Store
	cache     db.Store // nil when cache.driver is none
	fetcher   *remote.Fetcher
	ingest    *ingestuc.Service
	recommend *recommenduc.Service
	health    *healthuc.Service
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{catalog: catalogrepo.New()}

	a.fetcher = remote.NewFetcher(remote.Config{
		Timeout:    time.Duration(cfg.Dataset.FetchTimeoutSec) * time.Second,
		MaxBytes:   cfg.Dataset.MaxBytes,
		MaxRetries: cfg.Dataset.MaxRetries,
		Logger:     logger,
	})

	var fetcher ingestuc.Fetcher = a.fetcher
	if cfg.Cache.Enabled() {
		store, err := newCacheStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		a.cache = store
		fetcher = datasetcache.New(
			a.fetcher, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.DatasetCacheTotal, logger,
		)
	}

	ingest, err := ingestuc.New(fetcher, a.catalog, ingestuc.Config{
		Source:  cfg.Dataset.URL,
		Format:  cfg.Dataset.Format,
		Dedupe:  cfg.Dataset.Dedupe,
		MaxRows: cfg.Dataset.MaxRows,
	}, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("create ingestion service: %w", err)
	}
	a.ingest = ingest

	a.recommend, err = recommenduc.New(a.catalog).WithCache(cfg.Recommend.ResultCacheSize)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Pass a nil interface, not a typed nil pointer, when no cache is configured.
	var pinger healthuc.CachePinger
	if a.cache != nil {
		pinger = a.cache
	}
	a.health = healthuc.New(a.catalog, pinger, a.fetcher)

	return a, nil
}

func newCacheStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Password: cfg.Cache.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s cache store: %w", cfg.Cache.Driver, err)
	}

	timeout := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s cache not ready: %w", cfg.Cache.Driver, err)
	}
	logger.Info("Connected to dataset cache",
		zap.String("driver", cfg.Cache.Driver),
		zap.Strings("addrs", cfg.Cache.Addrs),
	)
	return store, nil
}

// Close releases the cache connection, if any.
func (a *app) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

func loadConfig() (string, config.Config, *zap.Logger, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return env, cfg, logger, nil
}
