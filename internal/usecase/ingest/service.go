// Package ingest fetches and parses the song dataset into the catalog store.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/songrec/internal/dataset"
	"github.com/kailas-cloud/songrec/internal/domain"
	"github.com/kailas-cloud/songrec/internal/metrics"
)

// Config describes the dataset to ingest.
type Config struct {
	Source  string // http(s) URL, file:// URL or path
	Format  string // "csv", "parquet" or empty to detect from Source
	Dedupe  bool
	MaxRows int
}

// Stats describes the current snapshot and the most recent load attempt.
type Stats struct {
	Version     uint64
	Songs       int
	LoadedAt    time.Time
	Skipped     int
	Dupes       int
	LastAttempt time.Time
	LastError   string
}

// Service loads the dataset into the catalog. Loads are serialized.
type Service struct {
	fetcher Fetcher
	catalog Catalog
	source  string
	format  dataset.Format
	opts    dataset.Options
	logger  *zap.Logger
	now     func() time.Time

	mu    sync.Mutex
	stats Stats
}

// New creates an ingestion service. The dataset format is resolved up front
// so a misconfigured source fails before any download.
func New(fetcher Fetcher, catalog Catalog, cfg Config, logger *zap.Logger) (*Service, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("%w: dataset source is required", domain.ErrDatasetUnavailable)
	}
	format, err := dataset.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("dataset format: %w", err)
	}
	if format == "" {
		format, err = dataset.DetectFormat(cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("dataset format: %w", err)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		catalog: catalog,
		source:  cfg.Source,
		format:  format,
		opts:    dataset.Options{Dedupe: cfg.Dedupe, MaxRows: cfg.MaxRows},
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Load fetches, parses and swaps in a new snapshot. A dataset with no usable
// records returns ErrCatalogEmpty and leaves the current snapshot in place.
func (s *Service) Load(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Reload drops any cached copy of the dataset and loads it again.
func (s *Service) Reload(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv, ok := s.fetcher.(Invalidator); ok {
		if err := inv.Invalidate(ctx, s.source); err != nil {
			s.logger.Warn("Failed to invalidate dataset cache", zap.Error(err))
		}
	}
	return s.load(ctx)
}

// Stats returns the latest load statistics.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Service) load(ctx context.Context) (Stats, error) {
	start := s.now()
	s.stats.LastAttempt = start

	data, err := s.fetcher.Fetch(ctx, s.source)
	if err != nil {
		return s.fail(fmt.Errorf("load catalog: %w", err))
	}

	res, err := dataset.Parse(data, s.format, s.opts)
	if err != nil {
		return s.fail(fmt.Errorf("load catalog: parse %s: %w", s.format, err))
	}
	metrics.CatalogRowsSkippedTotal.Add(float64(res.Skipped))

	if len(res.Songs) == 0 {
		return s.fail(fmt.Errorf("load catalog: %w: %d rows skipped", domain.ErrCatalogEmpty, res.Skipped))
	}

	snap := s.catalog.Load(res.Songs)

	metrics.CatalogLoadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogSongs.Set(float64(snap.Len()))
	metrics.CatalogVersion.Set(float64(snap.Version()))

	s.stats = Stats{
		Version:     snap.Version(),
		Songs:       snap.Len(),
		LoadedAt:    snap.LoadedAt(),
		Skipped:     res.Skipped,
		Dupes:       res.Dupes,
		LastAttempt: start,
	}

	s.logger.Info("Catalog loaded",
		zap.String("source", s.source),
		zap.String("format", string(s.format)),
		zap.Uint64("version", snap.Version()),
		zap.Int("songs", snap.Len()),
		zap.Int("skipped", res.Skipped),
		zap.Int("dupes", res.Dupes),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", s.now().Sub(start)),
	)
	return s.stats, nil
}

// fail records a failed attempt. The previous snapshot and its stats stay current.
func (s *Service) fail(err error) (Stats, error) {
	metrics.CatalogLoadsTotal.WithLabelValues("error").Inc()
	s.stats.LastError = err.Error()
	s.logger.Error("Catalog load failed", zap.String("source", s.source), zap.Error(err))
	return s.stats, err
}
