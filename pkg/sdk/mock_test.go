package songrec

import (
	"context"

	"github.com/kailas-cloud/songrec/internal/domain/recommend/item"
	"github.com/kailas-cloud/songrec/internal/domain/recommend/query"
	healthuc "github.com/kailas-cloud/songrec/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/songrec/internal/usecase/ingest"
)

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	recommendFn func(ctx context.Context, q *query.Query) ([]item.Item, error)
}

func (m *mockRecommendUC) Recommend(ctx context.Context, q *query.Query) ([]item.Item, error) {
	return m.recommendFn(ctx, q)
}

// --- ingestUseCase mock ---

type mockIngestUC struct {
	loadFn   func(ctx context.Context) (ingestuc.Stats, error)
	reloadFn func(ctx context.Context) (ingestuc.Stats, error)
	stats    ingestuc.Stats
}

func (m *mockIngestUC) Load(ctx context.Context) (ingestuc.Stats, error) {
	return m.loadFn(ctx)
}

func (m *mockIngestUC) Reload(ctx context.Context) (ingestuc.Stats, error) {
	return m.reloadFn(ctx)
}

func (m *mockIngestUC) Stats() ingestuc.Stats {
	return m.stats
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- helpers ---

func testClient(rec recommendUseCase, ing ingestUseCase, health healthUseCase) *Client {
	return &Client{
		recSvc:    rec,
		ingestSvc: ing,
		healthSvc: health,
	}
}
