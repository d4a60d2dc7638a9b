// Package chi is the HTTP transport of the recommendation service.
package chi

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/songrec/internal/domain"
	domcat "github.com/kailas-cloud/songrec/internal/domain/catalog"
	"github.com/kailas-cloud/songrec/internal/domain/recommend/item"
	"github.com/kailas-cloud/songrec/internal/domain/recommend/query"
	logpkg "github.com/kailas-cloud/songrec/internal/logger"
	healthuc "github.com/kailas-cloud/songrec/internal/usecase/health"
)

// sampleSize is the number of records returned by GET /songs.
const sampleSize = 5

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Recommender answers recommendation queries.
type Recommender interface {
	Recommend(ctx context.Context, q *query.Query) ([]item.Item, error)
}

// SnapshotReader exposes the current catalog snapshot.
type SnapshotReader interface {
	Snapshot() domcat.Snapshot
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server implements the HTTP handlers.
type Server struct {
	recommend     Recommender
	catalog       SnapshotReader
	health        HealthChecker
	queryOpts     []query.Option
	greeting      string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend Recommender,
	catalog SnapshotReader,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		catalog:   catalog,
		health:    health,
		greeting:  "Hello from songrec",
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeBadRequest),
		sentinelHandler(domain.ErrCatalogEmpty, http.StatusServiceUnavailable, ErrorCodeServiceUnavailable),
	}
	return s
}

// WithLimits sets the default and maximum result counts for /recommendations.
func (s *Server) WithLimits(defaultLimit, maxLimit int) *Server {
	s.queryOpts = []query.Option{query.WithDefaultLimit(defaultLimit), query.WithMaxLimit(maxLimit)}
	return s
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: s.greeting})
}

// ListSongs handles GET /songs: a small sample of the loaded catalog.
func (s *Server) ListSongs(w http.ResponseWriter, _ *http.Request) {
	head := s.catalog.Snapshot().Head(sampleSize)
	resp := make([]SongResponse, len(head))
	for i := range head {
		resp[i] = songToResponse(&head[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Recommendations handles GET /recommendations?artist=&genre=&limit=.
// q fills whichever of artist and genre is not given explicitly.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "limit must be a non-negative integer")
		return
	}

	artist, genre := params.Get("artist"), params.Get("genre")
	if q := params.Get("q"); q != "" {
		if !params.Has("artist") {
			artist = q
		}
		if !params.Has("genre") {
			genre = q
		}
	}

	q, err := query.New(artist, genre, limit, s.queryOpts...)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items, err := s.recommend.Recommend(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := make([]RecommendationItem, len(items))
	for i := range items {
		resp[i] = itemToResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	snap := s.catalog.Snapshot()

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	resp := HealthResponse{
		Status:  string(report.Status),
		Songs:   report.Songs,
		Version: snap.Version(),
		Checks:  checks,
	}
	if !snap.IsEmpty() {
		loadedAt := snap.LoadedAt()
		resp.LoadedAt = &loadedAt
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, resp)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message without exposing internals.
// Query validation errors carry user-facing detail and are passed through.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrCatalogEmpty,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler creates an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
