// Package remote downloads dataset files over HTTP or from the local filesystem.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/songrec/internal/domain"
	"github.com/kailas-cloud/songrec/internal/metrics"
)

// Defaults for zero Config fields.
const (
	DefaultTimeout          = 2 * time.Minute
	DefaultMaxBytes         = 256 << 20
	DefaultMaxRetries       = 3
	DefaultRetryBaseDelay   = time.Second
	DefaultBreakerFailures  = 3
	DefaultBreakerOpenDelay = time.Minute
)

// Config holds fetcher settings.
type Config struct {
	Timeout          time.Duration // per attempt
	MaxBytes         int64
	MaxRetries       int
	RetryBaseDelay   time.Duration
	BreakerFailures  uint32 // consecutive failed fetches before the breaker opens
	BreakerOpenDelay time.Duration
	Client           *http.Client
	Logger           *zap.Logger
}

// Fetcher downloads whole dataset files. Transient failures (network errors,
// 429 and 5xx) are retried with exponential backoff; repeated failed fetches
// open a circuit breaker that fails fast until BreakerOpenDelay elapses.
type Fetcher struct {
	client  *http.Client
	cfg     Config
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
}

// NewFetcher creates a Fetcher, filling zero Config fields with defaults.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = DefaultBreakerFailures
	}
	if cfg.BreakerOpenDelay <= 0 {
		cfg.BreakerOpenDelay = DefaultBreakerOpenDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}

	f := &Fetcher{client: client, cfg: cfg, logger: logger}
	f.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "dataset-fetch",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled caller says nothing about the remote's health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return f
}

// BreakerState returns the circuit breaker state for health reporting.
func (f *Fetcher) BreakerState() string {
	return f.breaker.State().String()
}

// Fetch returns the full content at source. source is an http(s) URL, a
// file:// URL or a plain filesystem path.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: parse source %q: %v", domain.ErrDatasetUnavailable, source, err)
	}

	switch u.Scheme {
	case "http", "https":
	case "file":
		return f.readFile(u.Path)
	case "":
		return f.readFile(source)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", domain.ErrDatasetUnavailable, u.Scheme)
	}

	start := time.Now()
	data, err := f.breaker.Execute(func() ([]byte, error) {
		return f.fetchWithRetry(ctx, source)
	})
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.DatasetFetchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", domain.ErrCircuitOpen, err)
		}
		return nil, err
	}
	metrics.DatasetBytesTotal.Add(float64(len(data)))
	return data, nil
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	clean := filepath.Clean(path)
	st, err := os.Stat(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatasetUnavailable, err)
	}
	if st.Size() > f.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", domain.ErrDatasetUnavailable, clean, st.Size(), f.cfg.MaxBytes)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatasetUnavailable, err)
	}
	return data, nil
}

// fetchWithRetry performs up to MaxRetries+1 attempts.
func (f *Fetcher) fetchWithRetry(ctx context.Context, source string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := f.cfg.RetryBaseDelay << (attempt - 1)
			f.logger.Info("Retrying dataset fetch",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch dataset: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}

		data, retryable, err := f.fetchOnce(ctx, source)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

// fetchOnce performs a single GET and reports whether a failure is worth retrying.
func (f *Fetcher) fetchOnce(ctx context.Context, source string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("%w: new request: %v", domain.ErrDatasetUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", domain.ErrDatasetUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
		return nil, retryable, fmt.Errorf("%w: HTTP %d: %s", domain.ErrDatasetUnavailable, resp.StatusCode, string(body))
	}

	if resp.ContentLength > f.cfg.MaxBytes {
		return nil, false, fmt.Errorf("%w: content length %d exceeds max %d",
			domain.ErrDatasetUnavailable, resp.ContentLength, f.cfg.MaxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("%w: read body: %w", domain.ErrDatasetUnavailable, err)
	}
	if int64(len(data)) > f.cfg.MaxBytes {
		return nil, false, fmt.Errorf("%w: body exceeds max %d bytes", domain.ErrDatasetUnavailable, f.cfg.MaxBytes)
	}
	return data, false, nil
}
