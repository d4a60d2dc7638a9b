package songrec

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	source  string
	format  string
	dedupe  bool
	maxRows int

	fetchTimeout time.Duration
	maxRetries   int
	maxBytes     int64

	cacheDriver   string // "valkey", "redis" or empty
	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	resultCacheSize int
	defaultLimit    int
	maxLimit        int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithDataset sets the dataset location: an http(s) URL, a file:// URL or a path.
func WithDataset(source string) Option {
	return optionFunc(func(c *clientConfig) {
		c.source = source
	})
}

// WithFormat forces the dataset format ("csv" or "parquet").
// By default it is detected from the dataset extension.
func WithFormat(format string) Option {
	return optionFunc(func(c *clientConfig) {
		c.format = format
	})
}

// WithDedupe drops records whose track_id was already seen.
func WithDedupe() Option {
	return optionFunc(func(c *clientConfig) {
		c.dedupe = true
	})
}

// WithMaxRows stops parsing after n accepted records.
func WithMaxRows(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxRows = n
	})
}

// WithFetch tunes remote downloads: per-attempt timeout and retry count.
func WithFetch(timeout time.Duration, maxRetries int) Option {
	return optionFunc(func(c *clientConfig) {
		c.fetchTimeout = timeout
		c.maxRetries = maxRetries
	})
}

// WithMaxBytes caps the dataset size.
func WithMaxBytes(n int64) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBytes = n
	})
}

// WithValkeyCache caches downloaded datasets in a Valkey instance for ttl.
func WithValkeyCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "valkey"
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithRedisCache caches downloaded datasets in a Redis instance for ttl.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "redis"
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithResultCache keeps up to size recent result lists in an LRU.
// Entries are tied to the catalog version, so a reload invalidates them.
func WithResultCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.resultCacheSize = size
	})
}

// WithLimits sets the default result count (used when Query.Limit is nil)
// and the hard cap. Defaults: 20 and 100.
func WithLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
