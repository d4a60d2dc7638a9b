package health

import "context"

// CatalogCounter reports the number of records in the current snapshot.
type CatalogCounter interface {
	Len() int
}

// CachePinger checks dataset cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter exposes the dataset fetch circuit breaker state.
type BreakerReporter interface {
	BreakerState() string
}
