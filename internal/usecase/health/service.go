package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an auxiliary component is failing; queries are still served.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog is empty and queries cannot be answered.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Songs  int
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogCounter
	cache   CachePinger
	breaker BreakerReporter
}

// New creates a Service. cache and breaker can be nil.
func New(catalog CatalogCounter, cache CachePinger, breaker BreakerReporter) *Service {
	return &Service{catalog: catalog, cache: cache, breaker: breaker}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	songs := s.catalog.Len()
	if songs == 0 {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.breaker != nil {
		if s.breaker.BreakerState() == "open" {
			checks["dataset_fetch"] = CheckError
		} else {
			checks["dataset_fetch"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks["catalog"] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Songs: songs, Checks: checks}
}
