package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store answers but the index is missing.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckMissing indicates an absent resource.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped indicates a check that could not run.
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db    DBPinger
	index IndexChecker
}

// New creates a Service. index can be nil.
func New(db DBPinger, index IndexChecker) *Service {
	return &Service{db: db, index: index}
}

// Check pings the database and, when it answers, probes the search index.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		if s.index != nil {
			checks["index"] = CheckSkipped
		}
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.index != nil {
		ok, err := s.index.IndexExists(ctx)
		switch {
		case err != nil:
			checks["index"] = CheckError
			status = Degraded
		case !ok:
			checks["index"] = CheckMissing
			status = Degraded
		default:
			checks["index"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
