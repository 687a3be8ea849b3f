package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the optional cache is down; matching still works.
	Degraded Status = "degraded"
	// Unhealthy indicates the matcher itself is broken.
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
	Checks map[string]CheckResult
}

// probeText is compared against itself; any working matcher scores it 1.
const probeText = "Senior Go engineer with Kubernetes, PostgreSQL and distributed systems experience"

// Service coordinates health checks.
type Service struct {
	matcher MatchProber
	cache   CachePinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(matcher MatchProber, cache CachePinger) *Service {
	return &Service{matcher: matcher, cache: cache}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	score, err := s.matcher.Analyze(ctx, probeText, probeText, 1)
	if err != nil || score != 1 {
		checks["matcher"] = CheckError
		status = Unhealthy
	} else {
		checks["matcher"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["cache"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
