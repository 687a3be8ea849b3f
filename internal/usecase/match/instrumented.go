package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	dommatch "github.com/kailas-cloud/jobmatch/internal/domain/match"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// InstrumentedAnalyzer wraps an Analyzer with Prometheus metrics and logging.
type InstrumentedAnalyzer struct {
	inner  dommatch.Analyzer
	logger *zap.Logger
}

var _ dommatch.Analyzer = (*InstrumentedAnalyzer)(nil)

// NewInstrumented wraps an analyzer with observability.
func NewInstrumented(inner dommatch.Analyzer, logger *zap.Logger) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{inner: inner, logger: logger}
}

// Analyze delegates to the inner analyzer and records outcome, latency and score.
func (a *InstrumentedAnalyzer) Analyze(
	ctx context.Context, jobDescription, resume string, topN int,
) (dommatch.Result, error) {
	start := time.Now()
	result, err := a.inner.Analyze(ctx, jobDescription, resume, topN)
	duration := time.Since(start)

	metrics.MatchDuration.Observe(duration.Seconds())

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.MatchRequestsTotal.WithLabelValues("invalid_input").Inc()
		a.logger.Debug("Match rejected", zap.Error(err))
		return dommatch.Result{}, err
	case err != nil:
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		a.logger.Error("Match failed", zap.Duration("duration", duration), zap.Error(err))
		return dommatch.Result{}, fmt.Errorf("analyze: %w", err)
	}

	metrics.MatchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.MatchSimilarity.Observe(result.Similarity())

	a.logger.Debug("Match completed",
		zap.Duration("duration", duration),
		zap.Float64("similarity", result.Similarity()),
		zap.Int("found", len(result.FoundTerms())),
		zap.Int("missing", len(result.MissingTerms())),
	)
	return result, nil
}
