package ai

import (
	"context"
	"time"

	"alcyxob/fitlocal/internal/domain"
	"alcyxob/fitlocal/internal/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	opGeneratePlan   = "generate_plan"
	opGenerateReview = "generate_review"
)

type instrumentedGenerator struct {
	next    Generator
	metrics *metrics.Manager
}

// WithMetrics records duration and failures of every call to next.
func WithMetrics(next Generator, m *metrics.Manager) Generator {
	if m == nil {
		return next
	}
	return &instrumentedGenerator{next: next, metrics: m}
}

func (g *instrumentedGenerator) observe(op string, begin time.Time, err error) {
	g.metrics.HistAIDuration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
	if err != nil {
		g.metrics.CounterAIFailures.WithLabelValues(op).Inc()
		log.WithError(err).Errorf("%s failed", op)
	}
}

func (g *instrumentedGenerator) GeneratePlan(ctx context.Context, req PlanRequest) (doc *domain.PlanDocument, err error) {
	defer func(begin time.Time) { g.observe(opGeneratePlan, begin, err) }(time.Now())
	return g.next.GeneratePlan(ctx, req)
}

func (g *instrumentedGenerator) GenerateReview(ctx context.Context, req ReviewRequest) (result *domain.ReviewResult, err error) {
	defer func(begin time.Time) { g.observe(opGenerateReview, begin, err) }(time.Now())
	return g.next.GenerateReview(ctx, req)
}
