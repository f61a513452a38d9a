package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests       *prometheus.CounterVec
	CounterPlansGenerated prometheus.Counter
	CounterPlansActivated prometheus.Counter
	CounterSessionsLogged prometheus.Counter
	CounterReviews        prometheus.Counter
	CounterAIFailures     *prometheus.CounterVec
	CounterHandlerPanics  prometheus.Counter
	CounterRateLimited    prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
	HistAIDuration      *prometheus.HistogramVec
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitlocal", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterPlansGenerated := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans_generated",
		Help:      "The total number of plans stored as pending",
	})
	counterPlansActivated := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans_activated",
		Help:      "The total number of pending plans activated",
	})
	counterSessionsLogged := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_logged",
		Help:      "The total number of logged workout sessions",
	})
	counterReviews := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reviews_generated",
		Help:      "The total number of generated progress reviews",
	})
	counterAIFailures := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "ai_failures",
		Help:      "The total number of failed generator calls",
	}, []string{"operation"})
	counterHandlerPanics := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimited := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited",
		Help:      "The total number of requests rejected by the rate limiter",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60, 180},
		Name:      "request_duration_seconds",
		Help:      "Total duration of requests in seconds",
	})
	histAIDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120, 240},
		Name:      "ai_call_duration_seconds",
		Help:      "Duration of generator calls in seconds",
	}, []string{"operation"})

	return &Manager{
		CounterRequests:       counterRequests,
		CounterPlansGenerated: counterPlansGenerated,
		CounterPlansActivated: counterPlansActivated,
		CounterSessionsLogged: counterSessionsLogged,
		CounterReviews:        counterReviews,
		CounterAIFailures:     counterAIFailures,
		CounterHandlerPanics:  counterHandlerPanics,
		CounterRateLimited:    counterRateLimited,
		GaugeRequests:         gaugeRequests,
		HistRequestDuration:   histReqDuration,
		HistAIDuration:        histAIDuration,
	}
}
