package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterRequests.With(prometheus.Labels{"method": "GET", "status": "200"}).Inc()
	m.CounterRequests.With(prometheus.Labels{"method": "GET", "status": "200"}).Inc()
	m.CounterRequests.With(prometheus.Labels{"method": "POST", "status": "400"}).Inc()
	m.CounterPlansGenerated.Inc()
	m.CounterAIFailures.WithLabelValues("generate_plan").Inc()
	m.HistRequestDuration.Observe(0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("POST", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterPlansGenerated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CounterPlansActivated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterAIFailures.WithLabelValues("generate_plan")))

	count, err := testutil.GatherAndCount(reg, "fitlocal_test_server_request")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewManager_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewManager("fitlocal", "server", reg)
	assert.Panics(t, func() {
		NewManager("fitlocal", "server", reg)
	})
}

func TestSetupPrometheus(t *testing.T) {
	reg := SetupPrometheus()
	NewManager("fitlocal", "main", reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["go_build_info"])
}
