package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg, "alliance")
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "PlaceDefender", "DefenseService")
	m.RecordOperationAttempt(ctx, "PlaceDefender", "DefenseService")
	m.RecordOperationSuccess(ctx, "PlaceDefender", "DefenseService")
	m.RecordDomainFailure(ctx, "PlaceDefender", "DefenseService", "conflict")
	m.RecordOperationDuration(ctx, "PlaceDefender", "DefenseService", 15*time.Millisecond)

	pm := m.(*prometheusMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.attempts.WithLabelValues("DefenseService", "PlaceDefender")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.successes.WithLabelValues("DefenseService", "PlaceDefender")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.domainFailures.WithLabelValues("DefenseService", "PlaceDefender", "conflict")))
	assert.Equal(t, 0.0, testutil.ToFloat64(pm.failures.WithLabelValues("DefenseService", "PlaceDefender")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestNoop(t *testing.T) {
	m := NewNoop()
	assert.NotPanics(t, func() {
		m.RecordOperationAttempt(context.Background(), "op", "svc")
		m.RecordDomainFailure(context.Background(), "op", "svc", "not_found")
	})
}
