package nbhttp

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_RecordsDispatches(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantOutcome string
	}{
		{
			name:        "given success dispatch, then counted under success",
			status:      http.StatusOK,
			wantOutcome: "success",
		},
		{
			name:        "given failure dispatch, then counted under failure",
			status:      http.StatusBadGateway,
			wantOutcome: "failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := prometheus.NewRegistry()
			mc := NewMetricsCollectorWithRegistry(registry)
			mock := NewMockTransport().StubResponse(tt.status, "body")

			cfg := NewDispatchConfig(WithMetrics(mc))
			req := CreateRequest(http.MethodGet, "https://example.com/metered")

			outcome, err := SendWith(context.Background(), mock.Client(), cfg, req)
			require.NoError(t, err)

			statusCode := outcome.StatusCode
			counter := mc.dispatchesTotal.WithLabelValues(http.MethodGet, statusCode, tt.wantOutcome)
			assert.Equal(t, float64(1), testutil.ToFloat64(counter))

			// Exactly one size observation per dispatch.
			count := testutil.CollectAndCount(mc.payloadBytes, "nbhttp_payload_bytes")
			assert.Equal(t, 1, count)

			// In-flight gauge returns to zero after the call.
			gauge := mc.inFlight.WithLabelValues(http.MethodGet)
			assert.Equal(t, float64(0), testutil.ToFloat64(gauge))
		})
	}
}

func TestMetricsCollector_TypedPath(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)
	mock := NewMockTransport().StubJSON(http.StatusOK, user{ID: 1, Name: "n"})

	cfg := NewDispatchConfig(WithMetrics(mc))
	req := CreateRequest(http.MethodGet, "https://example.com/typed")

	_, err := SendTypedWith[user](context.Background(), mock.Client(), cfg, req)
	require.NoError(t, err)

	counter := mc.dispatchesTotal.WithLabelValues(http.MethodGet, "200", "success")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMetricsCollector_NilIsNoop(t *testing.T) {
	var mc *MetricsCollector

	assert.NotPanics(t, func() {
		mc.recordDispatch(http.MethodGet, "200", true, 10)
		mc.dispatchStarted(http.MethodGet)
		mc.dispatchFinished(http.MethodGet)
	})
}
