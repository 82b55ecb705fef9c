package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return NewRecorder(reg, reg)
}

func TestObserveOrderAndCancel(t *testing.T) {
	r := newTestRecorder()

	r.ObserveOrder("BUY", "FILLED")
	r.ObserveOrder("BUY", "FILLED")
	r.ObserveOrder("SELL", "REJECTED")
	r.ObserveCancel("NOT_FOUND")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.orders.WithLabelValues("BUY", "FILLED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.orders.WithLabelValues("SELL", "REJECTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cancels.WithLabelValues("NOT_FOUND")))
}

func TestObserveAdapterCallCountsErrors(t *testing.T) {
	r := newTestRecorder()

	r.ObserveAdapterCall("mock", "get_snapshot", time.Millisecond, nil)
	r.ObserveAdapterCall("mock", "get_snapshot", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.adapterErrors.WithLabelValues("mock", "get_snapshot")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.adapterDurations))
}

func TestHandlerExposesCollectors(t *testing.T) {
	r := newTestRecorder()
	r.ObserveHTTP(http.MethodGet, "/v1/market/snapshot", http.StatusOK, 3*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `qmt_gateway_http_requests_total{method="GET",route="/v1/market/snapshot",status="200"} 1`)
}

func TestNewDefaultRecorder(t *testing.T) {
	assert.NotPanics(t, func() { NewDefaultRecorder() })
	assert.NotPanics(t, func() { NewDefaultRecorder() })
}
