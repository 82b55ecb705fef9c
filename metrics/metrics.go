package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qmt_gateway"

// Recorder owns the gateway collectors. Each Recorder registers on its own
// Registerer so tests can build isolated instances.
type Recorder struct {
	gatherer prometheus.Gatherer

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	orders           *prometheus.CounterVec
	cancels          *prometheus.CounterVec
	adapterDurations *prometheus.HistogramVec
	adapterErrors    *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Recorder {
	r := &Recorder{
		gatherer: gatherer,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Order placements, by side and resulting status",
		}, []string{"side", "status"}),
		cancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancels_total",
			Help:      "Cancel requests, by resulting status",
		}, []string{"status"}),
		adapterDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "adapter_call_duration_seconds",
			Help:      "Execution adapter call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"adapter", "operation"}),
		adapterErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_errors_total",
			Help:      "Execution adapter calls that returned an error",
		}, []string{"adapter", "operation"}),
	}

	reg.MustRegister(r.httpRequests, r.httpDuration, r.orders, r.cancels, r.adapterDurations, r.adapterErrors)
	return r
}

// NewDefaultRecorder registers on a fresh registry that also carries the Go
// runtime and process collectors.
func NewDefaultRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewRecorder(reg, reg)
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveOrder(side, status string) {
	r.orders.WithLabelValues(side, status).Inc()
}

func (r *Recorder) ObserveCancel(status string) {
	r.cancels.WithLabelValues(status).Inc()
}

func (r *Recorder) ObserveAdapterCall(adapter, operation string, elapsed time.Duration, err error) {
	r.adapterDurations.WithLabelValues(adapter, operation).Observe(elapsed.Seconds())
	if err != nil {
		r.adapterErrors.WithLabelValues(adapter, operation).Inc()
	}
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
