package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records pipeline, cache and HTTP events as Prometheus
// metrics. It implements all three hook interfaces.
type PrometheusHooks struct {
	fetches        *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	captures       *prometheus.CounterVec
	captureSeconds prometheus.Histogram
	reports        *prometheus.CounterVec
	reportBytes    prometheus.Histogram
	cacheEvents    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewPrometheusHooks creates the metric set and registers it with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crimereport_fetches_total",
			Help: "Statistics backend queries by region and outcome.",
		}, []string{"region", "outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crimereport_fetch_duration_seconds",
			Help:    "Duration of statistics backend queries.",
			Buckets: prometheus.DefBuckets,
		}),
		captures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crimereport_captures_total",
			Help: "Chart captures by outcome.",
		}, []string{"outcome"}),
		captureSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crimereport_capture_duration_seconds",
			Help:    "Duration of chart rasterization.",
			Buckets: prometheus.DefBuckets,
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crimereport_reports_total",
			Help: "Report attempts by terminal state.",
		}, []string{"state"}),
		reportBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crimereport_report_bytes",
			Help:    "Size of exported report documents.",
			Buckets: prometheus.ExponentialBuckets(64<<10, 2, 8),
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crimereport_cache_events_total",
			Help: "Cache hits, misses and writes by key type.",
		}, []string{"key_type", "event"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crimereport_backend_requests_total",
			Help: "Outgoing backend requests by host and status.",
		}, []string{"host", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crimereport_backend_request_duration_seconds",
			Help:    "Duration of outgoing backend requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"host"}),
	}
	reg.MustRegister(
		h.fetches, h.fetchDuration,
		h.captures, h.captureSeconds,
		h.reports, h.reportBytes,
		h.cacheEvents,
		h.httpRequests, h.httpDuration,
	)
	return h
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnFetchStart(context.Context, string) {}

func (h *PrometheusHooks) OnFetchComplete(_ context.Context, region string, _ int, d time.Duration, err error) {
	h.fetches.WithLabelValues(region, outcome(err)).Inc()
	h.fetchDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCaptureStart(context.Context, string) {}

func (h *PrometheusHooks) OnCaptureComplete(_ context.Context, _ string, _, _ int, d time.Duration, err error) {
	h.captures.WithLabelValues(outcome(err)).Inc()
	h.captureSeconds.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnComposeComplete(_ context.Context, _ string, state string, size int, _ time.Duration, err error) {
	h.reports.WithLabelValues(state).Inc()
	if err == nil {
		h.reportBytes.Observe(float64(size))
	}
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, statusCode int, d time.Duration) {
	h.httpRequests.WithLabelValues(host, prometheusStatus(statusCode)).Inc()
	h.httpDuration.WithLabelValues(host).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	h.httpRequests.WithLabelValues(host, "error").Inc()
}

func prometheusStatus(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
