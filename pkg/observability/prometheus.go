package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records pipeline, cache and HTTP events as Prometheus
// metrics.
type PrometheusHooks struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	slides        *prometheus.CounterVec
	pageBytes     prometheus.Histogram
	cacheEvents   *prometheus.CounterVec
	requests      *prometheus.CounterVec
	reqDuration   *prometheus.HistogramVec
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "revealyaml_stage_duration_seconds",
			Help:    "Duration of pipeline stages.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revealyaml_stage_errors_total",
			Help: "Pipeline stages that failed.",
		}, []string{"stage"}),
		slides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revealyaml_slides_total",
			Help: "Top-level slides by outcome.",
		}, []string{"outcome"}),
		pageBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "revealyaml_page_bytes",
			Help:    "Size of rendered pages.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revealyaml_cache_events_total",
			Help: "Cache lookups and writes.",
		}, []string{"key_type", "event"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revealyaml_http_requests_total",
			Help: "Preview server responses.",
		}, []string{"method", "route", "code"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "revealyaml_http_request_duration_seconds",
			Help:    "Preview server latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		h.stageDuration, h.stageErrors, h.slides, h.pageBytes,
		h.cacheEvents, h.requests, h.reqDuration,
	)
	return h
}

func (h *PrometheusHooks) stage(name string, d time.Duration, err error) {
	h.stageDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		h.stageErrors.WithLabelValues(name).Inc()
	}
}

func (h *PrometheusHooks) OnParseStart(context.Context, string) {}

func (h *PrometheusHooks) OnParseComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	h.stage("parse", d, err)
}

func (h *PrometheusHooks) OnAssembleStart(context.Context, int) {}

func (h *PrometheusHooks) OnAssembleComplete(_ context.Context, rendered, dropped int, d time.Duration, err error) {
	h.stage("assemble", d, err)
	if err == nil {
		h.slides.WithLabelValues("rendered").Add(float64(rendered))
		h.slides.WithLabelValues("dropped").Add(float64(dropped))
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, size int, d time.Duration, err error) {
	h.stage("render", d, err)
	if err == nil {
		h.pageBytes.Observe(float64(size))
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

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
