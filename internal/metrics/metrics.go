// Package metrics defines Prometheus metrics for bandslicer and implements
// the observability hooks on top of them.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/bandslicer/pkg/errors"
	"github.com/matzehuels/bandslicer/pkg/observability"
)

var (
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bandslicer_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	StageErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandslicer_stage_errors_total",
			Help: "Pipeline stage failures by error code",
		},
		[]string{"stage", "code"},
	)

	MeshVertices = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bandslicer_mesh_vertices",
			Help:    "Vertex count of loaded meshes",
			Buckets: prometheus.ExponentialBuckets(8, 4, 8),
		},
	)

	BandsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bandslicer_bands_total",
			Help: "Total bands produced by slicing runs",
		},
	)

	SubsetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bandslicer_subsets_total",
			Help: "Total subsets produced by slicing runs",
		},
	)

	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandslicer_cache_requests_total",
			Help: "Cache lookups by key type and outcome",
		},
		[]string{"type", "result"},
	)

	CacheBytesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandslicer_cache_bytes_written_total",
			Help: "Bytes written to the cache by key type",
		},
		[]string{"type"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bandslicer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandslicer_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bandslicer_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)
)

func init() {
	prometheus.MustRegister(
		StageDuration, StageErrorsTotal,
		MeshVertices, BandsTotal, SubsetsTotal,
		CacheRequestsTotal, CacheBytesWritten,
		RequestDuration, RequestsTotal, RequestsInFlight,
	)
}

// Hooks records pipeline, cache and HTTP events as Prometheus metrics.
type Hooks struct{}

var (
	_ observability.PipelineHooks = Hooks{}
	_ observability.CacheHooks    = Hooks{}
	_ observability.HTTPHooks     = Hooks{}
)

// Install registers Hooks as the global observability hooks.
func Install() {
	h := Hooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (Hooks) OnLoadStart(context.Context, string) {}

func (Hooks) OnLoadComplete(_ context.Context, _ string, vertices int, dur time.Duration, err error) {
	observeStage("load", dur, err)
	if err == nil {
		MeshVertices.Observe(float64(vertices))
	}
}

func (Hooks) OnSliceStart(context.Context, int) {}

func (Hooks) OnSliceComplete(_ context.Context, bands, subsets int, dur time.Duration, err error) {
	observeStage("slice", dur, err)
	if err == nil {
		BandsTotal.Add(float64(bands))
		SubsetsTotal.Add(float64(subsets))
	}
}

func (Hooks) OnRenderStart(context.Context, []string) {}

func (Hooks) OnRenderComplete(_ context.Context, _ []string, dur time.Duration, err error) {
	observeStage("render", dur, err)
}

func (Hooks) OnCacheHit(_ context.Context, keyType string) {
	CacheRequestsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (Hooks) OnCacheMiss(_ context.Context, keyType string) {
	CacheRequestsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (Hooks) OnCacheSet(_ context.Context, keyType string, size int) {
	CacheBytesWritten.WithLabelValues(keyType).Add(float64(size))
}

func (Hooks) OnRequest(context.Context, string, string) {
	RequestsInFlight.Inc()
}

func (Hooks) OnResponse(_ context.Context, method, route string, status int, dur time.Duration) {
	RequestsInFlight.Dec()
	code := strconv.Itoa(status)
	RequestDuration.WithLabelValues(method, route, code).Observe(dur.Seconds())
	RequestsTotal.WithLabelValues(method, route, code).Inc()
}

func observeStage(stage string, dur time.Duration, err error) {
	StageDuration.WithLabelValues(stage).Observe(dur.Seconds())
	if err != nil {
		code := string(errors.GetCode(err))
		if code == "" {
			code = "unknown"
		}
		StageErrorsTotal.WithLabelValues(stage, code).Inc()
	}
}
