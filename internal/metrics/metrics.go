package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codecomment_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// CommentDuration tracks provider latency, successful or not.
	CommentDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codecomment_provider_duration_seconds",
		Help:    "Time spent waiting on the LLM provider.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	// UploadBytes tracks the distribution of uploaded source sizes.
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codecomment_upload_bytes",
		Help:    "Size of uploaded source files in bytes.",
		Buckets: prometheus.ExponentialBuckets(256, 4, 8),
	})

	// ProviderErrors counts failed provider calls by error kind.
	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codecomment_provider_errors_total",
		Help: "Failed LLM provider calls by provider and kind.",
	}, []string{"provider", "kind"})

	// ProviderConfigured is 1 when the selected provider resolves from config.
	ProviderConfigured = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "codecomment_provider_configured",
		Help: "Whether the selected LLM provider is fully configured (1) or not (0).",
	}, []string{"provider"})
)
