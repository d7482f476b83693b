package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchTotal counts remote fetches by operation and outcome
	// (ok, not_found, auth_required, parse_error, transient).
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isfdbmeta_fetch_total",
		Help: "Remote page fetches by operation and outcome",
	}, []string{"op", "outcome"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "isfdbmeta_fetch_duration_seconds",
		Help:    "Duration of remote page fetches in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "isfdbmeta_page_cache_hits_total",
		Help: "Pages served from the in-process cache",
	})

	ResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isfdbmeta_resolve_total",
		Help: "Resolution calls by strategy and outcome",
	}, []string{"strategy", "outcome"})

	CoverFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "isfdbmeta_cover_fallback_total",
		Help: "Cover lookups degraded to an empty list after a title failure",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "isfdbmeta_http_requests_total",
		Help: "Requests served by the HTTP surface",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "isfdbmeta_http_request_duration_seconds",
		Help:    "Duration of HTTP surface requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)
