package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SourceFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policypulse_source_fetch_total",
			Help: "Source fetch attempts by outcome",
		},
		[]string{"source", "status"},
	)

	SourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policypulse_source_fetch_duration_seconds",
			Help:    "Source fetch duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policypulse_rate_limit_hits_total",
			Help: "Rate-limit (429) signals per source",
		},
		[]string{"source"},
	)

	CooldownSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policypulse_cooldown_skips_total",
			Help: "Fetch calls skipped because a source was cooling down",
		},
		[]string{"source"},
	)

	DocumentsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "policypulse_documents_ingested_total",
			Help: "Documents retained after dedup and lookback cutoff",
		},
	)

	SummaryRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policypulse_summary_requests_total",
			Help: "Aggregation requests by outcome",
		},
		[]string{"status"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policypulse_cache_hits_total",
			Help: "Fetch-response cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policypulse_cache_misses_total",
			Help: "Fetch-response cache misses",
		},
		[]string{"cache_type"},
	)
)

func Init() {
	prometheus.MustRegister(SourceFetchTotal)
	prometheus.MustRegister(SourceFetchDuration)
	prometheus.MustRegister(RateLimitHits)
	prometheus.MustRegister(CooldownSkips)
	prometheus.MustRegister(DocumentsIngested)
	prometheus.MustRegister(SummaryRequests)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
