package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeNoMatch = "no_match"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_queries_total",
			Help: "Title queries handled, by surface and outcome",
		},
		[]string{"surface", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_query_duration_seconds",
			Help:    "Time to resolve a title query, cache lookups included",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"surface"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_cache_hits_total",
			Help: "Recommendation results served from the cache",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_cache_misses_total",
			Help: "Recommendation lookups not found in the cache",
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_catalog_movies",
			Help: "Movies in the loaded catalog",
		},
	)

	VocabularyTerms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_vocabulary_terms",
			Help: "Distinct terms in the fitted TF-IDF vocabulary",
		},
	)

	BuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_index_build_seconds",
			Help: "Wall time of the startup vectorize and similarity build",
		},
	)
)

// RecordQuery counts one query and observes its latency.
func RecordQuery(surface, outcome string, start time.Time) {
	QueriesTotal.WithLabelValues(surface, outcome).Inc()
	QueryDuration.WithLabelValues(surface).Observe(time.Since(start).Seconds())
}

// RecordIndex publishes catalog gauges after a build.
func RecordIndex(movies, terms int, took time.Duration) {
	CatalogMovies.Set(float64(movies))
	VocabularyTerms.Set(float64(terms))
	BuildDuration.Set(took.Seconds())
}
