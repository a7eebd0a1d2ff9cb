package pokedex

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Sternrassler/pokedex-client/pkg/metrics"
)

var (
	recordsFetchedTotal = promauto.With(metrics.Registry).NewCounter(prometheus.CounterOpts{
		Name: "pokedex_records_fetched_total",
		Help: "Total records fetched and classified",
	})

	fetchFailuresTotal = promauto.With(metrics.Registry).NewCounter(prometheus.CounterOpts{
		Name: "pokedex_fetch_failures_total",
		Help: "Total fetch runs aborted by a retrieval failure",
	})

	recordsByCategoryTotal = promauto.With(metrics.Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "pokedex_records_by_category_total",
		Help: "Classified records by category",
	}, []string{"category"})

	fetchDuration = promauto.With(metrics.Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "pokedex_fetch_duration_seconds",
		Help:    "Duration of a complete fetch run",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	})
)
