package bestfirst

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bestfirst_searches_total",
		Help: "Total search runs by outcome",
	}, []string{"status"})

	searchExpansions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bestfirst_search_expansions",
		Help:    "Nodes expanded per search run",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12), // 1 to ~4M
	})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bestfirst_search_duration_seconds",
		Help:    "Search run duration",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
	})

	frontierPeak = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bestfirst_frontier_peak",
		Help:    "Largest frontier size reached per search run",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
)

func recordSearchMetrics(label string, expanded, maxFrontier int, elapsed time.Duration) {
	searchTotal.WithLabelValues(label).Inc()
	searchExpansions.Observe(float64(expanded))
	frontierPeak.Observe(float64(maxFrontier))
	searchDuration.Observe(elapsed.Seconds())
}
