package filter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filterRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_filter_runs_total",
		Help: "The total number of visible list computations",
	})
	filterDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_filter_duration_seconds",
		Help:    "Time spent computing the visible list",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
	visibleItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_filter_visible_items",
		Help:    "Number of products visible after a filter change",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
	stateChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_filter_state_changes_total",
		Help: "Filter state mutations by dimension",
	}, []string{"dimension"})
)
