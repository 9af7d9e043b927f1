package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Document store Prometheus metrics.
var (
	StoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Total number of document store operations",
		},
		[]string{"backend", "operation", "outcome"},
	)

	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Document store operation duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"backend", "operation"},
	)

	ListResultSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "list_result_total_matches",
			Help:      "Number of records matching a listing filter",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"backend"},
	)
)

var registerStoreOnce sync.Once

// RegisterStoreMetrics registers the document store metrics. Safe to call more than once.
func RegisterStoreMetrics() {
	registerStoreOnce.Do(func() {
		prometheus.MustRegister(StoreOperationsTotal)
		prometheus.MustRegister(StoreOperationDuration)
		prometheus.MustRegister(ListResultSize)
	})
}
