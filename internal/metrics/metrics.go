// Package metrics defines Prometheus metrics for csbluegem-go.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bluegem"

// API client metrics.
var (
	APICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_calls_total",
		Help:      "Total CSBlueGem API calls by endpoint and response status.",
	}, []string{"endpoint", "status"})

	APICallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_call_duration_seconds",
		Help:      "Duration of CSBlueGem API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_failures_total",
		Help:      "Total responses that could not be parsed, by endpoint.",
	}, []string{"endpoint"})
)

// Chunked search metrics.
var (
	ChunkedSearches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chunked_searches_total",
		Help:      "Total multi-pattern searches issued.",
	})

	ChunkedSearchBatches = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chunked_search_batches",
		Help:      "Distribution of batch counts per multi-pattern search.",
		Buckets:   prometheus.LinearBuckets(1, 2, 10), // 1, 3, 5, ..., 19
	})
)

// Watch metrics.
var (
	WatchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watch_runs_total",
		Help:      "Total watch executions by watch name and outcome.",
	}, []string{"watch", "outcome"})

	WatchNewSales = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watch_new_sales_total",
		Help:      "Total newly observed sales per watch.",
	}, []string{"watch"})

	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Time to deliver a notification.",
		Buckets:   prometheus.DefBuckets,
	})
)
