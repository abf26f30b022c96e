package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

var (
	pagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zayo_pages_total",
		Help: "Pages fetched, by route and outcome",
	}, []string{"path", "outcome"})

	pageRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zayo_page_retries_total",
		Help: "Page retries after a transient timeout, by route",
	}, []string{"path"})

	pageBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zayo_page_backoff_seconds",
		Help:    "Backoff waits before page retries",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 10},
	})

	recordsFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zayo_records_fetched_total",
		Help: "Records returned by list calls, by route",
	}, []string{"path"})
)
