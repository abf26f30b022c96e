package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zayo_http_requests_total",
		Help: "Requests sent to the Zayo API, by method and status code",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zayo_http_request_duration_seconds",
		Help:    "Zayo API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)
