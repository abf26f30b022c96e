package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	backendMemory = "memory"
	backendNATS   = "nats"
	backendRedis  = "redis"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zayo_cache_hits_total",
		Help: "Record cache hits, by backend",
	}, []string{"backend"})

	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zayo_cache_misses_total",
		Help: "Record cache misses, by backend",
	}, []string{"backend"})

	cacheErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zayo_cache_errors_total",
		Help: "Record cache backend errors, by backend and operation",
	}, []string{"backend", "operation"})
)
