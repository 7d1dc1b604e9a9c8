package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nutrivision",
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "Calls made to the analysis service, by operation.",
		},
		[]string{"op"},
	)

	failuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nutrivision",
			Subsystem: "gateway",
			Name:      "failures_total",
			Help:      "Calls that ended in an analysis failure, by operation.",
		},
		[]string{"op"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nutrivision",
			Subsystem: "gateway",
			Name:      "retries_total",
			Help:      "Transient backend errors that were retried, by operation.",
		},
		[]string{"op"},
	)

	adviceCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "nutrivision",
			Subsystem: "gateway",
			Name:      "advice_cache_hits_total",
			Help:      "Advice requests answered from the in-memory cache.",
		},
	)
)
