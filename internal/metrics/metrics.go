// Package metrics declares the prometheus collectors of the dispatch
// service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Key constants are exported primarily for documentation reasons. Typically,
// they will not be used programmatically outside of defining the collectors.

// Keys for dispatch metrics.
const (
	AgentAllocationsTotalKey = "fooddelivery_agent_allocations_total"
	OrderTransitionsTotalKey = "fooddelivery_order_transitions_total"
	AgentLoadMismatchesKey   = "fooddelivery_agent_load_mismatches"
)

// Label values of AgentAllocationsTotal.
const (
	AllocationAssigned   = "assigned"
	AllocationUnassigned = "unassigned"
	AllocationFailed     = "failed"
)

// Collectors for dispatch metrics.
var (
	AgentAllocationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: AgentAllocationsTotalKey,
		Help: "Cumulative number of allocation attempts for new orders, by result.",
	}, []string{"result"})
	OrderTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: OrderTransitionsTotalKey,
		Help: "Cumulative number of committed order status transitions, by target status.",
	}, []string{"status"})
	AgentLoadMismatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: AgentLoadMismatchesKey,
		Help: "Number of agents whose stored load differed from their open orders at the last audit.",
	})
)

func DispatchCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		AgentAllocationsTotal,
		OrderTransitionsTotal,
		AgentLoadMismatches,
	}
}

// Keys for cache metrics.
const (
	CacheLookupsTotalKey              = "fooddelivery_cache_lookups_total"
	CacheInvalidationFailuresTotalKey = "fooddelivery_cache_invalidation_failures_total"
)

// Collectors for cache metrics.
var (
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: CacheLookupsTotalKey,
		Help: "Cumulative number of cached view lookups, by view and result (hit, miss, error).",
	}, []string{"view", "result"})
	CacheInvalidationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: CacheInvalidationFailuresTotalKey,
		Help: "Cumulative number of cache keys that could not be deleted after a commit.",
	})
)

func CacheCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		CacheLookupsTotal,
		CacheInvalidationFailuresTotal,
	}
}

// Keys for HTTP metrics.
const (
	RateLimitDecisionsTotalKey = "fooddelivery_rate_limit_decisions_total"
	HTTPRequestDurationKey     = "fooddelivery_http_request_duration_seconds"
)

// Collectors for HTTP metrics.
var (
	RateLimitDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: RateLimitDecisionsTotalKey,
		Help: "Cumulative number of rate limit decisions, by result (allowed, rejected, fail_open).",
	}, []string{"result"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    HTTPRequestDurationKey,
		Help:    "Latency of HTTP requests by method, route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

func HTTPCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		RateLimitDecisionsTotal,
		HTTPRequestDuration,
	}
}

// Register adds every collector of this package to r.
func Register(r prometheus.Registerer) error {
	var all []prometheus.Collector
	all = append(all, DispatchCollectors()...)
	all = append(all, CacheCollectors()...)
	all = append(all, HTTPCollectors()...)
	for _, c := range all {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
