package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes used as the "outcome" label of SearchesTotal.
const (
	OutcomeFound       = "found"
	OutcomeSatisfied   = "satisfied"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goalgraph_searches_total",
		Help: "Total number of goal searches, labelled by outcome.",
	}, []string{"outcome"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "goalgraph_search_duration_seconds",
		Help:    "Time spent searching the dependency graph and translating the path.",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
	})

	ExpandedStates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "goalgraph_search_expanded_states",
		Help:    "Number of search states expanded per search.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	PlanLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "goalgraph_plan_length",
		Help:    "Number of agents in produced plans.",
		Buckets: prometheus.LinearBuckets(0, 1, 11),
	})
)
