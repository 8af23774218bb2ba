package agentic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	// AgentInvocations counts agent invocations by agent and status.
	AgentInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goalgraph_agent_invocations_total",
			Help: "Total number of agent invocations",
		},
		[]string{"agent", "status"},
	)

	// AgentDuration observes agent invocation time, retries included.
	AgentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goalgraph_agent_duration_seconds",
			Help:    "Agent invocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"agent"},
	)

	// RunsTotal counts workflow runs by status.
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goalgraph_runs_total",
			Help: "Total number of goal runs",
		},
		[]string{"status"},
	)
)
