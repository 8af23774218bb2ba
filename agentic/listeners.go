package agentic

import (
	"context"
	"time"
)

// EventType names the events a workflow reports to its listeners
type EventType string

const (
	// EventRunStart is emitted before planning
	EventRunStart EventType = "run_start"

	// EventPlan carries the agent names planned for the run
	EventPlan EventType = "plan"

	// EventAgentStart is emitted before an agent is invoked
	EventAgentStart EventType = "agent_start"

	// EventAgentRetry is emitted after a failed attempt that will be retried
	EventAgentRetry EventType = "agent_retry"

	// EventAgentComplete is emitted after an agent's output was written
	EventAgentComplete EventType = "agent_complete"

	// EventAgentError is emitted when an agent fails for good
	EventAgentError EventType = "agent_error"

	// EventRunEnd is emitted once the goal is known or the run failed
	EventRunEnd EventType = "run_end"
)

// Event describes one step of a workflow run.
type Event struct {
	Type    EventType
	ScopeID string
	Goal    string

	// Agent is set for agent events
	Agent string

	// Plan is set for EventPlan
	Plan []string

	// Attempt is the 1-based attempt number for retry and agent events
	Attempt int

	Err      error
	Duration time.Duration
}

// Listener receives workflow events. Listeners are called synchronously on
// the run's goroutine.
type Listener interface {
	OnEvent(ctx context.Context, event Event)
}

// ListenerFunc is a function adapter for Listener
type ListenerFunc func(ctx context.Context, event Event)

// OnEvent implements the Listener interface
func (f ListenerFunc) OnEvent(ctx context.Context, event Event) {
	f(ctx, event)
}
