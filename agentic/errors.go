package agentic

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStore is returned by Resume when the workflow has no scope store.
	ErrNoStore = errors.New("workflow has no scope store")

	// ErrGoalMismatch is returned by Resume when the stored scope was
	// created for another goal.
	ErrGoalMismatch = errors.New("scope belongs to a different goal")

	// ErrMaxStepsExceeded is returned when a run invokes more agents than
	// allowed by WithMaxSteps.
	ErrMaxStepsExceeded = errors.New("max steps exceeded")

	// ErrGoalNotProduced is returned when the plan completed but the goal
	// key is not in the scope.
	ErrGoalNotProduced = errors.New("goal not produced")
)

// AgentError reports a failed agent invocation.
type AgentError struct {
	Agent    string
	Attempts int
	Err      error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent %s failed after %d attempt(s): %v", e.Agent, e.Attempts, e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}
