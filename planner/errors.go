package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAgent is returned when an agent declaration cannot be placed
	// in the dependency graph.
	ErrInvalidAgent = errors.New("invalid agent")

	// ErrUntraceablePath is returned when an activated node cannot be traced
	// back to an agent producing it from an earlier node of the path.
	ErrUntraceablePath = errors.New("no agent produces activated node")

	// ErrPlanCountMismatch is returned when translating a path does not yield
	// exactly one agent per activated node.
	ErrPlanCountMismatch = errors.New("plan size does not match activated nodes")

	// ErrNoPath is returned by the planner when the goal cannot be reached.
	ErrNoPath = errors.New("no path found")

	// ErrNotInitialized is returned when NextAction is called before FirstAction.
	ErrNotInitialized = errors.New("planner not initialized")
)

// PlanError reports an inconsistency between the dependency graph and the
// agents it was built from. It is not recoverable by retrying.
type PlanError struct {
	// Node is the activated node being translated
	Node string
	// Index is the position of Node in the activation path
	Index int
	// Path is the full activation path
	Path []string
	// Err is ErrUntraceablePath or ErrPlanCountMismatch
	Err error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("%v: node %s at index %d of path %v", e.Err, e.Node, e.Index, e.Path)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// NoPathError is returned when no sequence of agents reaches the goal.
type NoPathError struct {
	Goal string
}

func (e *NoPathError) Error() string {
	return "No path found for goal: " + e.Goal
}

// Is makes errors.Is(err, ErrNoPath) match.
func (e *NoPathError) Is(target error) bool {
	return target == ErrNoPath
}
