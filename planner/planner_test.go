package planner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanner_StepsThroughPlan(t *testing.T) {
	p, err := New("D", []Descriptor{u2, u1}, quiet())
	require.NoError(t, err)
	assert.Equal(t, StateUninitialized, p.State())
	assert.Equal(t, "D", p.Goal())

	action, err := p.FirstAction(Request{Known: []string{"A", "C"}})
	require.NoError(t, err)
	assert.Equal(t, ActionCall, action.Kind)
	assert.Equal(t, "U1", action.Agent.Name())
	assert.Equal(t, StateStepping, p.State())
	assert.Equal(t, 1, p.Remaining())

	action, err = p.NextAction(Request{})
	require.NoError(t, err)
	assert.False(t, action.IsDone())
	assert.Equal(t, "U2", action.Agent.Name())

	action, err = p.NextAction(Request{})
	require.NoError(t, err)
	assert.True(t, action.IsDone())
	assert.Equal(t, StateDone, p.State())

	// Done is sticky.
	action, err = p.NextAction(Request{})
	require.NoError(t, err)
	assert.True(t, action.IsDone())

	assert.Equal(t, []Descriptor{u1, u2}, p.Plan())
}

func TestPlanner_NoPath(t *testing.T) {
	p, err := New("D", []Descriptor{u1, u2}, quiet())
	require.NoError(t, err)

	_, err = p.FirstAction(Request{Known: []string{"A"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPath))
	assert.EqualError(t, err, "No path found for goal: D")

	var noPath *NoPathError
	require.ErrorAs(t, err, &noPath)
	assert.Equal(t, "D", noPath.Goal)
}

func TestPlanner_GoalAlreadyKnown(t *testing.T) {
	p, err := New("D", []Descriptor{u1, u2}, quiet())
	require.NoError(t, err)

	action, err := p.FirstAction(Request{Known: []string{"D"}})
	require.NoError(t, err)
	assert.True(t, action.IsDone())
	assert.Equal(t, StateDone, p.State())
	assert.Empty(t, p.Plan())
}

func TestPlanner_EmptyKnownIsRejected(t *testing.T) {
	p, err := New("D", []Descriptor{u1, u2}, quiet())
	require.NoError(t, err)

	_, err = p.FirstAction(Request{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoPath))
}

func TestPlanner_NextBeforeFirst(t *testing.T) {
	p, err := New("D", []Descriptor{u1, u2}, quiet())
	require.NoError(t, err)

	_, err = p.NextAction(Request{})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestPlanner_FirstActionOnlyOnce(t *testing.T) {
	p, err := New("D", []Descriptor{u1, u2}, quiet())
	require.NoError(t, err)

	_, err = p.FirstAction(Request{Known: []string{"A", "C"}})
	require.NoError(t, err)

	_, err = p.FirstAction(Request{Known: []string{"A", "C"}})
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestPlanner_NeverSearchesAgain(t *testing.T) {
	p, err := New("D", []Descriptor{u1, u2}, quiet())
	require.NoError(t, err)

	_, err = p.FirstAction(Request{Known: []string{"A", "C"}})
	require.NoError(t, err)

	// Even if the caller now claims D is known the cached plan is served.
	action, err := p.NextAction(Request{Known: []string{"A", "C", "D"}})
	require.NoError(t, err)
	assert.Equal(t, "U2", action.Agent.Name())
}

func TestPlanner_SharedGraph(t *testing.T) {
	sg, err := NewSearchGraph([]Descriptor{u1, u2}, quiet())
	require.NoError(t, err)

	p1 := NewWithGraph("D", sg, quiet())
	p2 := NewWithGraph("B", sg, quiet())

	a1, err := p1.FirstAction(Request{Known: []string{"A", "C"}})
	require.NoError(t, err)
	a2, err := p2.FirstAction(Request{Known: []string{"A"}})
	require.NoError(t, err)

	assert.Equal(t, "U1", a1.Agent.Name())
	assert.Equal(t, "U1", a2.Agent.Name())

	a2, err = p2.NextAction(Request{})
	require.NoError(t, err)
	assert.True(t, a2.IsDone())
	assert.Equal(t, 1, p1.Remaining())
}

func TestNew_InvalidAgent(t *testing.T) {
	_, err := New("D", []Descriptor{{AgentName: "x"}}, quiet())
	assert.ErrorIs(t, err, ErrInvalidAgent)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "call", ActionCall.String())
	assert.Equal(t, "done", ActionDone.String())
	assert.Equal(t, "stepping", StateStepping.String())
	assert.Equal(t, "State(9)", State(9).String())
}
