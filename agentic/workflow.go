package agentic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smallnest/goalgraph/log"
	"github.com/smallnest/goalgraph/planner"
)

// Workflow runs agents until a goal key is in the scope. The agents to run
// are chosen by the planner from what the scope already holds.
//
// A Workflow is safe for concurrent use; each run gets its own planner over
// the shared search graph.
type Workflow struct {
	goal  string
	graph *planner.SearchGraph[Agent]
	opts  options
}

// NewWorkflow builds the search graph for agents and returns a workflow
// producing goal.
func NewWorkflow(goal string, agents []Agent, opts ...Option) (*Workflow, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetDefaultLogger()
	}
	if o.tracer == nil {
		o.tracer = defaultTracer()
	}

	sg, err := planner.NewSearchGraph(agents, planner.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	return &Workflow{goal: goal, graph: sg, opts: o}, nil
}

// Goal returns the key the workflow produces
func (w *Workflow) Goal() string {
	return w.goal
}

// Graph returns the search graph shared by all runs
func (w *Workflow) Graph() *planner.SearchGraph[Agent] {
	return w.graph
}

// Plan returns the agents a run would invoke starting from known keys.
func (w *Workflow) Plan(known []string) ([]Agent, error) {
	return w.graph.Search(known, w.goal)
}

// Invoke runs the workflow on scope and returns the goal value. A nil scope
// starts from an empty one.
func (w *Workflow) Invoke(ctx context.Context, scope *Scope) (any, error) {
	if scope == nil {
		scope = NewScope(nil)
	}

	ctx, span := startRunSpan(ctx, w.opts.tracer, w.goal, scope.ID())
	value, err := w.run(ctx, scope)
	endSpan(span, err)

	status := statusSuccess
	if err != nil {
		status = statusError
	}
	RunsTotal.WithLabelValues(status).Inc()

	w.emit(ctx, Event{Type: EventRunEnd, ScopeID: scope.ID(), Goal: w.goal, Err: err})
	return value, err
}

// Resume loads the scope stored under scopeID and continues its run. Agents
// whose outputs are already in the scope are not invoked again.
func (w *Workflow) Resume(ctx context.Context, scopeID string) (any, error) {
	if w.opts.store == nil {
		return nil, ErrNoStore
	}

	snap, err := w.opts.store.Load(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("resuming scope %s: %w", scopeID, err)
	}
	if snap.Goal != "" && snap.Goal != w.goal {
		return nil, fmt.Errorf("%w: scope %s has goal %s, workflow has %s", ErrGoalMismatch, scopeID, snap.Goal, w.goal)
	}

	w.opts.logger.Info("resuming scope %s at version %d", scopeID, snap.Version)
	return w.Invoke(ctx, RestoreScope(snap))
}

func (w *Workflow) run(ctx context.Context, scope *Scope) (any, error) {
	w.emit(ctx, Event{Type: EventRunStart, ScopeID: scope.ID(), Goal: w.goal})

	p := planner.NewWithGraph(w.goal, w.graph, planner.WithLogger(w.opts.logger))

	action, err := p.FirstAction(planner.Request{Known: scope.Keys()})
	if err != nil {
		return nil, err
	}
	w.emit(ctx, Event{Type: EventPlan, ScopeID: scope.ID(), Goal: w.goal, Plan: agentNames(p.Plan())})

	if err := w.persist(ctx, scope); err != nil {
		return nil, err
	}

	for step := 1; !action.IsDone(); step++ {
		if w.opts.maxSteps > 0 && step > w.opts.maxSteps {
			return nil, fmt.Errorf("%w: %d", ErrMaxStepsExceeded, w.opts.maxSteps)
		}

		if err := w.invokeAgent(ctx, scope, action.Agent, step); err != nil {
			return nil, err
		}

		if err := w.persist(ctx, scope); err != nil {
			return nil, err
		}

		action, err = p.NextAction(planner.Request{Known: scope.Keys()})
		if err != nil {
			return nil, err
		}
	}

	value, ok := scope.Read(w.goal)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGoalNotProduced, w.goal)
	}
	return value, nil
}

func (w *Workflow) invokeAgent(ctx context.Context, scope *Scope, agent Agent, step int) error {
	name := agent.Name()
	base := Event{ScopeID: scope.ID(), Goal: w.goal, Agent: name}

	start := base
	start.Type = EventAgentStart
	w.emit(ctx, start)

	ctx, span := startAgentSpan(ctx, w.opts.tracer, agent, step)
	began := time.Now()

	value, attempts, err := invokeWithRetry(ctx, agent, scope, w.opts.retry, func(attempt int, err error) {
		w.opts.logger.Warn("agent %s attempt %d failed: %v", name, attempt, err)
		ev := base
		ev.Type = EventAgentRetry
		ev.Attempt = attempt
		ev.Err = err
		w.emit(ctx, ev)
	})
	elapsed := time.Since(began)
	AgentDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		agentErr := &AgentError{Agent: name, Attempts: attempts, Err: err}
		endSpan(span, agentErr)
		AgentInvocations.WithLabelValues(name, statusError).Inc()
		w.opts.logger.Error("%v", agentErr)

		ev := base
		ev.Type = EventAgentError
		ev.Attempt = attempts
		ev.Err = agentErr
		ev.Duration = elapsed
		w.emit(ctx, ev)
		return agentErr
	}

	scope.Write(agent.OutputKey(), value)
	endSpan(span, nil)
	AgentInvocations.WithLabelValues(name, statusSuccess).Inc()
	w.opts.logger.Debug("agent %s produced %s in %v", name, agent.OutputKey(), elapsed)

	ev := base
	ev.Type = EventAgentComplete
	ev.Attempt = attempts
	ev.Duration = elapsed
	w.emit(ctx, ev)
	return nil
}

func (w *Workflow) persist(ctx context.Context, scope *Scope) error {
	if w.opts.store == nil {
		return nil
	}
	if err := w.opts.store.Save(ctx, scope.Snapshot(w.goal)); err != nil {
		return fmt.Errorf("saving scope %s: %w", scope.ID(), err)
	}
	return nil
}

func (w *Workflow) emit(ctx context.Context, ev Event) {
	for _, l := range w.opts.listeners {
		l.OnEvent(ctx, ev)
	}
}

func agentNames(agents []Agent) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name()
	}
	return names
}

// IsNoPath reports whether err means the goal cannot be reached from the
// scope's keys.
func IsNoPath(err error) bool {
	return errors.Is(err, planner.ErrNoPath)
}
