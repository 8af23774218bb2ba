package planner

import (
	"errors"
	"fmt"
	"slices"

	"github.com/smallnest/goalgraph/log"
)

// ErrAlreadyStarted is returned when FirstAction is called twice on one planner.
var ErrAlreadyStarted = errors.New("planner already started")

// ActionKind tells the execution loop what to do next
type ActionKind int

const (
	// ActionCall asks the loop to run Action.Agent
	ActionCall ActionKind = iota
	// ActionDone signals that the goal has been produced
	ActionDone
)

func (k ActionKind) String() string {
	switch k {
	case ActionCall:
		return "call"
	case ActionDone:
		return "done"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is the next step of a plan.
type Action[A Agent] struct {
	Kind  ActionKind
	Agent A
}

// IsDone reports whether the plan is complete
func (a Action[A]) IsDone() bool {
	return a.Kind == ActionDone
}

func call[A Agent](agent A) Action[A] {
	return Action[A]{Kind: ActionCall, Agent: agent}
}

func done[A Agent]() Action[A] {
	return Action[A]{Kind: ActionDone}
}

// Request carries what the execution loop currently knows.
type Request struct {
	// Known are the keys already present in the run's scope. They are the
	// preconditions of the search.
	Known []string
}

// State is the lifecycle state of a Planner
type State int

const (
	StateUninitialized State = iota
	StateStepping
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStepping:
		return "stepping"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Planner drives one goal-oriented run. The first request searches the graph
// once and caches the plan; later requests hand out the cached plan one agent
// at a time and never search again.
//
// A Planner is bound to a single run and is not safe for concurrent use.
// The SearchGraph it plans on may be shared.
type Planner[A Agent] struct {
	goal   string
	graph  *SearchGraph[A]
	logger log.Logger

	state  State
	plan   []A
	cursor int
}

// New builds the search graph for agents and returns a planner for goal.
func New[A Agent](goal string, agents []A, opts ...Option) (*Planner[A], error) {
	sg, err := NewSearchGraph(agents, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithGraph(goal, sg, opts...), nil
}

// NewWithGraph returns a planner for goal over an already built graph.
func NewWithGraph[A Agent](goal string, graph *SearchGraph[A], opts ...Option) *Planner[A] {
	o := buildOptions(opts)
	return &Planner[A]{
		goal:   goal,
		graph:  graph,
		logger: o.logger,
	}
}

// Goal returns the key the planner works towards
func (p *Planner[A]) Goal() string {
	return p.goal
}

// State returns the lifecycle state
func (p *Planner[A]) State() State {
	return p.state
}

// Plan returns the cached plan. It is nil before FirstAction.
func (p *Planner[A]) Plan() []A {
	return slices.Clone(p.plan)
}

// Remaining returns the number of agents not yet handed out
func (p *Planner[A]) Remaining() int {
	return len(p.plan) - p.cursor
}

// FirstAction plans the run from req.Known and returns its first step.
//
// If the goal is already known the run is complete and Done is returned.
// If it cannot be reached a *NoPathError is returned.
func (p *Planner[A]) FirstAction(req Request) (Action[A], error) {
	if p.state != StateUninitialized {
		return done[A](), ErrAlreadyStarted
	}

	plan, err := p.graph.Search(req.Known, p.goal)
	if err != nil {
		return done[A](), fmt.Errorf("planning goal %s: %w", p.goal, err)
	}

	if len(plan) == 0 {
		if !slices.Contains(req.Known, p.goal) {
			p.logger.Error("no path found for goal %s from %v", p.goal, req.Known)
			return done[A](), &NoPathError{Goal: p.goal}
		}
		p.logger.Info("goal %s already satisfied", p.goal)
		p.state = StateDone
		return done[A](), nil
	}

	p.plan = plan
	p.cursor = 0
	p.state = StateStepping
	p.logger.Info("planned %d steps for goal %s: %v", len(plan), p.goal, agentNames(plan))

	return p.step(), nil
}

// NextAction returns the next cached step, or Done once the plan is used up.
func (p *Planner[A]) NextAction(_ Request) (Action[A], error) {
	switch p.state {
	case StateUninitialized:
		return done[A](), ErrNotInitialized
	case StateDone:
		return done[A](), nil
	}
	return p.step(), nil
}

func (p *Planner[A]) step() Action[A] {
	if p.cursor >= len(p.plan) {
		p.state = StateDone
		return done[A]()
	}
	a := p.plan[p.cursor]
	p.cursor++
	return call(a)
}
