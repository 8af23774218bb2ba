package planner

import (
	"fmt"
	"slices"
	"time"

	"github.com/smallnest/goalgraph/depgraph"
	"github.com/smallnest/goalgraph/log"
)

type nodePair struct {
	from depgraph.Key
	to   depgraph.Key
}

// SearchGraph is the dependency graph of a set of agents together with the
// registry of which agent produces which edge. It is read-only once built and
// can be shared by concurrent planning runs.
type SearchGraph[A Agent] struct {
	graph  *depgraph.Graph
	edges  map[nodePair]A
	agents []A
	logger log.Logger
}

// NewSearchGraph builds the dependency graph for agents. Every input key of
// an agent gets an edge to the agent's output key, and each of those edges is
// registered as produced by that agent. When several agents declare the same
// edge the first one wins.
func NewSearchGraph[A Agent](agents []A, opts ...Option) (*SearchGraph[A], error) {
	o := buildOptions(opts)
	sg := &SearchGraph[A]{
		graph:  depgraph.NewGraph(),
		edges:  make(map[nodePair]A),
		agents: slices.Clone(agents),
		logger: o.logger,
	}

	for _, a := range agents {
		out := a.OutputKey()
		if out == "" {
			return nil, fmt.Errorf("%w: agent %q declares no output key", ErrInvalidAgent, a.Name())
		}
		outKey := sg.graph.Node(depgraph.Key(out)).Key()

		inputs := a.InputKeys()
		if len(inputs) == 0 {
			sg.logger.Warn("agent %s declares no input keys and will never be planned", a.Name())
		}
		for _, in := range inputs {
			if in == "" {
				return nil, fmt.Errorf("%w: agent %q declares an empty input key", ErrInvalidAgent, a.Name())
			}
			inKey := depgraph.Key(in)
			sg.graph.Connect(inKey, outKey)

			pair := nodePair{from: inKey, to: outKey}
			if prev, ok := sg.edges[pair]; ok {
				sg.logger.Debug("edge %s -> %s already produced by %s, ignoring %s", in, out, prev.Name(), a.Name())
				continue
			}
			sg.edges[pair] = a
		}
	}

	return sg, nil
}

// Graph returns the underlying dependency graph
func (sg *SearchGraph[A]) Graph() *depgraph.Graph {
	return sg.graph
}

// Agents returns the agents the graph was built from
func (sg *SearchGraph[A]) Agents() []A {
	return slices.Clone(sg.agents)
}

// Producer returns the agent registered for the edge from -> to.
func (sg *SearchGraph[A]) Producer(from, to string) (A, bool) {
	a, ok := sg.edges[nodePair{from: depgraph.Key(from), to: depgraph.Key(to)}]
	return a, ok
}

// Search returns the agents to run, in order, to produce goal from the keys
// in preconditions. An empty plan with a nil error means either the goal is
// already among the preconditions or it cannot be reached; Reachable tells
// the two apart.
func (sg *SearchGraph[A]) Search(preconditions []string, goal string) ([]A, error) {
	plan, _, err := sg.search(preconditions, goal)
	return plan, err
}

// Reachable reports whether goal can be produced from preconditions.
func (sg *SearchGraph[A]) Reachable(preconditions []string, goal string) (bool, error) {
	_, found, err := sg.search(preconditions, goal)
	return found, err
}

func (sg *SearchGraph[A]) search(preconditions []string, goal string) ([]A, bool, error) {
	start := time.Now()
	defer func() {
		SearchDuration.Observe(time.Since(start).Seconds())
	}()

	keys := make([]depgraph.Key, len(preconditions))
	for i, p := range preconditions {
		keys[i] = depgraph.Key(p)
	}

	path, stats, err := sg.graph.SearchWithStats(depgraph.Key(goal), keys)
	ExpandedStates.Observe(float64(stats.Expanded))
	if err != nil {
		SearchesTotal.WithLabelValues(OutcomeError).Inc()
		return nil, false, err
	}
	if path == nil {
		SearchesTotal.WithLabelValues(OutcomeUnreachable).Inc()
		sg.logger.Debug("goal %s unreachable from %v after expanding %d states", goal, preconditions, stats.Expanded)
		return nil, false, nil
	}

	plan, err := sg.translate(path, keys)
	if err != nil {
		SearchesTotal.WithLabelValues(OutcomeError).Inc()
		return nil, true, err
	}

	if len(plan) == 0 {
		SearchesTotal.WithLabelValues(OutcomeSatisfied).Inc()
	} else {
		SearchesTotal.WithLabelValues(OutcomeFound).Inc()
	}
	PlanLength.Observe(float64(len(plan)))
	sg.logger.Debug("plan for goal %s: %v (expanded %d states)", goal, agentNames(plan), stats.Expanded)

	return plan, true, nil
}

// translate maps an activation path to the agents producing each activated
// node. Preconditions on the path need no agent. For every other node the
// producer is found on the edge from the nearest earlier path node; nodes
// whose only activated inputs are preconditions off the path fall back to
// those preconditions.
func (sg *SearchGraph[A]) translate(path []depgraph.Key, preconditions []depgraph.Key) ([]A, error) {
	pre := make(map[depgraph.Key]struct{}, len(preconditions))
	for _, k := range preconditions {
		pre[k] = struct{}{}
	}
	sortedPre := slices.Clone(preconditions)
	slices.Sort(sortedPre)

	var plan []A
	seenPre := 0
	for i := 1; i < len(path); i++ {
		node := path[i]
		if _, ok := pre[node]; ok {
			seenPre++
		} else {
			a, ok := sg.producer(path[:i], sortedPre, node)
			if !ok {
				return nil, sg.planError(path, i, ErrUntraceablePath)
			}
			plan = append(plan, a)
		}

		if len(plan) != i-seenPre {
			return nil, sg.planError(path, i, ErrPlanCountMismatch)
		}
	}
	return plan, nil
}

func (sg *SearchGraph[A]) producer(earlier, preconditions []depgraph.Key, node depgraph.Key) (A, bool) {
	for j := len(earlier) - 1; j >= 0; j-- {
		if a, ok := sg.edges[nodePair{from: earlier[j], to: node}]; ok {
			return a, true
		}
	}
	for _, k := range preconditions {
		if a, ok := sg.edges[nodePair{from: k, to: node}]; ok {
			return a, true
		}
	}
	var zero A
	return zero, false
}

func (sg *SearchGraph[A]) planError(path []depgraph.Key, index int, err error) *PlanError {
	names := make([]string, len(path))
	for i, k := range path {
		names[i] = string(k)
	}
	return &PlanError{Node: names[index], Index: index, Path: names, Err: err}
}

// Mermaid renders the graph with edges labelled by their producing agent.
func (sg *SearchGraph[A]) Mermaid(preconditions []string, goal string) string {
	pre := make([]depgraph.Key, len(preconditions))
	for i, p := range preconditions {
		pre[i] = depgraph.Key(p)
	}
	return depgraph.NewExporter(sg.graph).DrawMermaidWithOptions(depgraph.DiagramOptions{
		Preconditions: pre,
		Goal:          depgraph.Key(goal),
		EdgeLabel: func(from, to depgraph.Key) string {
			if a, ok := sg.edges[nodePair{from: from, to: to}]; ok {
				return a.Name()
			}
			return ""
		},
	})
}

func agentNames[A Agent](agents []A) []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name()
	}
	return names
}
