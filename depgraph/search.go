package depgraph

import (
	"slices"
)

// edgeCost is the cost of one activation. Searches minimise the number of
// activations needed to reach the goal.
const edgeCost = 1.0

// SearchStats describes the work done by one search.
type SearchStats struct {
	// Expanded is the number of states whose successors were generated.
	Expanded int
	// Pushed is the number of states placed on the open set.
	Pushed int
	// Activations is the number of nodes activated on the returned path.
	Activations int
}

// ActivatableNodes returns the nodes that can be activated next from state:
// outputs of activated nodes that are not activated yet and whose inputs are
// all activated. The frontier is recomputed for every state because one
// activation can complete the inputs of several nodes at once.
func (g *Graph) ActivatableNodes(state SearchState) []Key {
	var frontier []Key
	for _, k := range state.activated {
		n, ok := g.nodes[k]
		if !ok {
			continue
		}
		for _, out := range n.outputs {
			if state.IsActivated(out) || slices.Contains(frontier, out) {
				continue
			}
			if CanActivate(state, g.nodes[out]) {
				frontier = append(frontier, out)
			}
		}
	}
	slices.Sort(frontier)
	return frontier
}

// Search finds a shortest activation order that reaches goal starting from
// the already satisfied preconditions.
//
// The returned path starts with the node the search started from, followed
// by every node activated along the way, goal last. If goal is one of the
// preconditions the path is just [goal]. A nil path with a nil error means
// goal cannot be reached from the preconditions.
func (g *Graph) Search(goal Key, preconditions []Key) ([]Key, error) {
	path, _, err := g.SearchWithStats(goal, preconditions)
	return path, err
}

// SearchWithStats is like Search and also reports how much of the state
// space was explored.
func (g *Graph) SearchWithStats(goal Key, preconditions []Key) ([]Key, SearchStats, error) {
	var stats SearchStats
	if len(preconditions) == 0 {
		return nil, stats, ErrNoPreconditions
	}

	start := preconditions[0]
	if slices.Contains(preconditions, goal) {
		start = goal
	}
	initial := NewSearchState(preconditions, start, 0)

	if _, ok := g.nodes[goal]; !ok && start != goal {
		return nil, stats, nil
	}

	open := &openSet{}
	visited := make(map[StateID]struct{})
	gScore := make(map[StateID]float64)
	cameFrom := make(map[StateID]SearchState)

	gScore[initial.ID()] = 0
	open.push(initial, 0, g.heuristic(initial, goal))
	stats.Pushed++

	for open.Len() > 0 {
		item := open.pop()
		current := item.state
		id := current.ID()

		if _, ok := visited[id]; ok {
			continue
		}

		if current.current == goal {
			path := reconstructPath(cameFrom, current)
			stats.Activations = len(path) - 1
			return path, stats, nil
		}

		visited[id] = struct{}{}
		stats.Expanded++

		for _, next := range g.ActivatableNodes(current) {
			nextState := Activate(current, next)
			nextID := nextState.ID()
			if _, ok := visited[nextID]; ok {
				continue
			}

			tentative := gScore[id] + edgeCost
			if best, ok := gScore[nextID]; ok && tentative >= best {
				continue
			}

			cameFrom[nextID] = current
			gScore[nextID] = tentative
			open.push(nextState, tentative, tentative+g.heuristic(nextState, goal))
			stats.Pushed++
		}
	}

	return nil, stats, nil
}

// heuristic counts the nodes goal still depends on: a breadth-first walk over
// input edges from goal that stops at activated nodes. Every counted node has
// to be activated before goal can be, so the estimate never exceeds the real
// remaining cost and drops by at most one per activation.
func (g *Graph) heuristic(state SearchState, goal Key) float64 {
	if state.IsActivated(goal) {
		return 0
	}

	seen := map[Key]struct{}{goal: {}}
	queue := []Key{goal}
	remaining := 0

	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		if state.IsActivated(k) {
			continue
		}
		remaining++

		n, ok := g.nodes[k]
		if !ok {
			continue
		}
		for in := range n.inputs {
			if _, ok := seen[in]; ok {
				continue
			}
			seen[in] = struct{}{}
			queue = append(queue, in)
		}
	}

	return float64(remaining)
}

func reconstructPath(cameFrom map[StateID]SearchState, terminal SearchState) []Key {
	states := []SearchState{terminal}
	for cur := terminal; ; {
		prev, ok := cameFrom[cur.ID()]
		if !ok {
			break
		}
		states = append(states, prev)
		cur = prev
	}
	slices.Reverse(states)

	path := []Key{states[0].current}
	for i := 1; i < len(states); i++ {
		path = append(path, newlyActivated(states[i-1], states[i])...)
	}
	return path
}
