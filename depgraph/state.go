package depgraph

import (
	"slices"
	"strings"
)

// SearchState is one point of the search space: the set of activated nodes,
// the node activated last and the number of activations so far.
//
// A SearchState is never modified after creation. Activating a node yields a
// new state, so the same activated set reached at different depths or through
// a different last node stays a distinct state.
type SearchState struct {
	activated []Key // sorted, unique
	current   Key
	depth     int
}

// StateID is the comparable identity of a SearchState. Two states with the
// same members, current node and depth have the same StateID regardless of
// the order in which their nodes were activated.
type StateID struct {
	set     string
	current Key
	depth   int
}

// NewSearchState creates a state with the given activated keys.
func NewSearchState(activated []Key, current Key, depth int) SearchState {
	keys := slices.Clone(activated)
	slices.Sort(keys)
	return SearchState{
		activated: slices.Compact(keys),
		current:   current,
		depth:     depth,
	}
}

// ID returns the comparable identity of the state.
func (s SearchState) ID() StateID {
	var sb strings.Builder
	for i, k := range s.activated {
		if i > 0 {
			sb.WriteByte(0)
		}
		sb.WriteString(string(k))
	}
	return StateID{set: sb.String(), current: s.current, depth: s.depth}
}

// Activated returns the activated keys, sorted.
func (s SearchState) Activated() []Key {
	return slices.Clone(s.activated)
}

// IsActivated reports whether key is in the activated set.
func (s SearchState) IsActivated(key Key) bool {
	_, ok := slices.BinarySearch(s.activated, key)
	return ok
}

// Current returns the node activated last.
func (s SearchState) Current() Key {
	return s.current
}

// Depth returns the number of activations that led to this state.
func (s SearchState) Depth() int {
	return s.depth
}

// Equal reports whether two states are interchangeable.
func (s SearchState) Equal(o SearchState) bool {
	return s.current == o.current && s.depth == o.depth && slices.Equal(s.activated, o.activated)
}

// CanActivate reports whether every input of node is activated in state.
// A node with several inputs is not activatable until all of them are known.
func CanActivate(state SearchState, node *Node) bool {
	for in := range node.inputs {
		if !state.IsActivated(in) {
			return false
		}
	}
	return true
}

// Activate returns the state reached from state by activating key.
func Activate(state SearchState, key Key) SearchState {
	i, found := slices.BinarySearch(state.activated, key)
	activated := state.activated
	if !found {
		activated = slices.Insert(slices.Clone(state.activated), i, key)
	}
	return SearchState{
		activated: activated,
		current:   key,
		depth:     state.depth + 1,
	}
}

// newlyActivated returns the keys of next that are not activated in prev.
func newlyActivated(prev, next SearchState) []Key {
	var diff []Key
	for _, k := range next.activated {
		if !prev.IsActivated(k) {
			diff = append(diff, k)
		}
	}
	return diff
}
