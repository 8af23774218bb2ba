package depgraph

import "container/heap"

type queueItem struct {
	state SearchState
	g     float64
	f     float64
	seq   int
}

// openSet is a min-heap of search states ordered by estimated total cost.
// Equal estimates prefer the deeper state, then the lexicographically
// smaller current node, then the state pushed first, so searches over the
// same graph always return the same path.
type openSet struct {
	items []*queueItem
	seq   int
}

var _ heap.Interface = (*openSet)(nil)

func (q *openSet) Len() int { return len(q.items) }

func (q *openSet) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g > b.g
	}
	if a.state.current != b.state.current {
		return a.state.current < b.state.current
	}
	return a.seq < b.seq
}

func (q *openSet) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *openSet) Push(x any) {
	q.items = append(q.items, x.(*queueItem))
}

func (q *openSet) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}

func (q *openSet) push(state SearchState, g, f float64) {
	q.seq++
	heap.Push(q, &queueItem{state: state, g: g, f: f, seq: q.seq})
}

func (q *openSet) pop() *queueItem {
	return heap.Pop(q).(*queueItem)
}
